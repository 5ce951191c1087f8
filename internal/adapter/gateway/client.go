package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/port"
	"adpilot/internal/metrics"
)

// TimeLayout is the timestamp format the platform uses for end times.
const TimeLayout = time.DateTime

const (
	statusActive = "active"
	statusPaused = "paused"
)

// Client implements port.CampaignGateway over the platform's JSON API. Every
// request waits on a token bucket so the controller never exceeds the
// platform's rate limit, and none is retried in place.
type Client struct {
	base    *url.URL
	token   string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient returns a client configured from cfg. A nil httpClient uses a
// client with cfg.Timeout.
func NewClient(cfg configs.Gateway, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	base := cfg.BaseURL
	return &Client{
		base:    &base,
		token:   cfg.Token,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

type campaignResponse struct {
	Status      string          `json:"status"`
	DailyBudget decimal.Decimal `json:"daily_budget"`
	EndTime     string          `json:"end_time"`
}

type spendResponse struct {
	Spent decimal.Decimal `json:"spent"`
}

type campaignPatch struct {
	Status      string           `json:"status,omitempty"`
	DailyBudget *decimal.Decimal `json:"daily_budget,omitempty"`
	EndTime     string           `json:"end_time,omitempty"`
}

// GetState reads the current campaign state.
func (c *Client) GetState(ctx context.Context, externalID string) (port.ExternalState, error) {
	raw, err := c.do(ctx, "get_state", http.MethodGet, c.campaignPath(externalID), nil, nil)
	if err != nil {
		return port.ExternalState{}, err
	}
	var resp campaignResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return port.ExternalState{}, fmt.Errorf("%w: decode campaign %s: %v", port.ErrGatewayTransient, externalID, err)
	}
	state := port.ExternalState{
		Active:      strings.EqualFold(resp.Status, statusActive),
		DailyBudget: resp.DailyBudget,
		Raw:         raw,
	}
	if resp.EndTime != "" {
		state.EndTime, err = parseTime(resp.EndTime)
		if err != nil {
			return port.ExternalState{}, fmt.Errorf("%w: campaign %s end time: %v", port.ErrGatewayTransient, externalID, err)
		}
	}
	return state, nil
}

// SetActive activates or pauses the campaign.
func (c *Client) SetActive(ctx context.Context, externalID string, active bool) error {
	patch := campaignPatch{Status: statusPaused}
	if active {
		patch.Status = statusActive
	}
	_, err := c.do(ctx, "set_active", http.MethodPatch, c.campaignPath(externalID), nil, patch)
	return err
}

// SetDailyBudget replaces the daily budget.
func (c *Client) SetDailyBudget(ctx context.Context, externalID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("negative daily budget %s", amount)
	}
	amount = amount.Round(2)
	_, err := c.do(ctx, "set_daily_budget", http.MethodPatch, c.campaignPath(externalID), nil, campaignPatch{DailyBudget: &amount})
	return err
}

// SetEndTime moves the serving end time.
func (c *Client) SetEndTime(ctx context.Context, externalID string, end time.Time) error {
	patch := campaignPatch{EndTime: end.UTC().Format(TimeLayout)}
	_, err := c.do(ctx, "set_end_time", http.MethodPatch, c.campaignPath(externalID), nil, patch)
	return err
}

// GetSpentToday returns the spend reported for the date range.
func (c *Client) GetSpentToday(ctx context.Context, externalID string, dateFrom, dateTo time.Time) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("date_from", dateFrom.UTC().Format(time.DateOnly))
	q.Set("date_to", dateTo.UTC().Format(time.DateOnly))
	raw, err := c.do(ctx, "get_spent", http.MethodGet, c.campaignPath(externalID)+"/spend", q, nil)
	if err != nil {
		return decimal.Zero, err
	}
	var resp spendResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode spend %s: %v", port.ErrGatewayTransient, externalID, err)
	}
	if resp.Spent.IsNegative() {
		return decimal.Zero, nil
	}
	return resp.Spent, nil
}

func (c *Client) campaignPath(externalID string) string {
	return "/campaigns/" + url.PathEscape(externalID)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) (raw []byte, err error) {
	defer func() { metrics.RecordGatewayCall(op, err) }()

	if err = c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: rate limiter: %v", port.ErrGatewayTransient, op, err)
	}

	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", port.ErrGatewayTransient, op, err)
	}
	defer resp.Body.Close()

	raw, err = io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", port.ErrGatewayTransient, op, err)
	}

	c.logger.Debug("gateway call",
		slog.String("operation", op),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
	)

	if err = classify(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("%w: %s %s: status %d", err, op, path, resp.StatusCode)
	}
	return raw, nil
}

// classify maps an HTTP status onto the gateway error taxonomy.
func classify(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return port.ErrGatewayNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return port.ErrGatewayAuth
	default:
		return port.ErrGatewayTransient
	}
}

// parseTime accepts the platform's SQL-style timestamps and RFC 3339.
func parseTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(TimeLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
	}
	return t.UTC(), nil
}
