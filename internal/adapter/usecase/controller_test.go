package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpilot/internal/adapter/memory"
	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// noon is the default test instant: far from the 00:00 budget reset.
var noon = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type platformCampaign struct {
	active bool
	budget decimal.Decimal
	end    time.Time
	spent  decimal.Decimal
}

// fakePlatform is a consistent in-memory ad platform recording every call.
type fakePlatform struct {
	mu        sync.Mutex
	campaigns map[string]*platformCampaign
	calls     []string
	readErr   error
	spendErr  error
	budgetErr error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{campaigns: make(map[string]*platformCampaign)}
}

func (p *fakePlatform) put(id string, c platformCampaign) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.campaigns[id] = &c
}

func (p *fakePlatform) get(id string) platformCampaign {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.campaigns[id]
}

func (p *fakePlatform) record(call string) {
	p.calls = append(p.calls, call)
}

// Calls returns the recorded call names and resets the log.
func (p *fakePlatform) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	calls := p.calls
	p.calls = nil
	return calls
}

func (p *fakePlatform) lookup(id string) (*platformCampaign, error) {
	c, ok := p.campaigns[id]
	if !ok {
		return nil, port.ErrGatewayNotFound
	}
	return c, nil
}

func (p *fakePlatform) GetState(_ context.Context, externalID string) (port.ExternalState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("GetState")
	if p.readErr != nil {
		return port.ExternalState{}, p.readErr
	}
	c, err := p.lookup(externalID)
	if err != nil {
		return port.ExternalState{}, err
	}
	return port.ExternalState{Active: c.active, DailyBudget: c.budget, EndTime: c.end}, nil
}

func (p *fakePlatform) SetActive(_ context.Context, externalID string, active bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("SetActive")
	c, err := p.lookup(externalID)
	if err != nil {
		return err
	}
	c.active = active
	return nil
}

func (p *fakePlatform) SetDailyBudget(_ context.Context, externalID string, amount decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("SetDailyBudget")
	if p.budgetErr != nil {
		return p.budgetErr
	}
	c, err := p.lookup(externalID)
	if err != nil {
		return err
	}
	c.budget = amount
	return nil
}

func (p *fakePlatform) SetEndTime(_ context.Context, externalID string, end time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("SetEndTime")
	c, err := p.lookup(externalID)
	if err != nil {
		return err
	}
	c.end = end
	return nil
}

func (p *fakePlatform) GetSpentToday(_ context.Context, externalID string, _, _ time.Time) (decimal.Decimal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("GetSpentToday")
	if p.spendErr != nil {
		return decimal.Zero, p.spendErr
	}
	c, err := p.lookup(externalID)
	if err != nil {
		return decimal.Zero, err
	}
	return c.spent, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() configs.Controller {
	return configs.Controller{
		DebounceWindow:    10 * time.Minute,
		SpendRecheckDelay: 10 * time.Minute,
		ResetTolerance:    5 * time.Minute,
		CallTimeout:       5 * time.Second,
		Concurrency:       2,
		DailySpendCap:     dec("10"),
		MinSpentFloor:     dec("10"),
		MinVolumeFloor:    10000,
	}
}

// testCampaign is synced for the day of noon with a 00:00 reset and a price
// of 20 per 1000 clicks.
func testCampaign(id int64) domain.Campaign {
	synced := domain.StartOfDay(noon)
	syncedAt := synced.Add(time.Minute)
	return domain.Campaign{
		ID:                id,
		Name:              "campaign",
		ExternalID:        externalID(id),
		AutoManageEnabled: true,
		Thresholds:        domain.DefaultThresholds(),
		PricePerThousand:  dec("20"),
		LastSyncDate:      &synced,
		LastSyncAt:        &syncedAt,
	}
}

func externalID(id int64) string {
	return "ext-" + strconv.FormatInt(id, 10)
}

func inventory(id, campaignID, limit, consumed int64) domain.InventoryRecord {
	return domain.InventoryRecord{
		ID:             id,
		CampaignID:     campaignID,
		URL:            "https://example.com/offer",
		ClickLimit:     limit,
		ClicksConsumed: consumed,
		Status:         domain.InventoryActive,
		CreatedAt:      noon.Add(-time.Hour),
	}
}

type harness struct {
	ctrl     *Controller
	store    *memory.Store
	platform *fakePlatform
	clock    *testClock
}

func newHarness(t *testing.T, campaigns []domain.Campaign, records []domain.InventoryRecord) *harness {
	t.Helper()
	h := &harness{
		store:    memory.NewStore(campaigns, records),
		platform: newFakePlatform(),
		clock:    &testClock{now: noon},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.ctrl = NewController(h.store, h.platform, h.clock, testConfig(), logger)
	return h
}

func (h *harness) campaign(t *testing.T, id int64) domain.Campaign {
	t.Helper()
	c, err := h.store.GetCampaign(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return *c
}

func TestErrorKind(t *testing.T) {
	cases := map[string]error{
		"transient":    port.ErrGatewayTransient,
		"auth":         port.ErrGatewayAuth,
		"inconsistent": port.ErrGatewayNotFound,
		"config":       domain.ErrInvalidThresholds,
		"internal":     errors.New("boom"),
	}
	for want, err := range cases {
		assert.Equal(t, want, errorKind(err))
	}
	assert.Equal(t, "transient", errorKind(context.DeadlineExceeded))
}

func TestForEachCampaignIsolatesFailures(t *testing.T) {
	good := testCampaign(1)
	missing := testCampaign(2)
	h := newHarness(t, []domain.Campaign{good, missing}, []domain.InventoryRecord{
		inventory(1, 1, 20000, 0),
		inventory(2, 2, 20000, 0),
	})
	h.platform.put(good.ExternalID, platformCampaign{end: domain.EndOfDay(noon)})

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.True(t, h.platform.get(good.ExternalID).active)
	assert.Empty(t, h.campaign(t, 1).LastError)

	failed := h.campaign(t, 2)
	assert.Contains(t, failed.LastError, "clicks")
	assert.True(t, failed.Mirror.Stale)
	assert.True(t, failed.AutoManageEnabled)
}

func TestLoopClearsOnlyItsOwnError(t *testing.T) {
	cases := []struct {
		lastError string
		want      string
	}{
		{"clicks: external campaign api unavailable", ""},
		{"spend_guard: external campaign api unavailable", "spend_guard: external campaign api unavailable"},
		{"increments: claim increments: db down", "increments: claim increments: db down"},
	}
	for _, tc := range cases {
		t.Run(tc.lastError, func(t *testing.T) {
			camp := testCampaign(1)
			at := noon.Add(-time.Minute)
			camp.LastError = tc.lastError
			camp.LastErrorAt = &at
			h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 9000, 0)})
			h.platform.put(camp.ExternalID, platformCampaign{active: true, end: domain.EndOfDay(noon)})

			require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

			assert.Equal(t, tc.want, h.campaign(t, 1).LastError)
		})
	}
}
