package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/internal/metrics"
)

// Loop names used in logs and metrics.
const (
	LoopClicks       = "clicks"
	LoopSpendGuard   = "spend_guard"
	LoopIncrements   = "increments"
	LoopSpendRefresh = "spend_refresh"
)

const defaultCallTimeout = 30 * time.Second

// Controller keeps externally hosted campaigns' activation and daily budget
// in line with local click inventory and reported spend. Its tick methods
// are independent: each re-reads live state before acting, so they need no
// coordination beyond the durable records in the repository.
type Controller struct {
	repo    port.CampaignRepository
	gateway port.CampaignGateway
	clock   port.Clock
	cfg     configs.Controller
	logger  *slog.Logger
}

// NewController creates a controller. A nil clock uses the system clock and
// a nil logger uses slog.Default.
func NewController(repo port.CampaignRepository, gateway port.CampaignGateway, clock port.Clock, cfg configs.Controller, logger *slog.Logger) *Controller {
	if clock == nil {
		clock = port.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	return &Controller{repo: repo, gateway: gateway, clock: clock, cfg: cfg, logger: logger}
}

func (c *Controller) now() time.Time {
	return c.clock.Now().UTC()
}

// forEachCampaign runs fn for every auto-managed campaign with bounded
// concurrency. A failing campaign is logged and recorded; it never stops
// the others. Only a failure to list campaigns is returned.
func (c *Controller) forEachCampaign(ctx context.Context, loop string, fn func(context.Context, *domain.Campaign) error) error {
	campaigns, err := c.repo.ListAutoManagedCampaigns(ctx)
	if err != nil {
		c.logger.Error("list campaigns failed", slog.String("loop", loop), slog.Any("error", err))
		return fmt.Errorf("%s: list campaigns: %w", loop, err)
	}
	fanOut(ctx, c.cfg.Concurrency, campaigns, func(ctx context.Context, camp domain.Campaign) {
		c.runCampaign(ctx, loop, &camp, fn)
	})
	return nil
}

func (c *Controller) runCampaign(ctx context.Context, loop string, camp *domain.Campaign, fn func(context.Context, *domain.Campaign) error) {
	defer func() {
		if r := recover(); r != nil {
			c.campaignFailed(ctx, loop, camp, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := fn(ctx, camp); err != nil {
		c.campaignFailed(ctx, loop, camp, err)
		return
	}
	if strings.HasPrefix(camp.LastError, errorTag(loop)) {
		if err := c.repo.RecordError(ctx, camp.ID, "", c.now()); err != nil {
			c.logger.Warn("clear campaign error failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", err))
		}
	}
}

// fanOut calls fn for each item with at most limit calls in flight.
func fanOut[T any](ctx context.Context, limit int, items []T, fn func(context.Context, T)) {
	var g errgroup.Group
	g.SetLimit(limit)
	for _, item := range items {
		item := item
		g.Go(func() error {
			fn(ctx, item)
			return nil
		})
	}
	_ = g.Wait()
}

// errorKind maps an error onto the taxonomy used in logs and metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, port.ErrGatewayTransient), errors.Is(err, context.DeadlineExceeded):
		return "transient"
	case errors.Is(err, port.ErrGatewayAuth):
		return "auth"
	case errors.Is(err, port.ErrGatewayNotFound):
		return "inconsistent"
	case errors.Is(err, domain.ErrInvalidThresholds):
		return "config"
	default:
		return "internal"
	}
}

// campaignFailed contains a per-campaign failure: it is logged, counted and
// surfaced to operators. A vanished external campaign marks the mirror
// stale; auto-management is never switched off here.
func (c *Controller) campaignFailed(ctx context.Context, loop string, camp *domain.Campaign, err error) {
	kind := errorKind(err)
	metrics.RecordCampaignError(loop, kind)

	level := slog.LevelWarn
	if kind == "inconsistent" || kind == "internal" || kind == "auth" {
		level = slog.LevelError
	}
	c.logger.Log(ctx, level, "campaign skipped",
		slog.String("loop", loop),
		slog.Int64("campaign_id", camp.ID),
		slog.String("external_id", camp.ExternalID),
		slog.String("kind", kind),
		slog.Any("error", err),
	)

	now := c.now()
	if kind == "inconsistent" && !camp.Mirror.Stale {
		camp.Mirror.Stale = true
		c.saveMirror(ctx, camp)
	}
	if rerr := c.repo.RecordError(ctx, camp.ID, errorTag(loop)+err.Error(), now); rerr != nil {
		c.logger.Warn("record campaign error failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", rerr))
	}
}

// errorTag prefixes recorded errors with the loop that hit them. A loop only
// clears errors carrying its own tag.
func errorTag(loop string) string {
	return loop + ": "
}

// saveMirror persists the mirror. Failures are logged and retried
// implicitly on the next tick.
func (c *Controller) saveMirror(ctx context.Context, camp *domain.Campaign) {
	if err := c.repo.UpdateMirror(ctx, camp.ID, camp.Mirror); err != nil {
		c.logger.Warn("update mirror failed",
			slog.Int64("campaign_id", camp.ID),
			slog.Any("error", err),
		)
	}
}
