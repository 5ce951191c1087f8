package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"adpilot/internal/core/domain"
)

// Reactivation is the outcome of a spend pause recheck.
type Reactivation int

const (
	// RemainPaused: neither spend nor remaining volume justify serving.
	RemainPaused Reactivation = iota
	// ReactivatedWithBudget: budget rewritten to spend plus the price of the
	// remaining clicks.
	ReactivatedWithBudget
	// ReactivatedOnVolume: activated with the budget left unchanged.
	ReactivatedOnVolume
)

func (r Reactivation) String() string {
	switch r {
	case ReactivatedWithBudget:
		return "reactivated_with_budget"
	case ReactivatedOnVolume:
		return "reactivated_on_volume"
	default:
		return "remain_paused"
	}
}

// GuardSpend runs one tick of the spend guard: campaigns over the daily
// spend cap are paused for a recheck, and elapsed rechecks run the
// reactivation algorithm.
func (c *Controller) GuardSpend(ctx context.Context) error {
	return c.forEachCampaign(ctx, LoopSpendGuard, c.guardCampaign)
}

func (c *Controller) guardCampaign(ctx context.Context, camp *domain.Campaign) error {
	now := c.now()
	pause, err := c.repo.GetSpendPause(ctx, camp.ID, now)
	if err != nil {
		return err
	}
	if pause != nil {
		if pause.Due(now) {
			return c.recheck(ctx, camp, pause, now)
		}
		// Waiting for the recheck, or today's cycle is over and further
		// overspend is tolerated until the next reset.
		return nil
	}

	spent := c.spentToday(ctx, camp, now)
	if !spent.GreaterThan(c.cfg.DailySpendCap) {
		return nil
	}

	_, live, err := c.reconcile(ctx, camp)
	if err != nil {
		return err
	}
	defer c.saveMirror(ctx, camp)
	camp.Mirror.SpentToday = spent

	if err = c.ensurePaused(ctx, camp, live, domain.StatePausedSpend, true); err != nil {
		return err
	}

	p := domain.SpendPause{
		CampaignID: camp.ID,
		ForDate:    domain.StartOfDay(now),
		PausedAt:   now,
		RecheckAt:  now.Add(c.cfg.SpendRecheckDelay),
	}
	if err = c.repo.SaveSpendPause(ctx, p); err != nil {
		c.logger.Error("save spend pause failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", err))
	}
	c.logger.Info("campaign paused for spend",
		slog.Int64("campaign_id", camp.ID),
		slog.String("spent", spent.StringFixed(2)),
		slog.String("cap", c.cfg.DailySpendCap.StringFixed(2)),
		slog.Time("recheck_at", p.RecheckAt),
	)
	return nil
}

// recheck runs the reactivation algorithm for an elapsed spend pause and
// clears the pause whatever the outcome. If the inventory cannot be read
// the pause stays live and the recheck is retried on the next tick.
func (c *Controller) recheck(ctx context.Context, camp *domain.Campaign, pause *domain.SpendPause, now time.Time) error {
	records, err := c.repo.ListActiveInventory(ctx, camp.ID)
	if err != nil {
		return err
	}
	total := domain.TotalRemaining(records)
	spent := c.spentToday(ctx, camp, now)

	outcome, err := c.reactivate(ctx, camp, spent, total, now)

	if cerr := c.repo.ClearSpendPause(ctx, camp.ID, pause.ForDate, now); cerr != nil {
		c.logger.Error("clear spend pause failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", cerr))
	}
	if err != nil {
		return fmt.Errorf("reactivate: %w", err)
	}
	c.logger.Info("spend pause rechecked",
		slog.Int64("campaign_id", camp.ID),
		slog.String("outcome", outcome.String()),
		slog.String("spent", spent.StringFixed(2)),
		slog.Int64("remaining", total),
	)
	return nil
}

// reactivate decides whether a campaign paused for spend may serve again.
// Enough spend earns a budget of spent + price of the remaining clicks
// (once per date); enough remaining volume alone earns activation with the
// budget untouched; otherwise the campaign stays paused.
func (c *Controller) reactivate(ctx context.Context, camp *domain.Campaign, spent decimal.Decimal, total int64, now time.Time) (Reactivation, error) {
	_, live, err := c.reconcile(ctx, camp)
	if err != nil {
		return RemainPaused, err
	}
	defer c.saveMirror(ctx, camp)
	camp.Mirror.SpentToday = spent

	switch {
	case spent.GreaterThanOrEqual(c.cfg.MinSpentFloor):
		adjusted, err := c.repo.HasBudgetAdjustment(ctx, camp.ID, now)
		if err != nil {
			// Skipping the rewrite is safer than risking a second one.
			c.logger.Warn("budget adjustment lookup failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", err))
			adjusted = true
		}
		if !adjusted {
			pendingClickPrice := camp.ClickValue(total)
			if err = c.setBudget(ctx, camp, live, spent.Add(pendingClickPrice)); err != nil {
				return RemainPaused, err
			}
			mark := domain.BudgetAdjustmentMark{CampaignID: camp.ID, AdjustedForDate: domain.StartOfDay(now), AdjustedAt: now}
			if err = c.repo.MarkBudgetAdjusted(ctx, mark); err != nil {
				c.logger.Error("mark budget adjusted failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", err))
			}
		}
		if err = c.ensureActive(ctx, camp, live, domain.StateActive, true); err != nil {
			return RemainPaused, err
		}
		if adjusted {
			return ReactivatedOnVolume, nil
		}
		return ReactivatedWithBudget, nil

	case total >= c.cfg.MinVolumeFloor:
		if err = c.ensureActive(ctx, camp, live, domain.StateActive, true); err != nil {
			return RemainPaused, err
		}
		return ReactivatedOnVolume, nil

	default:
		at := c.now()
		camp.Mirror.State = domain.StatePausedSpend
		camp.Mirror.LastAction = fmt.Sprintf("%s: spent %s below %s and %d clicks below %d",
			actionRemainPause,
			spent.StringFixed(2), c.cfg.MinSpentFloor.StringFixed(2),
			total, c.cfg.MinVolumeFloor)
		camp.Mirror.LastActionAt = &at
		camp.Mirror.LastActionSuccess = true
		return RemainPaused, nil
	}
}

// RefreshSpend stores every campaign's current daily spend in its mirror
// for display. It never drives decisions.
func (c *Controller) RefreshSpend(ctx context.Context) error {
	return c.forEachCampaign(ctx, LoopSpendRefresh, func(ctx context.Context, camp *domain.Campaign) error {
		spent, err := c.fetchSpent(ctx, camp, c.now())
		if err != nil {
			return err
		}
		if spent.Equal(camp.Mirror.SpentToday) {
			return nil
		}
		camp.Mirror.SpentToday = spent
		c.saveMirror(ctx, camp)
		return nil
	})
}

func (c *Controller) fetchSpent(ctx context.Context, camp *domain.Campaign, now time.Time) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()
	day := domain.StartOfDay(now)
	return c.gateway.GetSpentToday(ctx, camp.ExternalID, day, day)
}

// spentToday fails open: an unreadable spend counts as zero so the loop is
// never blocked by the reporting endpoint.
func (c *Controller) spentToday(ctx context.Context, camp *domain.Campaign, now time.Time) decimal.Decimal {
	spent, err := c.fetchSpent(ctx, camp, now)
	if err != nil {
		c.logger.Warn("spend read failed, assuming zero",
			slog.Int64("campaign_id", camp.ID),
			slog.String("external_id", camp.ExternalID),
			slog.Any("error", err),
		)
		return decimal.Zero
	}
	return spent
}
