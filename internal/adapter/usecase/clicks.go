package usecase

import (
	"context"
	"log/slog"
	"time"

	"adpilot/internal/core/domain"
)

// EvaluateClicks runs one tick of the click-threshold loop over every
// auto-managed campaign.
func (c *Controller) EvaluateClicks(ctx context.Context) error {
	return c.forEachCampaign(ctx, LoopClicks, c.evaluateCampaign)
}

// evaluateCampaign applies, in order: the daily budget reset, the
// no-inventory pause, the spend guard's claim on the day and finally the
// click bands with hysteresis.
func (c *Controller) evaluateCampaign(ctx context.Context, camp *domain.Campaign) error {
	if err := camp.Thresholds.Validate(); err != nil {
		return err
	}
	now := c.now()

	if c.resetDue(camp, now) {
		return c.resetBudget(ctx, camp, now)
	}

	records, err := c.repo.ListActiveInventory(ctx, camp.ID)
	if err != nil {
		return err
	}
	total := domain.TotalRemaining(records)

	if total == 0 {
		_, live, err := c.reconcile(ctx, camp)
		if err != nil {
			return err
		}
		defer c.saveMirror(ctx, camp)
		return c.ensurePaused(ctx, camp, live, domain.StateNoInventory, true)
	}

	pause, err := c.repo.GetSpendPause(ctx, camp.ID, now)
	if err != nil {
		return err
	}
	if pause != nil {
		c.logger.Debug("spend guard owns campaign today",
			slog.Int64("campaign_id", camp.ID),
			slog.Bool("live", pause.Live()),
		)
		return nil
	}

	mirror, live, err := c.reconcile(ctx, camp)
	if err != nil {
		return err
	}
	defer c.saveMirror(ctx, camp)

	target := camp.Thresholds.Decide(total, mirror.Active)
	c.logger.Debug("click bands evaluated",
		slog.Int64("campaign_id", camp.ID),
		slog.Int64("remaining", total),
		slog.Bool("active", mirror.Active),
		slog.String("target", target.String()),
	)

	switch target {
	case domain.TargetActive:
		return c.ensureActive(ctx, camp, live, domain.StateActive, false)
	case domain.TargetPaused:
		return c.ensurePaused(ctx, camp, live, domain.StatePausedClicks, true)
	default:
		if mirror.Active {
			camp.Mirror.State = domain.StateActive
		} else if camp.Mirror.State != domain.StatePausedSpend {
			camp.Mirror.State = domain.StatePausedClicks
		}
		return nil
	}
}

// resetDue reports whether the daily budget reset must run: on the first
// tick of a new UTC date, or once inside the tolerance window around the
// campaign's reset time of day.
func (c *Controller) resetDue(camp *domain.Campaign, now time.Time) bool {
	if camp.LastSyncDate == nil || domain.StartOfDay(*camp.LastSyncDate).Before(domain.StartOfDay(now)) {
		return true
	}
	resetAt := camp.BudgetResetTime.On(now)
	windowStart := resetAt.Add(-c.cfg.ResetTolerance)
	if now.Before(windowStart) || now.After(resetAt.Add(c.cfg.ResetTolerance)) {
		return false
	}
	return camp.LastSyncAt == nil || camp.LastSyncAt.Before(windowStart)
}

// resetBudget restores the baseline budget and pauses the campaign. The
// click bands run again on the next tick, after the platform had a chance
// to confirm the new cap. A reset also ends the spend guard's claim on the
// day.
func (c *Controller) resetBudget(ctx context.Context, camp *domain.Campaign, now time.Time) error {
	_, live, err := c.reconcile(ctx, camp)
	if err != nil {
		return err
	}
	defer c.saveMirror(ctx, camp)

	if camp.BaselineDailyBudget.IsPositive() {
		if err = c.setBudget(ctx, camp, live, camp.BaselineDailyBudget); err != nil {
			return err
		}
	}
	if err = c.ensurePaused(ctx, camp, live, domain.StatePausedClicks, false); err != nil {
		return err
	}

	if err = c.repo.MarkSynced(ctx, camp.ID, now, now); err != nil {
		c.logger.Warn("mark synced failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", err))
	}
	// Drops today's pause as well: the reset starts a new budget day.
	if err = c.repo.DeleteSpendPausesBefore(ctx, camp.ID, now.AddDate(0, 0, 1)); err != nil {
		c.logger.Warn("delete spend pauses failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", err))
	}

	c.logger.Info("daily budget reset",
		slog.Int64("campaign_id", camp.ID),
		slog.String("baseline", camp.BaselineDailyBudget.StringFixed(2)),
	)
	return nil
}
