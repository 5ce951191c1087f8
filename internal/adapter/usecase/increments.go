package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/internal/metrics"
)

// EnqueueInventory queues the budget share of a newly created inventory
// record. The value is priced now and never recomputed, so later
// consumption does not shrink the amortized budget.
func (c *Controller) EnqueueInventory(ctx context.Context, inventoryID int64) (bool, error) {
	rec, err := c.repo.GetInventory(ctx, inventoryID)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, port.ErrInventoryNotFound
	}
	if rec.Status != domain.InventoryActive {
		return false, nil
	}
	camp, err := c.repo.GetCampaign(ctx, rec.CampaignID)
	if err != nil {
		return false, err
	}
	if camp == nil {
		return false, port.ErrCampaignNotFound
	}
	if !camp.Managed() {
		c.logger.Debug("inventory ignored, campaign not auto-managed",
			slog.Int64("inventory_id", rec.ID),
			slog.Int64("campaign_id", camp.ID),
		)
		return false, nil
	}

	value := camp.ClickValue(rec.Remaining())
	if !value.IsPositive() {
		return false, nil
	}
	now := c.now()
	inc := domain.PendingIncrement{
		InventoryID: rec.ID,
		CampaignID:  camp.ID,
		ClickValue:  value,
		ReceivedAt:  now,
		ReadyAt:     now.Add(c.cfg.DebounceWindow),
	}
	added, err := c.repo.EnqueuePendingIncrement(ctx, inc)
	if err != nil {
		return false, err
	}
	if added {
		c.logger.Info("inventory increment queued",
			slog.Int64("inventory_id", rec.ID),
			slog.Int64("campaign_id", camp.ID),
			slog.String("click_value", value.String()),
			slog.Time("ready_at", inc.ReadyAt),
		)
	}
	return added, nil
}

// DrainIncrements folds every ready increment into its campaign's external
// daily budget: one live read and one budget call per campaign, however
// many records arrived inside the debounce window.
func (c *Controller) DrainIncrements(ctx context.Context) error {
	ready, err := c.repo.ListReadyIncrements(ctx, c.now())
	if err != nil {
		c.logger.Error("list ready increments failed", slog.Any("error", err))
		return fmt.Errorf("%s: list increments: %w", LoopIncrements, err)
	}
	metrics.SetReadyIncrements(len(ready))
	if len(ready) == 0 {
		return nil
	}

	byCampaign := make(map[int64][]domain.PendingIncrement)
	for _, inc := range ready {
		byCampaign[inc.CampaignID] = append(byCampaign[inc.CampaignID], inc)
	}
	ids := make([]int64, 0, len(byCampaign))
	for id := range byCampaign {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fanOut(ctx, c.cfg.Concurrency, ids, func(ctx context.Context, campaignID int64) {
		c.drainCampaign(ctx, campaignID, byCampaign[campaignID])
	})

	if n, err := c.repo.PurgeProcessedIncrements(ctx); err != nil {
		c.logger.Warn("purge processed increments failed", slog.Any("error", err))
	} else if n > 0 {
		c.logger.Debug("processed increments purged", slog.Int64("count", n))
	}
	return nil
}

func (c *Controller) drainCampaign(ctx context.Context, campaignID int64, incs []domain.PendingIncrement) {
	ids := make([]int64, len(incs))
	sum := decimal.Zero
	for i, inc := range incs {
		ids[i] = inc.InventoryID
		sum = sum.Add(inc.ClickValue)
	}

	camp, err := c.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		c.logger.Error("load campaign failed", slog.String("loop", LoopIncrements), slog.Int64("campaign_id", campaignID), slog.Any("error", err))
		return
	}
	if camp == nil || !camp.Managed() {
		c.logger.Warn("dropping increments of unmanaged campaign",
			slog.Int64("campaign_id", campaignID),
			slog.Int("count", len(incs)),
		)
		c.markProcessed(ctx, campaignID, ids)
		return
	}

	c.runCampaign(ctx, LoopIncrements, camp, func(ctx context.Context, camp *domain.Campaign) error {
		// The base must be the live budget: the mirror may predate an
		// earlier write that the platform already applied.
		_, live, err := c.reconcile(ctx, camp)
		if err != nil {
			return err
		}
		if !live {
			return errNotLive(actionSetBudget)
		}
		defer c.saveMirror(ctx, camp)

		// Claim the batch before the budget call: a batch that cannot be
		// claimed is never applied, so a retry cannot add it twice.
		if err = c.repo.MarkIncrementsProcessed(ctx, ids); err != nil {
			return fmt.Errorf("claim increments: %w", err)
		}
		base := camp.Mirror.DailyBudget
		if err = c.setBudget(ctx, camp, live, base.Add(sum)); err != nil {
			c.releaseIncrements(ctx, campaignID, ids)
			return err
		}
		c.logger.Info("increments folded into budget",
			slog.Int64("campaign_id", campaignID),
			slog.Int("count", len(incs)),
			slog.String("added", sum.String()),
			slog.String("budget", camp.Mirror.DailyBudget.StringFixed(2)),
		)
		return nil
	})
}

// releaseIncrements hands a claimed batch back to the next drain after the
// budget call failed. If that fails too the batch is lost and the budget
// stays short by its sum until the operator intervenes.
func (c *Controller) releaseIncrements(ctx context.Context, campaignID int64, ids []int64) {
	if err := c.repo.ReleaseIncrements(ctx, ids); err != nil {
		metrics.RecordCampaignError(LoopIncrements, "bookkeeping")
		c.logger.Error("release increments failed, batch dropped",
			slog.Int64("campaign_id", campaignID),
			slog.Any("inventory_ids", ids),
			slog.Any("error", err),
		)
	}
}

func (c *Controller) markProcessed(ctx context.Context, campaignID int64, ids []int64) {
	if err := c.repo.MarkIncrementsProcessed(ctx, ids); err != nil {
		c.logger.Error("mark increments processed failed",
			slog.Int64("campaign_id", campaignID),
			slog.Any("inventory_ids", ids),
			slog.Any("error", err),
		)
	}
}
