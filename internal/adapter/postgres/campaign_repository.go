package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `
            id,
            name,
            COALESCE(external_id, ''),
            auto_manage,
            click_upper_threshold,
            click_lower_threshold,
            mid_band_raise_threshold,
            mid_band_lower_threshold,
            price_per_thousand,
            baseline_daily_budget,
            budget_reset_time,
            last_sync_date,
            last_sync_at,
            mirror_active,
            mirror_daily_budget,
            mirror_end_time,
            mirror_spent_today,
            mirror_state,
            mirror_stale,
            last_verified_at,
            last_action,
            last_action_at,
            last_action_success,
            last_error,
            last_error_at,
            created_at,
            updated_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c         domain.Campaign
		resetTime string
		endTime   *time.Time
		state     string
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ExternalID,
		&c.AutoManageEnabled,
		&c.Thresholds.Upper,
		&c.Thresholds.Lower,
		&c.Thresholds.MidRaise,
		&c.Thresholds.MidLower,
		&c.PricePerThousand,
		&c.BaselineDailyBudget,
		&resetTime,
		&c.LastSyncDate,
		&c.LastSyncAt,
		&c.Mirror.Active,
		&c.Mirror.DailyBudget,
		&endTime,
		&c.Mirror.SpentToday,
		&state,
		&c.Mirror.Stale,
		&c.Mirror.LastVerifiedAt,
		&c.Mirror.LastAction,
		&c.Mirror.LastActionAt,
		&c.Mirror.LastActionSuccess,
		&c.LastError,
		&c.LastErrorAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	c.BudgetResetTime, err = domain.ParseTimeOfDay(resetTime)
	if err != nil {
		return c, fmt.Errorf("campaign %d: %w", c.ID, err)
	}
	if endTime != nil {
		c.Mirror.EndTime = endTime.UTC()
	}
	c.Mirror.State = domain.CampaignState(state)
	return c, nil
}

// ListAutoManagedCampaigns returns campaigns the controller owns.
func (r *CampaignRepository) ListAutoManagedCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	query := `SELECT` + campaignColumns + `
        FROM campaigns
        WHERE auto_manage AND external_id IS NOT NULL AND external_id <> ''
        ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT`+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const inventoryColumns = `id, campaign_id, url, click_limit, clicks_consumed, status, created_at`

func scanInventory(row pgx.Row) (domain.InventoryRecord, error) {
	var rec domain.InventoryRecord
	err := row.Scan(&rec.ID, &rec.CampaignID, &rec.URL, &rec.ClickLimit, &rec.ClicksConsumed, &rec.Status, &rec.CreatedAt)
	return rec, err
}

// ListActiveInventory returns active inventory records of a campaign.
func (r *CampaignRepository) ListActiveInventory(ctx context.Context, campaignID int64) ([]domain.InventoryRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory_records
        WHERE campaign_id = $1 AND status = 'active' ORDER BY created_at`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryRecord, error) {
		return scanInventory(row)
	})
}

// GetInventory returns an inventory record by id.
func (r *CampaignRepository) GetInventory(ctx context.Context, id int64) (*domain.InventoryRecord, error) {
	rec, err := scanInventory(r.pool.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory_records WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateMirror overwrites the cached external state.
func (r *CampaignRepository) UpdateMirror(ctx context.Context, campaignID int64, m domain.ExternalStateMirror) error {
	var endTime *time.Time
	if !m.EndTime.IsZero() {
		endTime = &m.EndTime
	}
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET
            mirror_active = $2,
            mirror_daily_budget = $3,
            mirror_end_time = $4,
            mirror_spent_today = $5,
            mirror_state = $6,
            mirror_stale = $7,
            last_verified_at = $8,
            last_action = $9,
            last_action_at = $10,
            last_action_success = $11,
            updated_at = now()
        WHERE id = $1`,
		campaignID, m.Active, m.DailyBudget, endTime, m.SpentToday, string(m.State), m.Stale,
		m.LastVerifiedAt, m.LastAction, m.LastActionAt, m.LastActionSuccess)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

// MarkSynced records the date and time of the last budget reset.
func (r *CampaignRepository) MarkSynced(ctx context.Context, campaignID int64, date, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET last_sync_date = $2, last_sync_at = $3, updated_at = now() WHERE id = $1`,
		campaignID, domain.StartOfDay(date), at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

// RecordError stores the last operator-visible error of a campaign.
func (r *CampaignRepository) RecordError(ctx context.Context, campaignID int64, message string, at time.Time) error {
	var errAt *time.Time
	if message != "" {
		errAt = &at
	}
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET last_error = $2, last_error_at = $3, updated_at = now() WHERE id = $1`,
		campaignID, message, errAt)
	return err
}

// EnqueuePendingIncrement inserts the increment once per inventory record.
func (r *CampaignRepository) EnqueuePendingIncrement(ctx context.Context, inc domain.PendingIncrement) (bool, error) {
	tag, err := r.pool.Exec(ctx, `INSERT INTO pending_increments
    (inventory_id, campaign_id, click_value, received_at, ready_at, processed)
VALUES ($1,$2,$3,$4,$5,false) ON CONFLICT (inventory_id) DO NOTHING`,
		inc.InventoryID, inc.CampaignID, inc.ClickValue, inc.ReceivedAt, inc.ReadyAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListReadyIncrements returns unprocessed increments whose window elapsed.
func (r *CampaignRepository) ListReadyIncrements(ctx context.Context, now time.Time) ([]domain.PendingIncrement, error) {
	rows, err := r.pool.Query(ctx, `SELECT inventory_id, campaign_id, click_value, received_at, ready_at, processed
        FROM pending_increments
        WHERE NOT processed AND ready_at <= $1
        ORDER BY inventory_id`, now)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PendingIncrement, error) {
		var inc domain.PendingIncrement
		err := row.Scan(&inc.InventoryID, &inc.CampaignID, &inc.ClickValue, &inc.ReceivedAt, &inc.ReadyAt, &inc.Processed)
		return inc, err
	})
}

// MarkIncrementsProcessed flags increments as folded into the budget.
func (r *CampaignRepository) MarkIncrementsProcessed(ctx context.Context, inventoryIDs []int64) error {
	if len(inventoryIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE pending_increments SET processed = true WHERE inventory_id = ANY($1)`, inventoryIDs)
	return err
}

// ReleaseIncrements puts claimed increments back in the pending state.
func (r *CampaignRepository) ReleaseIncrements(ctx context.Context, inventoryIDs []int64) error {
	if len(inventoryIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE pending_increments SET processed = false WHERE inventory_id = ANY($1)`, inventoryIDs)
	return err
}

// PurgeProcessedIncrements deletes processed increments.
func (r *CampaignRepository) PurgeProcessedIncrements(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pending_increments WHERE processed`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetSpendPause returns the pause recorded for the campaign on date.
func (r *CampaignRepository) GetSpendPause(ctx context.Context, campaignID int64, date time.Time) (*domain.SpendPause, error) {
	var p domain.SpendPause
	err := r.pool.QueryRow(ctx, `SELECT campaign_id, for_date, paused_at, recheck_at, cleared_at
        FROM spend_pauses WHERE campaign_id = $1 AND for_date = $2`, campaignID, domain.StartOfDay(date)).
		Scan(&p.CampaignID, &p.ForDate, &p.PausedAt, &p.RecheckAt, &p.ClearedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveSpendPause upserts the pause of a campaign for its date.
func (r *CampaignRepository) SaveSpendPause(ctx context.Context, p domain.SpendPause) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO spend_pauses (campaign_id, for_date, paused_at, recheck_at, cleared_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (campaign_id, for_date) DO UPDATE SET
    paused_at = EXCLUDED.paused_at,
    recheck_at = EXCLUDED.recheck_at,
    cleared_at = EXCLUDED.cleared_at`,
		p.CampaignID, domain.StartOfDay(p.ForDate), p.PausedAt, p.RecheckAt, p.ClearedAt)
	return err
}

// ClearSpendPause marks the live pause of a campaign as rechecked.
func (r *CampaignRepository) ClearSpendPause(ctx context.Context, campaignID int64, date, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE spend_pauses SET cleared_at = $3
        WHERE campaign_id = $1 AND for_date = $2 AND cleared_at IS NULL`, campaignID, domain.StartOfDay(date), at)
	return err
}

// DeleteSpendPausesBefore removes pauses of earlier dates.
func (r *CampaignRepository) DeleteSpendPausesBefore(ctx context.Context, campaignID int64, date time.Time) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM spend_pauses WHERE campaign_id = $1 AND for_date < $2`,
		campaignID, domain.StartOfDay(date))
	return err
}

// HasBudgetAdjustment reports whether a spend-triggered budget rewrite
// already happened on date.
func (r *CampaignRepository) HasBudgetAdjustment(ctx context.Context, campaignID int64, date time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM budget_adjustments
        WHERE campaign_id = $1 AND adjusted_for_date = $2)`, campaignID, domain.StartOfDay(date)).Scan(&exists)
	return exists, err
}

// MarkBudgetAdjusted records the spend-triggered budget rewrite of a date.
func (r *CampaignRepository) MarkBudgetAdjusted(ctx context.Context, mark domain.BudgetAdjustmentMark) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO budget_adjustments (campaign_id, adjusted_for_date, adjusted_at)
VALUES ($1,$2,$3) ON CONFLICT DO NOTHING`, mark.CampaignID, domain.StartOfDay(mark.AdjustedForDate), mark.AdjustedAt)
	return err
}
