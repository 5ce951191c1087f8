package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"adpilot/internal/core/domain"
)

// DemoData builds a few auto-managed campaigns with randomly consumed
// inventory. External ids are demo-1, demo-2, ...
func DemoData(now time.Time) ([]domain.Campaign, []domain.InventoryRecord) {
	r := rand.New(rand.NewSource(now.UnixNano()))

	var (
		campaigns []domain.Campaign
		records   []domain.InventoryRecord
	)
	for i := int64(1); i <= 3; i++ {
		campaigns = append(campaigns, domain.Campaign{
			ID:                  i,
			Name:                fmt.Sprintf("Campaign %d", i),
			ExternalID:          fmt.Sprintf("demo-%d", i),
			AutoManageEnabled:   true,
			Thresholds:          domain.DefaultThresholds(),
			PricePerThousand:    decimal.NewFromInt(10 * i),
			BaselineDailyBudget: decimal.NewFromInt(5 * i),
			CreatedAt:           now,
			UpdatedAt:           now,
		})
		for j := int64(1); j <= 4; j++ {
			limit := 1000 * (1 + r.Int63n(5))
			records = append(records, domain.InventoryRecord{
				ID:             (i-1)*10 + j,
				CampaignID:     i,
				URL:            fmt.Sprintf("https://example.com/offer/%d", (i-1)*10+j),
				ClickLimit:     limit,
				ClicksConsumed: r.Int63n(limit),
				Status:         domain.InventoryActive,
				CreatedAt:      now,
			})
		}
	}
	return campaigns, records
}

// Seed inserts DemoData into the registry. Existing rows are left alone, so
// it is safe to run on every start.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	campaigns, records := DemoData(time.Now().UTC())

	for _, c := range campaigns {
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, name, external_id, auto_manage, click_upper_threshold, click_lower_threshold,
     mid_band_raise_threshold, mid_band_lower_threshold, price_per_thousand,
     baseline_daily_budget, budget_reset_time, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12) ON CONFLICT DO NOTHING`,
			c.ID, c.Name, c.ExternalID, c.AutoManageEnabled,
			c.Thresholds.Upper, c.Thresholds.Lower, c.Thresholds.MidRaise, c.Thresholds.MidLower,
			c.PricePerThousand, c.BaselineDailyBudget, c.BudgetResetTime.String(), c.CreatedAt)
		if err != nil {
			return fmt.Errorf("seed campaign %d: %w", c.ID, err)
		}
	}

	for _, rec := range records {
		_, err := db.Exec(ctx, `INSERT INTO inventory_records
(id, campaign_id, url, click_limit, clicks_consumed, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT DO NOTHING`,
			rec.ID, rec.CampaignID, rec.URL, rec.ClickLimit, rec.ClicksConsumed, string(rec.Status), rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("seed inventory %d: %w", rec.ID, err)
		}
	}

	// keep BIGSERIAL ahead of the explicit ids above
	for _, table := range []string{"campaigns", "inventory_records"} {
		_, err := db.Exec(ctx, fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))`, table, table))
		if err != nil {
			return fmt.Errorf("seed sequence %s: %w", table, err)
		}
	}
	return nil
}
