package usecase

import (
	"context"
	"log/slog"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// Status returns the operator view of a campaign. It reads only local
// state and is never used for control decisions.
func (c *Controller) Status(ctx context.Context, campaignID int64) (*domain.CampaignStatus, error) {
	camp, err := c.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, port.ErrCampaignNotFound
	}

	m := camp.Mirror
	st := &domain.CampaignStatus{
		CampaignID:        camp.ID,
		ExternalID:        camp.ExternalID,
		State:             m.State,
		AutoManage:        camp.AutoManageEnabled,
		Stale:             m.Stale,
		DailyBudget:       m.DailyBudget.StringFixed(2),
		SpentToday:        m.SpentToday.StringFixed(2),
		LastAction:        m.LastAction,
		LastActionAt:      m.LastActionAt,
		LastActionSuccess: m.LastActionSuccess,
		LastError:         camp.LastError,
		LastErrorAt:       camp.LastErrorAt,
	}
	if st.State == "" {
		st.State = domain.StatePausedClicks
		if m.Active {
			st.State = domain.StateActive
		}
	}

	pause, err := c.repo.GetSpendPause(ctx, camp.ID, c.now())
	if err != nil {
		c.logger.Warn("spend pause lookup failed", slog.Int64("campaign_id", camp.ID), slog.Any("error", err))
	} else if pause.Live() {
		st.State = domain.StatePausedSpend
		recheck := pause.RecheckAt
		st.SpendRecheckAt = &recheck
	}
	return st, nil
}
