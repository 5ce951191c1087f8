package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/internal/metrics"
)

// Action names recorded in the mirror and exported as metrics.
const (
	actionActivate    = "activate"
	actionPause       = "pause"
	actionSetEndTime  = "set_end_time"
	actionSetBudget   = "set_daily_budget"
	actionRemainPause = "remain_paused"
)

// reconcile reads the live external state of camp and folds it into the
// mirror. It is the single check-before-act read shared by all loops. When
// the read fails transiently and the mirror was verified before, the mirror
// is returned with live=false: callers may use it to decide that nothing
// needs to change, but must not mutate on it.
func (c *Controller) reconcile(ctx context.Context, camp *domain.Campaign) (domain.ExternalStateMirror, bool, error) {
	st, err := c.getState(ctx, camp.ExternalID)
	if err != nil {
		if errors.Is(err, port.ErrGatewayNotFound) || errors.Is(err, port.ErrGatewayAuth) {
			return camp.Mirror, false, err
		}
		if camp.Mirror.Verified() {
			c.logger.Warn("live read failed, using mirror",
				slog.Int64("campaign_id", camp.ID),
				slog.String("external_id", camp.ExternalID),
				slog.Any("error", err),
			)
			return camp.Mirror, false, nil
		}
		return camp.Mirror, false, err
	}

	now := c.now()
	camp.Mirror.Active = st.Active
	camp.Mirror.DailyBudget = st.DailyBudget
	camp.Mirror.EndTime = st.EndTime
	camp.Mirror.LastVerifiedAt = &now
	camp.Mirror.Stale = false
	return camp.Mirror, true, nil
}

func (c *Controller) getState(ctx context.Context, externalID string) (port.ExternalState, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()
	return c.gateway.GetState(ctx, externalID)
}

// mutate issues one mutating gateway call under the call timeout and records
// its outcome in the mirror. The optimistic mirror update on success is the
// caller's job; the next tick's live read corrects it if the platform did
// not apply the change.
func (c *Controller) mutate(ctx context.Context, camp *domain.Campaign, action string, call func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	err := call(callCtx)
	cancel()

	now := c.now()
	camp.Mirror.LastAction = action
	camp.Mirror.LastActionAt = &now
	camp.Mirror.LastActionSuccess = err == nil
	metrics.RecordAction(action, err == nil)

	if err != nil {
		c.saveMirror(ctx, camp)
		return fmt.Errorf("%s: %w", action, err)
	}
	c.logger.Info("campaign updated",
		slog.Int64("campaign_id", camp.ID),
		slog.String("external_id", camp.ExternalID),
		slog.String("action", action),
	)
	return nil
}

func errNotLive(action string) error {
	return fmt.Errorf("%w: %s needs a live read", port.ErrGatewayTransient, action)
}

// ensureActive makes the external campaign active and serving at least
// until the end of the current UTC day. With pinEOD a later end time is
// pulled back to 23:59:59 as well. It issues no call when the state already
// matches.
func (c *Controller) ensureActive(ctx context.Context, camp *domain.Campaign, live bool, state domain.CampaignState, pinEOD bool) error {
	eod := domain.EndOfDay(c.now())
	end := camp.Mirror.EndTime
	needEnd := !end.IsZero() && end.Before(eod)
	if pinEOD {
		needEnd = !end.Equal(eod)
	}
	needActivate := !camp.Mirror.Active

	if (needEnd || needActivate) && !live {
		return errNotLive(actionActivate)
	}
	if needEnd {
		err := c.mutate(ctx, camp, actionSetEndTime, func(ctx context.Context) error {
			return c.gateway.SetEndTime(ctx, camp.ExternalID, eod)
		})
		if err != nil {
			return err
		}
		camp.Mirror.EndTime = eod
	}
	if needActivate {
		err := c.mutate(ctx, camp, actionActivate, func(ctx context.Context) error {
			return c.gateway.SetActive(ctx, camp.ExternalID, true)
		})
		if err != nil {
			return err
		}
		camp.Mirror.Active = true
	}
	camp.Mirror.State = state
	return nil
}

// ensurePaused makes the external campaign inactive. With endNow the end
// time is also pulled to the current instant so the platform stops serving
// immediately; an end time already in the past is left alone.
func (c *Controller) ensurePaused(ctx context.Context, camp *domain.Campaign, live bool, state domain.CampaignState, endNow bool) error {
	now := c.now()
	needPause := camp.Mirror.Active
	needEnd := endNow && (camp.Mirror.EndTime.IsZero() || camp.Mirror.EndTime.After(now))

	if (needPause || needEnd) && !live {
		return errNotLive(actionPause)
	}
	if needPause {
		err := c.mutate(ctx, camp, actionPause, func(ctx context.Context) error {
			return c.gateway.SetActive(ctx, camp.ExternalID, false)
		})
		if err != nil {
			return err
		}
		camp.Mirror.Active = false
	}
	if needEnd {
		end := now.Truncate(time.Second)
		err := c.mutate(ctx, camp, actionSetEndTime, func(ctx context.Context) error {
			return c.gateway.SetEndTime(ctx, camp.ExternalID, end)
		})
		if err != nil {
			return err
		}
		camp.Mirror.EndTime = end
	}
	camp.Mirror.State = state
	return nil
}

// setBudget replaces the daily budget unless it already equals amount.
func (c *Controller) setBudget(ctx context.Context, camp *domain.Campaign, live bool, amount decimal.Decimal) error {
	amount = amount.Round(2)
	if camp.Mirror.DailyBudget.Equal(amount) {
		return nil
	}
	if !live {
		return errNotLive(actionSetBudget)
	}
	err := c.mutate(ctx, camp, actionSetBudget, func(ctx context.Context) error {
		return c.gateway.SetDailyBudget(ctx, camp.ExternalID, amount)
	})
	if err != nil {
		return err
	}
	camp.Mirror.DailyBudget = amount
	return nil
}
