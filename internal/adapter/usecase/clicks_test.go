package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adpilot/internal/adapter/memory"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/internal/core/port/mocks"
)

func TestHysteresisBandHoldsState(t *testing.T) {
	cases := []struct {
		name      string
		active    bool
		remaining []int64
	}{
		{"active oscillating", true, []int64{8000, 14000, 8000, 14000, 8000, 14000}},
		{"paused oscillating", false, []int64{8000, 12000, 7600, 12499}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			camp := testCampaign(1)
			h := newHarness(t, []domain.Campaign{camp}, nil)
			h.platform.put(camp.ExternalID, platformCampaign{active: tc.active, budget: dec("10"), end: domain.EndOfDay(noon)})

			for _, remaining := range tc.remaining {
				h.store.PutInventory(inventory(1, 1, 20000, 20000-remaining))
				require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))
				assert.Equal(t, []string{"GetState"}, h.platform.Calls(), "remaining=%d", remaining)
				h.clock.Advance(time.Minute)
			}
			assert.Equal(t, tc.active, h.platform.get(camp.ExternalID).active)
		})
	}
}

func TestActiveCampaignPausesAtMidLower(t *testing.T) {
	camp := testCampaign(1)
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 10000, 2500)})
	h.platform.put(camp.ExternalID, platformCampaign{active: true, end: domain.EndOfDay(noon)})

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.Equal(t, []string{"GetState", "SetActive", "SetEndTime"}, h.platform.Calls())
	got := h.platform.get(camp.ExternalID)
	assert.False(t, got.active)
	assert.True(t, got.end.Equal(noon))

	m := h.campaign(t, 1).Mirror
	assert.Equal(t, domain.StatePausedClicks, m.State)
	assert.Equal(t, actionSetEndTime, m.LastAction)
	assert.True(t, m.LastActionSuccess)
}

func TestPausedCampaignActivatesAtMidRaise(t *testing.T) {
	camp := testCampaign(1)
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{
		inventory(1, 1, 10000, 0),
		inventory(2, 1, 2500, 0),
	})
	h.platform.put(camp.ExternalID, platformCampaign{end: noon.Add(-time.Hour)})

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.Equal(t, []string{"GetState", "SetEndTime", "SetActive"}, h.platform.Calls())
	got := h.platform.get(camp.ExternalID)
	assert.True(t, got.active)
	assert.True(t, got.end.Equal(time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)), "end=%s", got.end)
	assert.Equal(t, domain.StateActive, h.campaign(t, 1).Mirror.State)
}

func TestNoInventoryDominatesSpendPause(t *testing.T) {
	camp := testCampaign(1)
	exhausted := inventory(1, 1, 5000, 5000)
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{exhausted})
	h.platform.put(camp.ExternalID, platformCampaign{active: true, end: domain.EndOfDay(noon)})
	require.NoError(t, h.store.SaveSpendPause(context.Background(), domain.SpendPause{
		CampaignID: 1,
		ForDate:    domain.StartOfDay(noon),
		PausedAt:   noon.Add(-time.Minute),
		RecheckAt:  noon.Add(9 * time.Minute),
	}))

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	got := h.platform.get(camp.ExternalID)
	assert.False(t, got.active)
	assert.True(t, got.end.Equal(noon))
	assert.Equal(t, domain.StateNoInventory, h.campaign(t, 1).Mirror.State)
}

func TestClickLoopDefersToSpendGuard(t *testing.T) {
	camp := testCampaign(1)
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 20000, 0)})
	h.platform.put(camp.ExternalID, platformCampaign{end: noon})
	cleared := noon.Add(-time.Hour)
	require.NoError(t, h.store.SaveSpendPause(context.Background(), domain.SpendPause{
		CampaignID: 1,
		ForDate:    domain.StartOfDay(noon),
		PausedAt:   noon.Add(-2 * time.Hour),
		RecheckAt:  noon.Add(-time.Hour),
		ClearedAt:  &cleared,
	}))

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.Empty(t, h.platform.Calls())
	assert.False(t, h.platform.get(camp.ExternalID).active)
}

func TestEvaluateClicksIsIdempotent(t *testing.T) {
	camp := testCampaign(1)
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 4000, 0)})
	h.platform.put(camp.ExternalID, platformCampaign{active: true})

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))
	assert.Equal(t, []string{"GetState", "SetActive", "SetEndTime"}, h.platform.Calls())

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))
	assert.Equal(t, []string{"GetState"}, h.platform.Calls())
}

func TestMatchingStateIssuesNoMutation(t *testing.T) {
	cases := []struct {
		name      string
		remaining int64
		state     port.ExternalState
	}{
		{"paused below lower", 3000, port.ExternalState{Active: false, EndTime: noon.Add(-time.Hour)}},
		{"active above upper", 20000, port.ExternalState{Active: true, EndTime: domain.EndOfDay(noon)}},
		{"active without end time", 20000, port.ExternalState{Active: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := mocks.NewMockCampaignGateway(t)
			gw.EXPECT().GetState(mock.Anything, "ext-1").Return(tc.state, nil).Once()

			store := memory.NewStore([]domain.Campaign{testCampaign(1)}, []domain.InventoryRecord{inventory(1, 1, tc.remaining, 0)})
			ctrl := NewController(store, gw, &testClock{now: noon}, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

			require.NoError(t, ctrl.EvaluateClicks(context.Background()))
		})
	}
}

func TestStaleMirrorNeverMutates(t *testing.T) {
	camp := testCampaign(1)
	verified := noon.Add(-time.Minute)
	camp.Mirror = domain.ExternalStateMirror{Active: true, EndTime: domain.EndOfDay(noon), LastVerifiedAt: &verified}
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 4000, 0)})
	h.platform.put(camp.ExternalID, platformCampaign{active: true, end: domain.EndOfDay(noon)})
	h.platform.readErr = port.ErrGatewayTransient

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.Equal(t, []string{"GetState"}, h.platform.Calls())
	assert.True(t, h.platform.get(camp.ExternalID).active)
	assert.Contains(t, h.campaign(t, 1).LastError, "needs a live read")
}

func TestStaleMirrorAllowsNoop(t *testing.T) {
	camp := testCampaign(1)
	verified := noon.Add(-time.Minute)
	camp.Mirror = domain.ExternalStateMirror{Active: true, EndTime: domain.EndOfDay(noon), LastVerifiedAt: &verified}
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 9000, 0)})
	h.platform.readErr = port.ErrGatewayTransient

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.Equal(t, []string{"GetState"}, h.platform.Calls())
	assert.Empty(t, h.campaign(t, 1).LastError)
}

func TestInvalidThresholdsSkipCampaign(t *testing.T) {
	camp := testCampaign(1)
	camp.Thresholds.MidLower = camp.Thresholds.MidRaise
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 20000, 0)})
	h.platform.put(camp.ExternalID, platformCampaign{})

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.Empty(t, h.platform.Calls())
	assert.Contains(t, h.campaign(t, 1).LastError, "invalid click thresholds")
}

func TestBudgetResetOnRollover(t *testing.T) {
	camp := testCampaign(1)
	yesterday := domain.StartOfDay(noon).AddDate(0, 0, -1)
	camp.LastSyncDate = &yesterday
	camp.LastSyncAt = &yesterday
	camp.BaselineDailyBudget = dec("50")
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 20000, 0)})
	h.platform.put(camp.ExternalID, platformCampaign{active: true, budget: dec("32"), end: domain.EndOfDay(yesterday)})
	require.NoError(t, h.store.SaveSpendPause(context.Background(), domain.SpendPause{
		CampaignID: 1,
		ForDate:    yesterday,
		RecheckAt:  yesterday.Add(time.Hour),
	}))

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.Equal(t, []string{"GetState", "SetDailyBudget", "SetActive"}, h.platform.Calls())
	got := h.platform.get(camp.ExternalID)
	assert.False(t, got.active)
	assert.True(t, got.budget.Equal(dec("50")))

	synced := h.campaign(t, 1)
	require.NotNil(t, synced.LastSyncDate)
	assert.True(t, synced.LastSyncDate.Equal(domain.StartOfDay(noon)))
	pause, err := h.store.GetSpendPause(context.Background(), 1, yesterday)
	require.NoError(t, err)
	assert.Nil(t, pause)

	// The click bands take over on the next tick.
	h.clock.Advance(time.Minute)
	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))
	assert.Equal(t, []string{"GetState", "SetEndTime", "SetActive"}, h.platform.Calls())
	assert.True(t, h.platform.get(camp.ExternalID).active)
}

func TestBudgetResetAtTimeOfDay(t *testing.T) {
	camp := testCampaign(1)
	camp.BudgetResetTime = domain.TimeOfDay(12 * time.Hour)
	camp.BaselineDailyBudget = dec("25")
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 20000, 0)})
	h.clock.Advance(2 * time.Minute)
	h.platform.put(camp.ExternalID, platformCampaign{active: true, budget: dec("40"), end: domain.EndOfDay(noon)})

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))
	assert.Equal(t, []string{"GetState", "SetDailyBudget", "SetActive"}, h.platform.Calls())

	// Still inside the window, but the reset already ran.
	h.clock.Advance(time.Minute)
	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))
	assert.Equal(t, []string{"GetState", "SetActive"}, h.platform.Calls())
}

func TestZeroBaselineSkipsBudgetCall(t *testing.T) {
	camp := testCampaign(1)
	camp.LastSyncDate = nil
	h := newHarness(t, []domain.Campaign{camp}, []domain.InventoryRecord{inventory(1, 1, 20000, 0)})
	h.platform.put(camp.ExternalID, platformCampaign{budget: dec("40"), end: domain.EndOfDay(noon)})

	require.NoError(t, h.ctrl.EvaluateClicks(context.Background()))

	assert.Equal(t, []string{"GetState"}, h.platform.Calls())
	assert.NotNil(t, h.campaign(t, 1).LastSyncDate)
}
