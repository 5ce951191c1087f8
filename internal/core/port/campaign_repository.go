package port

import (
	"context"
	"errors"
	"time"

	"adpilot/internal/core/domain"
)

var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrInventoryNotFound = errors.New("inventory record not found")
)

// CampaignRepository is the storage port covering the campaign registry,
// the inventory ledger and the controller's durable bookkeeping. Writes to
// mirror fields are last-writer-wins per campaign. Implementations must be
// safe for concurrent use.
type CampaignRepository interface {
	// ListAutoManagedCampaigns returns campaigns with auto-management
	// enabled and an external id.
	ListAutoManagedCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// GetCampaign returns nil when the campaign does not exist.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)

	// ListActiveInventory returns active inventory records of a campaign.
	ListActiveInventory(ctx context.Context, campaignID int64) ([]domain.InventoryRecord, error)
	// GetInventory returns nil when the record does not exist.
	GetInventory(ctx context.Context, id int64) (*domain.InventoryRecord, error)

	// UpdateMirror overwrites the cached external state of a campaign.
	UpdateMirror(ctx context.Context, campaignID int64, mirror domain.ExternalStateMirror) error
	// MarkSynced records a budget reset for the given date.
	MarkSynced(ctx context.Context, campaignID int64, date, at time.Time) error
	// RecordError stores the last error shown to operators. An empty
	// message clears it.
	RecordError(ctx context.Context, campaignID int64, message string, at time.Time) error

	// EnqueuePendingIncrement inserts the increment unless one already
	// exists for the inventory record. It reports whether a row was added.
	EnqueuePendingIncrement(ctx context.Context, inc domain.PendingIncrement) (bool, error)
	// ListReadyIncrements returns unprocessed increments with ReadyAt <= now.
	ListReadyIncrements(ctx context.Context, now time.Time) ([]domain.PendingIncrement, error)
	MarkIncrementsProcessed(ctx context.Context, inventoryIDs []int64) error
	// ReleaseIncrements returns processed increments to the pending state.
	ReleaseIncrements(ctx context.Context, inventoryIDs []int64) error
	PurgeProcessedIncrements(ctx context.Context) (int64, error)

	// GetSpendPause returns the pause of the campaign for date, live or
	// cleared, or nil.
	GetSpendPause(ctx context.Context, campaignID int64, date time.Time) (*domain.SpendPause, error)
	SaveSpendPause(ctx context.Context, pause domain.SpendPause) error
	ClearSpendPause(ctx context.Context, campaignID int64, date, at time.Time) error
	// DeleteSpendPausesBefore drops pauses recorded for dates before date.
	DeleteSpendPausesBefore(ctx context.Context, campaignID int64, date time.Time) error

	HasBudgetAdjustment(ctx context.Context, campaignID int64, date time.Time) (bool, error)
	MarkBudgetAdjusted(ctx context.Context, mark domain.BudgetAdjustmentMark) error
}
