package port

import (
	"context"

	"adpilot/internal/core/domain"
)

// ControllerUseCase defines the operations the controller exposes to the
// HTTP layer. Mock implementations can be generated from this interface
// for testing.
type ControllerUseCase interface {
	// Status returns the operator snapshot of a campaign, or
	// ErrCampaignNotFound.
	Status(ctx context.Context, campaignID int64) (*domain.CampaignStatus, error)

	// EnqueueInventory schedules the budget share of a newly created
	// inventory record for debounced aggregation. It reports whether an
	// increment was queued; records that are inactive, already queued or
	// belong to unmanaged campaigns are ignored. Unknown records return
	// ErrInventoryNotFound.
	EnqueueInventory(ctx context.Context, inventoryID int64) (bool, error)
}
