package domain

import "time"

// InventoryStatus enumerates the lifecycle states of an inventory record.
type InventoryStatus string

const (
	InventoryActive    InventoryStatus = "active"
	InventoryPaused    InventoryStatus = "paused"
	InventoryCompleted InventoryStatus = "completed"
	InventoryDeleted   InventoryStatus = "deleted"
)

// InventoryRecord is a URL carrying a click quota inside a campaign.
type InventoryRecord struct {
	ID             int64
	CampaignID     int64
	URL            string
	ClickLimit     int64
	ClicksConsumed int64
	Status         InventoryStatus
	CreatedAt      time.Time
}

// Remaining returns the unconsumed quota floored at zero.
func (r InventoryRecord) Remaining() int64 {
	if r.ClicksConsumed >= r.ClickLimit {
		return 0
	}
	return r.ClickLimit - r.ClicksConsumed
}

// TotalRemaining sums Remaining over active records.
func TotalRemaining(records []InventoryRecord) int64 {
	var total int64
	for _, r := range records {
		if r.Status != InventoryActive {
			continue
		}
		total += r.Remaining()
	}
	return total
}
