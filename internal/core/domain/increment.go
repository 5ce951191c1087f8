package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingIncrement is the budget share of a newly created inventory record
// waiting for the debounce window to pass. ClickValue is fixed at enqueue
// time and never recomputed.
type PendingIncrement struct {
	InventoryID int64
	CampaignID  int64
	ClickValue  decimal.Decimal
	ReceivedAt  time.Time
	ReadyAt     time.Time
	Processed   bool
}

// Ready reports whether the increment may be folded into the budget.
func (p PendingIncrement) Ready(now time.Time) bool {
	return !p.Processed && !p.ReadyAt.After(now)
}
