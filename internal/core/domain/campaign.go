package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign represents a locally managed advertising campaign that mirrors an
// externally hosted one. Money values are decimals in the account currency.
type Campaign struct {
	ID   int64
	Name string
	// ExternalID identifies the campaign on the ad platform. Empty disables
	// the controller for this campaign.
	ExternalID          string
	AutoManageEnabled   bool
	Thresholds          Thresholds
	PricePerThousand    decimal.Decimal // price of 1000 clicks
	BaselineDailyBudget decimal.Decimal
	BudgetResetTime     TimeOfDay // UTC
	LastSyncDate        *time.Time
	LastSyncAt          *time.Time
	Mirror              ExternalStateMirror
	LastError           string
	LastErrorAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Managed reports whether the controller may act on the campaign.
func (c *Campaign) Managed() bool {
	return c.AutoManageEnabled && c.ExternalID != ""
}

// ClickValue converts a number of clicks into money at the campaign price.
func (c *Campaign) ClickValue(clicks int64) decimal.Decimal {
	if clicks <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(clicks).Div(decimal.NewFromInt(1000)).Mul(c.PricePerThousand)
}

// ExternalStateMirror is the controller's cached belief about the remote
// campaign. It is advisory only: a live gateway read always wins.
type ExternalStateMirror struct {
	Active            bool
	DailyBudget       decimal.Decimal
	EndTime           time.Time
	SpentToday        decimal.Decimal
	State             CampaignState
	Stale             bool
	LastVerifiedAt    *time.Time
	LastAction        string
	LastActionAt      *time.Time
	LastActionSuccess bool
}

// Verified reports whether the mirror ever reflected a live read.
func (m ExternalStateMirror) Verified() bool {
	return m.LastVerifiedAt != nil
}
