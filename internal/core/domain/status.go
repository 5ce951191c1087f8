package domain

import "time"

// CampaignState is the display state reported to operators. It never
// drives control decisions.
type CampaignState string

const (
	StateActive       CampaignState = "ACTIVE"
	StatePausedClicks CampaignState = "PAUSED_CLICKS"
	StatePausedSpend  CampaignState = "PAUSED_SPEND"
	StateNoInventory  CampaignState = "NO_INVENTORY"
)

// CampaignStatus is the operator-facing snapshot of one campaign.
type CampaignStatus struct {
	CampaignID        int64         `json:"campaign_id"`
	ExternalID        string        `json:"external_id,omitempty"`
	State             CampaignState `json:"state"`
	AutoManage        bool          `json:"auto_manage"`
	Stale             bool          `json:"stale"`
	DailyBudget       string        `json:"daily_budget"`
	SpentToday        string        `json:"spent_today"`
	LastAction        string        `json:"last_action,omitempty"`
	LastActionAt      *time.Time    `json:"last_action_at,omitempty"`
	LastActionSuccess bool          `json:"last_action_success"`
	SpendRecheckAt    *time.Time    `json:"spend_pause_recheck_at,omitempty"`
	LastError         string        `json:"last_error,omitempty"`
	LastErrorAt       *time.Time    `json:"last_error_at,omitempty"`
}
