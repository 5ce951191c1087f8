package domain

import "time"

// SpendPause records that a campaign was suspended for exceeding the daily
// spend cap. A row with ClearedAt set stays until date rollover so the
// campaign gets only one spend cycle per day.
type SpendPause struct {
	CampaignID int64
	ForDate    time.Time
	PausedAt   time.Time
	RecheckAt  time.Time
	ClearedAt  *time.Time
}

// Live reports whether the pause is still awaiting its recheck.
func (p *SpendPause) Live() bool {
	return p != nil && p.ClearedAt == nil
}

// Due reports whether the recheck time has passed.
func (p *SpendPause) Due(now time.Time) bool {
	return p.Live() && !p.RecheckAt.After(now)
}

// BudgetAdjustmentMark suppresses a second spend-triggered budget rewrite on
// the same UTC date.
type BudgetAdjustmentMark struct {
	CampaignID      int64
	AdjustedForDate time.Time
	AdjustedAt      time.Time
}
