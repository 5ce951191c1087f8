package port

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrGatewayNotFound means the external campaign vanished; the local
	// mirror can no longer be trusted.
	ErrGatewayNotFound = errors.New("external campaign not found")
	// ErrGatewayAuth means the platform rejected our credentials.
	ErrGatewayAuth = errors.New("external campaign api unauthorized")
	// ErrGatewayTransient covers network failures, timeouts, throttling and
	// 5xx answers. It is retried on the next tick, never in place.
	ErrGatewayTransient = errors.New("external campaign api unavailable")
)

// ExternalState is a live snapshot of a campaign on the ad platform.
type ExternalState struct {
	Active      bool
	DailyBudget decimal.Decimal
	EndTime     time.Time // zero when the platform reports none
	Raw         []byte
}

// CampaignGateway is the outbound port to the externally hosted ad
// platform. It is unreliable, rate-limited and eventually consistent: a
// successful mutating call does not guarantee the next read reflects it.
type CampaignGateway interface {
	// GetState reads the current activation, budget and end time.
	GetState(ctx context.Context, externalID string) (ExternalState, error)
	// SetActive activates or pauses the campaign.
	SetActive(ctx context.Context, externalID string, active bool) error
	// SetDailyBudget replaces the daily spending cap. Amount must be >= 0.
	SetDailyBudget(ctx context.Context, externalID string, amount decimal.Decimal) error
	// SetEndTime moves the serving end time.
	SetEndTime(ctx context.Context, externalID string, end time.Time) error
	// GetSpentToday returns spend between the given UTC dates inclusive.
	GetSpentToday(ctx context.Context, externalID string, dateFrom, dateTo time.Time) (decimal.Decimal, error)
}
