package configs

import (
	"time"

	"github.com/shopspring/decimal"
)

// Controller configures the campaign controller timers and the money and
// volume floors used by the spend guard. Intervals accept Go duration
// syntax ("90s", "2m30s"). Money values are decimal strings.
type Controller struct {
	// ClickInterval is the period of the click-threshold loop.
	ClickInterval time.Duration `env:"CLICK_INTERVAL" envDefault:"60s"`
	// SpendInterval is the period of the spend guard.
	SpendInterval time.Duration `env:"SPEND_INTERVAL" envDefault:"2m30s"`
	// IncrementInterval is the period of the pending increment drain.
	IncrementInterval time.Duration `env:"INCREMENT_INTERVAL" envDefault:"2m"`
	// SpendRefreshInterval is the period of the display-only spend refresh.
	SpendRefreshInterval time.Duration `env:"SPEND_REFRESH_INTERVAL" envDefault:"5m"`

	DebounceWindow    time.Duration `env:"DEBOUNCE_WINDOW" envDefault:"10m"`
	SpendRecheckDelay time.Duration `env:"SPEND_RECHECK_DELAY" envDefault:"10m"`
	// ResetTolerance is the window around a campaign's budget reset time of
	// day in which the reset fires.
	ResetTolerance time.Duration `env:"RESET_TOLERANCE" envDefault:"5m"`
	// CallTimeout bounds every external gateway call.
	CallTimeout time.Duration `env:"CALL_TIMEOUT" envDefault:"30s"`
	// Concurrency is how many campaigns a tick processes at once.
	Concurrency int `env:"CONCURRENCY" envDefault:"4"`

	DailySpendCap  decimal.Decimal `env:"DAILY_SPEND_CAP" envDefault:"10"`
	MinSpentFloor  decimal.Decimal `env:"MIN_SPENT_FLOOR" envDefault:"10"`
	MinVolumeFloor int64           `env:"MIN_VOLUME_FLOOR" envDefault:"10000"`
}
