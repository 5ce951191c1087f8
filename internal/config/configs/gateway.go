package configs

import (
	"net/url"
	"time"
)

// Gateway configures the HTTP client for the external ad platform.
type Gateway struct {
	BaseURL url.URL `env:"BASE_URL" envDefault:"http://localhost:9090/v1"`

	// Token is sent as a bearer token on every request.
	Token   string        `env:"TOKEN"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
	// RateLimit is the sustained request rate allowed by the platform, in
	// requests per second. Burst is the bucket size.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"5"`
	Burst     int     `env:"BURST" envDefault:"5"`
}
