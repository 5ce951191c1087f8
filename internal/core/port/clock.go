package port

import "time"

// Clock abstracts wall time so tick logic can be tested at fixed instants.
type Clock interface {
	Now() time.Time
}

// SystemClock is the runtime clock. It always reports UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
