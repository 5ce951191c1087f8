package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoData(t *testing.T) {
	campaigns, records := DemoData(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	require.Len(t, campaigns, 3)
	require.Len(t, records, 12)
	ids := make(map[int64]bool)
	for _, c := range campaigns {
		assert.True(t, c.Managed())
		assert.NoError(t, c.Thresholds.Validate())
		assert.True(t, c.PricePerThousand.IsPositive())
	}
	for _, r := range records {
		assert.False(t, ids[r.ID], "duplicate inventory id %d", r.ID)
		ids[r.ID] = true
		assert.Less(t, r.ClicksConsumed, r.ClickLimit)
		assert.Positive(t, r.Remaining())
	}
}
