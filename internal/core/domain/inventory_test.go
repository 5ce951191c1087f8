package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotalRemaining(t *testing.T) {
	records := []InventoryRecord{
		{ClickLimit: 1000, ClicksConsumed: 250, Status: InventoryActive},
		{ClickLimit: 500, ClicksConsumed: 700, Status: InventoryActive},
		{ClickLimit: 9000, Status: InventoryPaused},
		{ClickLimit: 300, Status: InventoryActive},
	}
	if got := TotalRemaining(records); got != 1050 {
		t.Fatalf("TotalRemaining = %d, want 1050", got)
	}
}

func TestClickValue(t *testing.T) {
	c := Campaign{PricePerThousand: decimal.RequireFromString("20")}
	if got := c.ClickValue(1000); !got.Equal(decimal.RequireFromString("20")) {
		t.Errorf("ClickValue(1000) = %s", got)
	}
	if got := c.ClickValue(150); !got.Equal(decimal.RequireFromString("3")) {
		t.Errorf("ClickValue(150) = %s", got)
	}
	if got := c.ClickValue(-5); !got.IsZero() {
		t.Errorf("ClickValue(-5) = %s", got)
	}
}
