package stats

import (
	"context"
	"time"
)

// Summary aggregates the staff dashboard counters. TotalSalesCents sums
// order line totals (frozen prices) over the selected period.
type Summary struct {
	Users           int   `json:"users"`
	Products        int   `json:"products"`
	Orders          int   `json:"orders"`
	TotalSalesCents int64 `json:"totalSalesCents"`
}

type Repository interface {
	// Summarize counts users and products globally, and orders/sales created
	// at or after since. A zero since means all time.
	Summarize(ctx context.Context, since time.Time) (*Summary, error)
}
