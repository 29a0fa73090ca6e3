package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the enumerated statuses. Transitions are
// deliberately unguarded: any status may follow any other.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is an immutable purchase record. Only Status (and UpdatedAt) change
// after creation; lines and their prices are frozen at materialization time.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Lines     []OrderLine `json:"lines"`
}

type OrderLine struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	// UnitPriceCents is the snapshot price copied from the catalog when the
	// order was materialized; later catalog changes never affect it.
	UnitPriceCents int64 `json:"unitPriceCents"`
}

func (l OrderLine) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

func (o Order) TotalCents() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.TotalCents()
	}
	return total
}
