package domain

import "time"

// Cart is the per-user staging area of intended purchases. Line prices are
// never stored on the cart; they are read from the catalog at fetch time, so
// totals follow current product prices.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Lines     []CartLine `json:"lines"`
}

type CartLine struct {
	ID          string    `json:"id"`
	CartID      string    `json:"cartId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	Quantity    int       `json:"quantity"`
	// UnitPriceCents is the current catalog price, populated on read.
	UnitPriceCents int64     `json:"unitPriceCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TotalCents is the live line total at current catalog prices.
func (l CartLine) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// TotalCents sums the live line totals.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.TotalCents()
	}
	return total
}
