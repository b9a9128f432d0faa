package domain

import "time"

// OrderItem is one product/quantity/price line attached to an order.
// ProductID is nil for manually entered lines; ProductName is a snapshot
// taken when the line was added, never a live catalog reference.
type OrderItem struct {
	ID           uint
	OrderID      uint
	ProductID    *int
	ProductName  string
	Quantity     int
	Price        float64
	Total        float64
	CategoryType string
	AddedByID    int
	AddedAt      time.Time
}

const (
	CategoryTypeMeal     = "meal"
	CategoryTypeBeverage = "beverage"
)
