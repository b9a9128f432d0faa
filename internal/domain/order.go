package domain

import "time"

type Order struct {
	ID                 uint
	TicketNumber       string
	ServeurID          int
	CreatedByID        int
	PaidBy             *int
	Status             string
	Total              float64
	ClientName         *string
	MealTime           string
	Notes              *string
	PaymentMethod      *string
	Discount           float64
	DiscountType       *string
	PaidAmount         float64
	RoomNumber         *string
	SentToReception    bool
	ReceptionPrintedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// ServerName is filled from the users join on reads; it is not a
	// stored column.
	ServerName string
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodCheque = "cheque"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeAmount     = "amount"
)

// IsTerminal reports whether the order can no longer change state.
func (o Order) IsTerminal() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusCancelled
}

// FinalTotal is the amount actually owed after the discount. The discount
// field always stores a currency amount; discountType records how the
// cashier expressed it at payment time.
func (o Order) FinalTotal() float64 {
	total := o.Total - o.Discount
	if total < 0 {
		return 0
	}
	return total
}
