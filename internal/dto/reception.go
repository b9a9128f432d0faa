package dto

type SendReceptionRequest struct {
	RoomNumber string `json:"roomNumber"`
}

type ReceptionOrder struct {
	ID                 uint           `json:"id"`
	TicketNumber       string         `json:"ticketNumber"`
	Items              []OrderItemDTO `json:"items"`
	Total              float64        `json:"total"`
	Discount           float64        `json:"discount"`
	FinalTotal         float64        `json:"finalTotal"`
	Status             string         `json:"status"`
	PaymentMethod      *string        `json:"paymentMethod"`
	CreatedAt          string         `json:"createdAt"`
	ReceptionPrintedAt *string        `json:"receptionPrintedAt"`
}

// RoomGroup batches the reception orders of one hotel room with the sum
// still owed on it.
type RoomGroup struct {
	RoomNumber  string           `json:"roomNumber"`
	Orders      []ReceptionOrder `json:"orders"`
	TotalAmount float64          `json:"totalAmount"`
}
