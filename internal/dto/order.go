package dto

import "time"

type NewOrderItem struct {
	ProductID   *int    `json:"productId,omitempty"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type CreateOrderRequest struct {
	Items      []NewOrderItem `json:"items"`
	ClientName string         `json:"clientName,omitempty"`
	MealTime   string         `json:"mealTime"`
	Notes      string         `json:"notes,omitempty"`
}

type CreateOrderResponse struct {
	Message      string  `json:"message"`
	OrderID      uint    `json:"orderId"`
	Total        float64 `json:"total"`
	TicketNumber string  `json:"ticketNumber"`
}

type AddItemsRequest struct {
	Items []NewOrderItem `json:"items"`
}

type AddItemsResponse struct {
	Message         string  `json:"message"`
	OrderID         uint    `json:"orderId"`
	AdditionalTotal float64 `json:"additionalTotal"`
	NewTotal        float64 `json:"newTotal"`
}

type UpdateOrderRequest struct {
	Items         []NewOrderItem `json:"items,omitempty"`
	Status        *string        `json:"status,omitempty"`
	PaymentMethod *string        `json:"paymentMethod,omitempty"`
	Discount      *float64       `json:"discount,omitempty"`
	DiscountType  *string        `json:"discountType,omitempty"`
	PaidAmount    *float64       `json:"paidAmount,omitempty"`
}

type OrderItemDTO struct {
	ID           uint      `json:"id"`
	ProductID    *int      `json:"productId"`
	ProductName  string    `json:"productName"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Total        float64   `json:"total"`
	CategoryType string    `json:"categoryType"`
	AddedByID    int       `json:"addedById"`
	AddedAt      time.Time `json:"addedAt"`
}

type OrderDTO struct {
	ID                 uint           `json:"id"`
	TicketNumber       string         `json:"ticketNumber"`
	ServeurID          int            `json:"serveurId"`
	ServerName         string         `json:"serverName,omitempty"`
	Status             string         `json:"status"`
	Total              float64        `json:"total"`
	ClientName         *string        `json:"clientName"`
	MealTime           string         `json:"mealTime"`
	Notes              *string        `json:"notes"`
	PaymentMethod      *string        `json:"paymentMethod"`
	Discount           float64        `json:"discount"`
	DiscountType       *string        `json:"discountType"`
	PaidAmount         float64        `json:"paidAmount"`
	RoomNumber         *string        `json:"roomNumber"`
	SentToReception    bool           `json:"sentToReception"`
	ReceptionPrintedAt *time.Time     `json:"receptionPrintedAt"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	Items              []OrderItemDTO `json:"items,omitempty"`
}

type ClearSystemResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type ZReportItem struct {
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Total        float64 `json:"total"`
	Price        float64 `json:"price"`
	CategoryType string  `json:"categoryType,omitempty"`
}

type ZReportPayment struct {
	PaymentMethod string  `json:"paymentMethod"`
	Count         int     `json:"count"`
	Total         float64 `json:"total"`
	PaidAmount    float64 `json:"paidAmount"`
}

type ZReport struct {
	Date           string           `json:"date"`
	Orders         int              `json:"orders"`
	TotalSales     float64          `json:"totalSales"`
	TotalDiscount  float64          `json:"totalDiscount"`
	PaymentSummary []ZReportPayment `json:"paymentSummary"`
	ItemsSummary   []ZReportItem    `json:"itemsSummary"`
	DrinksDetails  []ZReportItem    `json:"drinksDetails"`
}
