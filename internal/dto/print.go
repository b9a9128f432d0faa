package dto

type PrintOrderRequest struct {
	OrderID uint `json:"orderId"`
}

type PrintedEntry struct {
	Destination string `json:"destination"`
	Printer     string `json:"printer"`
	Items       int    `json:"items"`
}

type PrintErrorEntry struct {
	Destination string `json:"destination"`
	Error       string `json:"error"`
}

// PrintReport is the per-destination outcome of one dispatch; a failed
// destination never hides a successful one.
type PrintReport struct {
	OrderID uint              `json:"orderId"`
	Printed []PrintedEntry    `json:"printed"`
	Errors  []PrintErrorEntry `json:"errors"`
}
