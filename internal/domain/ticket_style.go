package domain

import "time"

// TicketStyle holds the client-receipt presentation options a cashier can
// customize. Kitchen and bar tickets ignore it.
type TicketStyle struct {
	ID             uint
	CaissierID     int
	CompanyName    string
	HeaderText     string
	FooterText     string
	ShowDate       bool
	ShowTime       bool
	ShowServerName bool
	FontSize       string
	PaperWidth     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const (
	FontSizeNormal = "normal"
	FontSizeLarge  = "large"
	FontSizeSmall  = "small"
)

// DefaultTicketStyle is used when a cashier has saved no customization.
func DefaultTicketStyle() TicketStyle {
	return TicketStyle{
		CompanyName:    "YOU CAISSE PRO",
		FooterText:     "Merci de votre visite!",
		ShowDate:       true,
		ShowTime:       true,
		ShowServerName: true,
		FontSize:       FontSizeNormal,
		PaperWidth:     80,
	}
}
