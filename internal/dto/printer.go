package dto

import "time"

type SavePrinterRequest struct {
	Destination string `json:"destination"`
	Kind        string `json:"printerType"`
	Name        string `json:"printerName"`
	USBPort     string `json:"usbPort,omitempty"`
	NetworkIP   string `json:"networkIp,omitempty"`
	NetworkPort int    `json:"networkPort,omitempty"`
	Global      bool   `json:"global,omitempty"`
}

type PrinterDTO struct {
	ID          uint      `json:"id"`
	OwnerScope  string    `json:"ownerScope"`
	Destination string    `json:"destination"`
	Kind        string    `json:"printerType"`
	Name        string    `json:"printerName"`
	USBPort     *string   `json:"usbPort"`
	NetworkIP   *string   `json:"networkIp"`
	NetworkPort *int      `json:"networkPort"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TestPrinterRequest struct {
	Kind        string `json:"printerType"`
	Name        string `json:"printerName"`
	USBPort     string `json:"usbPort,omitempty"`
	NetworkIP   string `json:"networkIp,omitempty"`
	NetworkPort int    `json:"networkPort,omitempty"`
}

type TicketStyleDTO struct {
	CompanyName    string `json:"companyName"`
	HeaderText     string `json:"headerText"`
	FooterText     string `json:"footerText"`
	ShowDate       bool   `json:"showDate"`
	ShowTime       bool   `json:"showTime"`
	ShowServerName bool   `json:"showServerName"`
	FontSize       string `json:"fontSize"`
	PaperWidth     int    `json:"paperWidth"`
}
