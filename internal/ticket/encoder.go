// Package ticket serializes orders into ESC/POS byte sequences for thermal
// printers. Encoding is deterministic: the same order, items, destination
// and style always produce byte-identical output.
package ticket

import (
	"bytes"
	"fmt"
	"time"

	"caissepro/internal/domain"
)

// ESC/POS control sequences. Only the subset the tickets need.
var (
	cmdInit        = []byte{0x1B, 0x40}
	cmdAlignLeft   = []byte{0x1B, 0x61, 0x00}
	cmdAlignCenter = []byte{0x1B, 0x61, 0x01}
	cmdBoldOn      = []byte{0x1B, 0x45, 0x01}
	cmdBoldOff     = []byte{0x1B, 0x45, 0x00}
	cmdSizeNormal  = []byte{0x1D, 0x21, 0x00}
	cmdSizeDouble  = []byte{0x1D, 0x21, 0x11}
	cmdFeed3       = []byte{0x1B, 0x64, 0x03}
	cmdCut         = []byte{0x1D, 0x56, 0x00}
)

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeClient renders the client receipt honoring the cashier's style
// options. Zero-value style fields fall back to the documented defaults.
func (e *Encoder) EncodeClient(order domain.Order, items []domain.OrderItem, style domain.TicketStyle) []byte {
	style = withDefaults(style)

	var buf bytes.Buffer
	buf.Write(cmdInit)

	switch style.FontSize {
	case domain.FontSizeLarge:
		buf.Write(cmdSizeDouble)
	case domain.FontSizeSmall:
		buf.Write(cmdSizeNormal)
	}

	buf.Write(cmdAlignCenter)
	buf.Write(cmdBoldOn)
	fmt.Fprintf(&buf, "%s\n", style.CompanyName)
	buf.WriteString("================\n")
	buf.Write(cmdBoldOff)

	if style.HeaderText != "" {
		fmt.Fprintf(&buf, "%s\n", style.HeaderText)
		buf.WriteString("----------------\n")
	}

	buf.Write(cmdAlignLeft)
	fmt.Fprintf(&buf, "\nTicket N°: %s\n", order.TicketNumber)
	fmt.Fprintf(&buf, "Client: %s\n", clientName(order))

	if style.ShowDate {
		fmt.Fprintf(&buf, "Date: %s\n", order.CreatedAt.Format("02/01/2006"))
	}
	if style.ShowTime {
		fmt.Fprintf(&buf, "Heure: %s\n", order.CreatedAt.Format("15:04:05"))
	}
	if order.MealTime != "" {
		fmt.Fprintf(&buf, "Heure repas: %s\n", order.MealTime)
	}
	if style.ShowServerName && order.ServerName != "" {
		fmt.Fprintf(&buf, "Serveur: %s\n", order.ServerName)
	}

	buf.WriteString("--------------------------------\n")

	for _, item := range items {
		fmt.Fprintf(&buf, "%dx %s\n", item.Quantity, item.ProductName)
		fmt.Fprintf(&buf, "   %.2f MAD\n", item.Total)
	}

	buf.WriteString("--------------------------------\n")

	buf.Write(cmdBoldOn)
	fmt.Fprintf(&buf, "TOTAL: %.2f MAD\n", order.Total)
	buf.Write(cmdBoldOff)

	if order.Notes != nil && *order.Notes != "" {
		fmt.Fprintf(&buf, "\nNotes: %s\n", *order.Notes)
	}

	buf.Write(cmdAlignCenter)
	fmt.Fprintf(&buf, "\n%s\n", style.FooterText)

	buf.Write(cmdFeed3)
	buf.Write(cmdCut)

	return buf.Bytes()
}

// EncodeKitchen renders the bar/kitchen ticket: banner, order info, bold
// quantity+name lines, notes. No pricing.
func (e *Encoder) EncodeKitchen(order domain.Order, items []domain.OrderItem, destination string) []byte {
	var buf bytes.Buffer
	buf.Write(cmdInit)

	buf.Write(cmdAlignCenter)
	buf.Write(cmdBoldOn)
	fmt.Fprintf(&buf, "=== %s ===\n", destination)
	buf.Write(cmdBoldOff)

	buf.Write(cmdAlignLeft)
	fmt.Fprintf(&buf, "\nTicket: %s\n", order.TicketNumber)
	fmt.Fprintf(&buf, "Client: %s\n", clientName(order))
	if order.MealTime != "" {
		buf.Write(cmdBoldOn)
		fmt.Fprintf(&buf, "Heure: %s\n", order.MealTime)
		buf.Write(cmdBoldOff)
	}
	buf.WriteString("------------------------\n")

	for _, item := range items {
		buf.Write(cmdBoldOn)
		fmt.Fprintf(&buf, "%dx %s\n", item.Quantity, item.ProductName)
		buf.Write(cmdBoldOff)
	}

	if order.Notes != nil && *order.Notes != "" {
		fmt.Fprintf(&buf, "\nNotes: %s\n", *order.Notes)
	}

	buf.Write(cmdFeed3)
	buf.Write(cmdCut)

	return buf.Bytes()
}

// EncodeTest renders the short self-test ticket used when registering a
// printer.
func (e *Encoder) EncodeTest(endpoint domain.PrinterEndpoint, now time.Time) []byte {
	var buf bytes.Buffer
	buf.Write(cmdInit)

	buf.Write(cmdAlignCenter)
	buf.Write(cmdBoldOn)
	buf.WriteString("TEST IMPRIMANTE\n")
	buf.Write(cmdBoldOff)

	buf.Write(cmdAlignLeft)
	fmt.Fprintf(&buf, "\nImprimante: %s\n", endpoint.Name)
	fmt.Fprintf(&buf, "Destination: %s\n", endpoint.Destination)
	fmt.Fprintf(&buf, "Type: %s\n", endpoint.Kind)
	fmt.Fprintf(&buf, "Date: %s\n", now.Format("02/01/2006 15:04:05"))
	buf.WriteString("Connexion réussie!\n")

	buf.Write(cmdFeed3)
	buf.Write(cmdCut)

	return buf.Bytes()
}

func withDefaults(style domain.TicketStyle) domain.TicketStyle {
	def := domain.DefaultTicketStyle()
	if style.CompanyName == "" {
		style.CompanyName = def.CompanyName
	}
	if style.FooterText == "" {
		style.FooterText = def.FooterText
	}
	if style.FontSize == "" {
		style.FontSize = def.FontSize
	}
	if style.PaperWidth == 0 {
		style.PaperWidth = def.PaperWidth
	}
	return style
}

func clientName(order domain.Order) string {
	if order.ClientName != nil && *order.ClientName != "" {
		return *order.ClientName
	}
	return "-"
}
