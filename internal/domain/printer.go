package domain

import (
	"strconv"
	"time"
)

// PrinterEndpoint identifies one physical output device for a destination.
// At most one active endpoint exists per (owner scope, destination) pair.
type PrinterEndpoint struct {
	ID          uint
	OwnerScope  string
	Destination string
	Kind        string
	Name        string
	USBPort     *string
	NetworkIP   *string
	NetworkPort *int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	DestinationTicket  = "TICKET"
	DestinationBar     = "BAR"
	DestinationCuisine = "CUISINE"
)

const (
	PrinterKindUSB     = "USB"
	PrinterKindNetwork = "NETWORK"
	PrinterKindWifi    = "WIFI"
)

// ScopeGlobal is the owner scope of shared deployment-wide printers.
// Per-user scopes are built with CashierScope and ServerScope.
const ScopeGlobal = "global"

func CashierScope(userID int) string {
	return scopeFor("cashier", userID)
}

func ServerScope(userID int) string {
	return scopeFor("server", userID)
}

func scopeFor(role string, userID int) string {
	return role + ":" + strconv.Itoa(userID)
}

func ValidDestination(d string) bool {
	switch d {
	case DestinationTicket, DestinationBar, DestinationCuisine:
		return true
	}
	return false
}

func ValidPrinterKind(k string) bool {
	switch k {
	case PrinterKindUSB, PrinterKindNetwork, PrinterKindWifi:
		return true
	}
	return false
}

// IsNetworked reports whether delivery goes over a TCP stream.
func (p PrinterEndpoint) IsNetworked() bool {
	return p.Kind == PrinterKindNetwork || p.Kind == PrinterKindWifi
}
