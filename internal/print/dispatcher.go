// Package print delivers encoded tickets to physical printers and fans an
// order out across its destinations.
package print

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"caissepro/internal/domain"
	apperrors "caissepro/internal/errors"
)

// DeviceWriter abstracts local (USB/serial) delivery. The core only needs
// "attempt write, report outcome"; driver specifics live behind it.
type DeviceWriter interface {
	Write(ctx context.Context, port string, payload []byte) error
}

// FileDeviceWriter writes straight to the device node (/dev/usb/lp0 and
// friends), which is how line-mode thermal printers present on Linux.
type FileDeviceWriter struct{}

func (FileDeviceWriter) Write(ctx context.Context, port string, payload []byte) error {
	f, err := os.OpenFile(port, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(payload); err != nil {
		return err
	}
	return nil
}

// Dispatcher sends one encoded ticket to one endpoint. Network delivery is
// bounded by the configured timeout; a dead printer is an error, never a
// hang. There is no retry: re-triggering is the operator's call.
type Dispatcher struct {
	timeout time.Duration
	device  DeviceWriter
	logger  *zap.Logger
}

const defaultNetworkPort = 9100

func NewDispatcher(timeout time.Duration, device DeviceWriter, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if device == nil {
		device = FileDeviceWriter{}
	}
	return &Dispatcher{
		timeout: timeout,
		device:  device,
		logger:  logger,
	}
}

func (d *Dispatcher) Send(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
	var err error
	switch {
	case endpoint.IsNetworked():
		err = d.sendNetwork(endpoint, payload)
	case endpoint.Kind == domain.PrinterKindUSB:
		err = d.sendUSB(ctx, endpoint, payload)
	default:
		return apperrors.NewValidationError("unknown printer type", apperrors.ValidationDetail{
			Field:   "printerType",
			Message: fmt.Sprintf("unsupported printer type %q", endpoint.Kind),
		})
	}

	if err != nil {
		d.logger.Warn("print dispatch failed",
			zap.String("printer", endpoint.Name),
			zap.String("destination", endpoint.Destination),
			zap.Error(err),
		)
		return apperrors.NewPrintError(endpoint.Destination, fmt.Sprintf("printer %s unreachable", endpoint.Name), err)
	}

	d.logger.Info("ticket printed",
		zap.String("printer", endpoint.Name),
		zap.String("destination", endpoint.Destination),
		zap.Int("bytes", len(payload)),
	)
	return nil
}

func (d *Dispatcher) sendNetwork(endpoint domain.PrinterEndpoint, payload []byte) error {
	if endpoint.NetworkIP == nil || *endpoint.NetworkIP == "" {
		return fmt.Errorf("no network address configured")
	}
	port := defaultNetworkPort
	if endpoint.NetworkPort != nil && *endpoint.NetworkPort != 0 {
		port = *endpoint.NetworkPort
	}

	addr := net.JoinHostPort(*endpoint.NetworkIP, fmt.Sprintf("%d", port))
	conn, err := net.DialTimeout("tcp", addr, d.timeout)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(d.timeout)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("writing to %s: %w", addr, err)
	}

	return nil
}

func (d *Dispatcher) sendUSB(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
	if endpoint.USBPort == nil || *endpoint.USBPort == "" {
		return fmt.Errorf("no usb port configured")
	}
	return d.device.Write(ctx, *endpoint.USBPort, payload)
}
