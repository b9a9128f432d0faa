package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"caissepro/internal/domain"
	apperrors "caissepro/internal/errors"
)

// MySQLPrinterRepository stores printer endpoints for every owner scope in
// one table; the scope column separates global printers from a cashier's
// or server's own.
type MySQLPrinterRepository struct {
	db *sql.DB
}

func NewMySQLPrinterRepository(db *sql.DB) *MySQLPrinterRepository {
	return &MySQLPrinterRepository{db: db}
}

const printerColumns = `
	id, ownerScope, destination, type, name, usbPort, networkIp, networkPort,
	isActive, createdAt, updatedAt
`

// Upsert saves the endpoint for its (scope, destination) slot, replacing
// whatever was registered there.
func (r *MySQLPrinterRepository) Upsert(ctx context.Context, endpoint domain.PrinterEndpoint) error {
	query := `
		INSERT INTO printer_configs (ownerScope, destination, type, name, usbPort, networkIp, networkPort, isActive)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		ON DUPLICATE KEY UPDATE
			type = VALUES(type), name = VALUES(name), usbPort = VALUES(usbPort),
			networkIp = VALUES(networkIp), networkPort = VALUES(networkPort),
			isActive = 1, updatedAt = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		endpoint.OwnerScope, endpoint.Destination, endpoint.Kind, endpoint.Name,
		endpoint.USBPort, endpoint.NetworkIP, endpoint.NetworkPort,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.NewConflictError(fmt.Sprintf("printer for %s/%s already exists", endpoint.OwnerScope, endpoint.Destination))
		}
		return fmt.Errorf("upserting printer: %w", err)
	}

	return nil
}

func (r *MySQLPrinterRepository) ListByScope(ctx context.Context, scope string) ([]domain.PrinterEndpoint, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM printer_configs
		WHERE ownerScope = ?
		ORDER BY destination
	`, printerColumns)

	rows, err := r.db.QueryContext(ctx, query, scope)
	if err != nil {
		return nil, fmt.Errorf("querying printers by scope: %w", err)
	}
	defer rows.Close()

	var printers []domain.PrinterEndpoint
	for rows.Next() {
		endpoint, err := scanPrinter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning printer row: %w", err)
		}
		printers = append(printers, *endpoint)
	}

	return printers, rows.Err()
}

// FindFirstActive walks the scopes in order and returns the first active
// endpoint registered for the destination.
func (r *MySQLPrinterRepository) FindFirstActive(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM printer_configs
		WHERE ownerScope = ? AND destination = ? AND isActive = 1
		LIMIT 1
	`, printerColumns)

	for _, scope := range scopes {
		endpoint, err := scanPrinter(r.db.QueryRowContext(ctx, query, scope, destination))
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("querying active printer: %w", err)
		}
		return endpoint, nil
	}

	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no active printer for destination %s", destination))
}

func (r *MySQLPrinterRepository) Delete(ctx context.Context, id uint, scope string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM printer_configs WHERE id = ? AND ownerScope = ?`, id, scope)
	if err != nil {
		return fmt.Errorf("deleting printer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("printer with id %d not found", id))
	}

	return nil
}

func scanPrinter(row interface{ Scan(...any) error }) (*domain.PrinterEndpoint, error) {
	var endpoint domain.PrinterEndpoint
	err := row.Scan(
		&endpoint.ID, &endpoint.OwnerScope, &endpoint.Destination, &endpoint.Kind,
		&endpoint.Name, &endpoint.USBPort, &endpoint.NetworkIP, &endpoint.NetworkPort,
		&endpoint.IsActive, &endpoint.CreatedAt, &endpoint.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &endpoint, nil
}

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
