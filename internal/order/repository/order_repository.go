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

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `
	o.id, o.ticketNumber, o.serveurId, o.createdById, o.paidBy, o.status,
	o.total, o.clientName, o.mealTime, o.notes, o.paymentMethod, o.discount,
	o.discountType, o.paidAmount, o.roomNumber, o.sentToReception,
	o.receptionPrintedAt, o.createdAt, o.updatedAt,
	COALESCE(CONCAT(u.prenom, ' ', u.nom), '')
`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.TicketNumber, &order.ServeurID, &order.CreatedByID,
		&order.PaidBy, &order.Status, &order.Total, &order.ClientName,
		&order.MealTime, &order.Notes, &order.PaymentMethod, &order.Discount,
		&order.DiscountType, &order.PaidAmount, &order.RoomNumber,
		&order.SentToReception, &order.ReceptionPrintedAt,
		&order.CreatedAt, &order.UpdatedAt, &order.ServerName,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) (uint, error) {
	query := `
		INSERT INTO orders (ticketNumber, serveurId, createdById, total, clientName, mealTime, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.TicketNumber, order.ServeurID, order.CreatedByID, order.Total,
		order.ClientName, order.MealTime, order.Notes, order.Status,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("ticket number %s already exists", order.TicketNumber))
		}
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		LEFT JOIN users u ON o.serveurId = u.id
		WHERE o.id = ?
	`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		LEFT JOIN users u ON o.serveurId = u.id
		WHERE o.ticketNumber = ?
	`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, ticketNumber))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("ticket %s not found", ticketNumber))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by ticket number: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		LEFT JOIN users u ON o.serveurId = u.id
		ORDER BY o.createdAt DESC
	`, orderColumns)

	return r.queryOrders(ctx, query)
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	query := `UPDATE orders SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return requireRowAffected(result, id)
}

// RecordPayment transitions the order in a single statement so concurrent
// edits cannot interleave between the status and payment-field writes.
func (r *MySQLOrderRepository) RecordPayment(ctx context.Context, id uint, paymentMethod string, discount float64, discountType *string, paidAmount float64, paidBy int) error {
	query := `
		UPDATE orders
		SET status = ?, paymentMethod = ?, discount = ?, discountType = ?,
		    paidAmount = ?, paidBy = ?, updatedAt = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		domain.OrderStatusPaid, paymentMethod, discount, discountType, paidAmount, paidBy, id,
	)
	if err != nil {
		return fmt.Errorf("recording payment: %w", err)
	}

	return requireRowAffected(result, id)
}

func (r *MySQLOrderRepository) UpdateTotal(ctx context.Context, id uint, total float64) error {
	query := `UPDATE orders SET total = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, total, id)
	if err != nil {
		return fmt.Errorf("updating order total: %w", err)
	}

	return requireRowAffected(result, id)
}

// IncrementTotal adds delta atomically, the only guard against two staff
// members appending items to the same order at once.
func (r *MySQLOrderRepository) IncrementTotal(ctx context.Context, id uint, delta float64) error {
	query := `UPDATE orders SET total = total + ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("incrementing order total: %w", err)
	}

	return requireRowAffected(result, id)
}

// Delete removes the order; its items go with it through the foreign key
// cascade.
func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	return requireRowAffected(result, id)
}

// DeleteTerminal purges all paid and cancelled orders with their items in
// one transaction and reports how many orders went. Pending orders are
// never touched.
func (r *MySQLOrderRepository) DeleteTerminal(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning clear transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM order_items
		WHERE orderId IN (SELECT id FROM orders WHERE status IN (?, ?))
	`, domain.OrderStatusPaid, domain.OrderStatusCancelled)
	if err != nil {
		return 0, fmt.Errorf("deleting terminal order items: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM orders WHERE status IN (?, ?)`,
		domain.OrderStatusPaid, domain.OrderStatusCancelled,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting terminal orders: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing clear transaction: %w", err)
	}

	return deleted, nil
}

func (r *MySQLOrderRepository) MarkSentToReception(ctx context.Context, id uint, roomNumber string) error {
	query := `
		UPDATE orders
		SET sentToReception = 1, roomNumber = ?, updatedAt = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, roomNumber, id)
	if err != nil {
		return fmt.Errorf("marking order sent to reception: %w", err)
	}

	return requireRowAffected(result, id)
}

func (r *MySQLOrderRepository) ListSentToReception(ctx context.Context) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		LEFT JOIN users u ON o.serveurId = u.id
		WHERE o.sentToReception = 1
		ORDER BY o.roomNumber, o.createdAt DESC
	`, orderColumns)

	return r.queryOrders(ctx, query)
}

func (r *MySQLOrderRepository) MarkRoomPrinted(ctx context.Context, roomNumber string) error {
	query := `
		UPDATE orders
		SET receptionPrintedAt = CURRENT_TIMESTAMP
		WHERE roomNumber = ? AND sentToReception = 1
	`

	if _, err := r.db.ExecContext(ctx, query, roomNumber); err != nil {
		return fmt.Errorf("marking room printed: %w", err)
	}

	return nil
}

// ListPaidByDate returns all paid orders created on the given calendar day
// (YYYY-MM-DD), oldest first.
func (r *MySQLOrderRepository) ListPaidByDate(ctx context.Context, date string) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		LEFT JOIN users u ON o.serveurId = u.id
		WHERE o.status = ? AND DATE(o.createdAt) = ?
		ORDER BY o.createdAt
	`, orderColumns)

	return r.queryOrders(ctx, query, domain.OrderStatusPaid, date)
}

type PaymentSummaryRow struct {
	PaymentMethod string
	Count         int
	Total         float64
	PaidAmount    float64
}

func (r *MySQLOrderRepository) PaymentSummaryByDate(ctx context.Context, date string) ([]PaymentSummaryRow, error) {
	query := `
		SELECT COALESCE(paymentMethod, ''), COUNT(*), SUM(total - discount), SUM(paidAmount)
		FROM orders
		WHERE status = ? AND DATE(createdAt) = ?
		GROUP BY paymentMethod
	`

	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusPaid, date)
	if err != nil {
		return nil, fmt.Errorf("querying payment summary: %w", err)
	}
	defer rows.Close()

	var summary []PaymentSummaryRow
	for rows.Next() {
		var row PaymentSummaryRow
		if err := rows.Scan(&row.PaymentMethod, &row.Count, &row.Total, &row.PaidAmount); err != nil {
			return nil, fmt.Errorf("scanning payment summary row: %w", err)
		}
		summary = append(summary, row)
	}

	return summary, rows.Err()
}

func (r *MySQLOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

func requireRowAffected(result sql.Result, id uint) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
