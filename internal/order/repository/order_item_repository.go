package repository

import (
	"context"
	"database/sql"
	"fmt"

	"caissepro/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, item domain.OrderItem) (uint, error) {
	query := `
		INSERT INTO order_items (orderId, productId, productName, quantity, price, total, addedById)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		item.OrderID, item.ProductID, item.ProductName, item.Quantity,
		item.Price, item.Total, item.AddedByID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// ListByOrderID returns the order's items with the category type of the
// referenced catalog product when it still exists. CategoryType stays empty
// for manual lines and deleted products; classification fills the gap.
func (r *MySQLOrderItemRepository) ListByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	query := `
		SELECT oi.id, oi.orderId, oi.productId, oi.productName, oi.quantity,
		       oi.price, oi.total, COALESCE(c.type, ''), oi.addedById, oi.addedAt
		FROM order_items oi
		LEFT JOIN products p ON oi.productId = p.id
		LEFT JOIN categories c ON p.categoryId = c.id
		WHERE oi.orderId = ?
		ORDER BY oi.id
	`

	return r.queryItems(ctx, query, orderID)
}

// ListPaidByDate returns every item of every paid order created on the
// given day, for the Z-report rollups.
func (r *MySQLOrderItemRepository) ListPaidByDate(ctx context.Context, date string) ([]domain.OrderItem, error) {
	query := `
		SELECT oi.id, oi.orderId, oi.productId, oi.productName, oi.quantity,
		       oi.price, oi.total, COALESCE(c.type, ''), oi.addedById, oi.addedAt
		FROM order_items oi
		JOIN orders o ON oi.orderId = o.id
		LEFT JOIN products p ON oi.productId = p.id
		LEFT JOIN categories c ON p.categoryId = c.id
		WHERE o.status = ? AND DATE(o.createdAt) = ?
		ORDER BY oi.productName
	`

	return r.queryItems(ctx, query, domain.OrderStatusPaid, date)
}

func (r *MySQLOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID uint) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE orderId = ?`, orderID); err != nil {
		return fmt.Errorf("deleting order items: %w", err)
	}
	return nil
}

func (r *MySQLOrderItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.Total, &item.CategoryType,
			&item.AddedByID, &item.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
