// Package catalog reads products and categories and maintains stock counts.
// Category and product administration belongs to the back office; the order
// core only consumes names, prices and category types from here.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"caissepro/internal/domain"
	apperrors "caissepro/internal/errors"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindProductByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT p.id, COALESCE(p.categoryId, 0), p.name, p.description, p.price, p.stock,
		       p.available, c.type, p.createdAt, p.updatedAt
		FROM products p
		LEFT JOIN categories c ON p.categoryId = c.id
		WHERE p.id = ?
	`

	var product domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.CategoryID, &product.Name, &product.Description,
		&product.Price, &product.Stock, &product.Available, &product.CategoryType,
		&product.CreatedAt, &product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &product, nil
}

func (r *MySQLRepository) FindCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	query := `
		SELECT id, name, description, type, createdAt, updatedAt
		FROM categories
		WHERE id = ?
	`

	var category domain.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Description, &category.Type,
		&category.CreatedAt, &category.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying category by id: %w", err)
	}

	return &category, nil
}

// DecrementStock subtracts the sold quantity. Stock may go negative;
// inventory corrections happen in the back office.
func (r *MySQLRepository) DecrementStock(ctx context.Context, productID int, quantity int) error {
	query := `UPDATE products SET stock = stock - ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return fmt.Errorf("decrementing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}

	return nil
}
