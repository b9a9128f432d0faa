package repository

import (
	"context"
	"database/sql"
	"fmt"

	"caissepro/internal/domain"
	apperrors "caissepro/internal/errors"
)

type MySQLStyleRepository struct {
	db *sql.DB
}

func NewMySQLStyleRepository(db *sql.DB) *MySQLStyleRepository {
	return &MySQLStyleRepository{db: db}
}

func (r *MySQLStyleRepository) FindByCaissier(ctx context.Context, caissierID int) (*domain.TicketStyle, error) {
	query := `
		SELECT id, caissierId, companyName, headerText, footerText,
		       showDate, showTime, showServerName, fontSize, paperWidth,
		       createdAt, updatedAt
		FROM ticket_customization
		WHERE caissierId = ?
	`

	var style domain.TicketStyle
	err := r.db.QueryRowContext(ctx, query, caissierID).Scan(
		&style.ID, &style.CaissierID, &style.CompanyName, &style.HeaderText,
		&style.FooterText, &style.ShowDate, &style.ShowTime, &style.ShowServerName,
		&style.FontSize, &style.PaperWidth, &style.CreatedAt, &style.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no ticket customization for cashier %d", caissierID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying ticket customization: %w", err)
	}

	return &style, nil
}

func (r *MySQLStyleRepository) Upsert(ctx context.Context, style domain.TicketStyle) error {
	query := `
		INSERT INTO ticket_customization
			(caissierId, companyName, headerText, footerText, showDate, showTime, showServerName, fontSize, paperWidth)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			companyName = VALUES(companyName), headerText = VALUES(headerText),
			footerText = VALUES(footerText), showDate = VALUES(showDate),
			showTime = VALUES(showTime), showServerName = VALUES(showServerName),
			fontSize = VALUES(fontSize), paperWidth = VALUES(paperWidth),
			updatedAt = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		style.CaissierID, style.CompanyName, style.HeaderText, style.FooterText,
		style.ShowDate, style.ShowTime, style.ShowServerName, style.FontSize, style.PaperWidth,
	)
	if err != nil {
		return fmt.Errorf("upserting ticket customization: %w", err)
	}

	return nil
}
