package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"jobscaffold-backend/internal/domain"
)

type InvoiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, id uuid.UUID, stripeSessionID string, amountTotal int64) error
}

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	query := `SELECT * FROM invoices WHERE id = $1`
	err := r.db.GetContext(ctx, &invoice, query, id)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id uuid.UUID, stripeSessionID string, amountTotal int64) error {
	query := `
		UPDATE invoices
		SET status = $2, paid_at = NOW(), stripe_session_id = $3, amount_total = $4
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, domain.InvoiceStatusPaid, stripeSessionID, amountTotal)
	return err
}
