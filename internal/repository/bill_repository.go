package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/unclebandit/tailorbook-backend/internal/model"
)

type BillRepositoryInterface interface {
	Create(ctx context.Context, b *model.Bill) error
	SetPDFURL(ctx context.Context, id, url string) error
	ListByCustomer(ctx context.Context, customerID string) ([]model.Bill, error)
}

type BillRepository struct {
	DB *sqlx.DB
}

// Create inserts a bill. Bills are never updated apart from their pdf url.
func (r *BillRepository) Create(ctx context.Context, b *model.Bill) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now()
	query := `
        INSERT INTO bills (id, customer_id, customer_name, customer_phone, clothing_type, sub_type, other_clothing, quantity, amount, created_at)
        VALUES (:id, :customer_id, :customer_name, :customer_phone, :clothing_type, :sub_type, :other_clothing, :quantity, :amount, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, b)
	return err
}

func (r *BillRepository) SetPDFURL(ctx context.Context, id, url string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE bills SET pdf_url = $1 WHERE id = $2`, url, id)
	return err
}

func (r *BillRepository) ListByCustomer(ctx context.Context, customerID string) ([]model.Bill, error) {
	bills := []model.Bill{}
	query := `
        SELECT id, customer_id, customer_name, customer_phone, clothing_type, sub_type, other_clothing, quantity, amount, pdf_url, created_at
        FROM bills WHERE customer_id = $1 ORDER BY created_at DESC
    `
	if err := r.DB.SelectContext(ctx, &bills, query, customerID); err != nil {
		return nil, err
	}
	return bills, nil
}

var _ BillRepositoryInterface = (*BillRepository)(nil)
