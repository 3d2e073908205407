package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/tailorbook-backend/internal/errors"
	"github.com/unclebandit/tailorbook-backend/internal/model"
)

// CustomerRepositoryInterface defines methods used by services
type CustomerRepositoryInterface interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	SetMeasurement(ctx context.Context, id, typeName string, values model.MeasurementSet) (*model.Customer, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sqlx.DB
}

const customerColumns = `id, name, phone, measurements, created_at, updated_at`

// Create inserts a customer and fills in ID and CreatedAt
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	if c.Measurements == nil {
		c.Measurements = model.Measurements{}
	}
	query := `
        INSERT INTO customers (id, name, phone, measurements, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Phone, c.Measurements, c.CreatedAt)
	return err
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	err := r.DB.GetContext(ctx, &c, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// ListAll fetches all customers, ordered by name
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	if err := r.DB.SelectContext(ctx, &customers, `SELECT `+customerColumns+` FROM customers ORDER BY name, id`); err != nil {
		return nil, err
	}
	return customers, nil
}

// SetMeasurement adds or overwrites one measurement type. Concurrent writers
// to the same type race; the last one wins.
func (r *CustomerRepository) SetMeasurement(ctx context.Context, id, typeName string, values model.MeasurementSet) (*model.Customer, error) {
	set, err := model.Measurements{typeName: values}.Value()
	if err != nil {
		return nil, err
	}
	query := `
        UPDATE customers
        SET measurements = COALESCE(measurements, '{}'::jsonb) || $1::jsonb, updated_at = NOW()
        WHERE id = $2
        RETURNING ` + customerColumns
	var c model.Customer
	if err := r.DB.GetContext(ctx, &c, query, set, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
