package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	CharmLog "github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/unclebandit/tailorbook-backend/internal/model"
)

const customerListKey = "tailorbook:customers:all"

// CachedCustomerRepository keeps the full customer list in Redis. Every screen
// loads that list, while writes are rare. Any write drops the cached copy.
type CachedCustomerRepository struct {
	Next   CustomerRepositoryInterface
	Redis  redis.UniversalClient
	TTL    time.Duration
	Logger *CharmLog.Logger
}

func (r *CachedCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if err := r.Next.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedCustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	return r.Next.GetByID(ctx, id)
}

// ListAll reads through the cache. Redis errors fall back to the database.
func (r *CachedCustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	raw, err := r.Redis.Get(ctx, customerListKey).Bytes()
	switch {
	case err == nil:
		var customers []model.Customer
		if jsonErr := json.Unmarshal(raw, &customers); jsonErr == nil {
			return customers, nil
		}
		r.Logger.Warn("⚠️ dropping unreadable customer cache entry")
	case !errors.Is(err, redis.Nil):
		r.Logger.Warn("⚠️ customer cache read failed", "err", err)
	}

	customers, err := r.Next.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(customers); err == nil {
		if err := r.Redis.Set(ctx, customerListKey, data, r.TTL).Err(); err != nil {
			r.Logger.Warn("⚠️ customer cache write failed", "err", err)
		}
	}
	return customers, nil
}

func (r *CachedCustomerRepository) SetMeasurement(ctx context.Context, id, typeName string, values model.MeasurementSet) (*model.Customer, error) {
	c, err := r.Next.SetMeasurement(ctx, id, typeName, values)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return c, nil
}

func (r *CachedCustomerRepository) invalidate(ctx context.Context) {
	if err := r.Redis.Del(ctx, customerListKey).Err(); err != nil {
		r.Logger.Warn("⚠️ customer cache invalidation failed", "err", err)
	}
}

var _ CustomerRepositoryInterface = (*CachedCustomerRepository)(nil)
