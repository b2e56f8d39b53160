package service

import (
	"context"
	"fmt"
	"time"

	"store-inventory/internal/models"
	"store-inventory/internal/util"

	"go.uber.org/zap"
)

// UpsertResult classifies the outcome of a product submission.
type UpsertResult string

const (
	// Inserted means no record with that name existed before.
	Inserted UpsertResult = "INSERTED"
	// UpdatedDuplicate means the name existed and the submission superseded
	// it; the store now holds an additional row for the name.
	UpdatedDuplicate UpsertResult = "UPDATED_DUPLICATE"
	// RejectedStale means the name existed with a newer timestamp and the
	// submission was discarded. Not an error, just an outcome.
	RejectedStale UpsertResult = "REJECTED_STALE"
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	FindByName(ctx context.Context, name string) ([]models.Product, error)
	Current(ctx context.Context, name string) (*models.Product, error)
}

// InventoryService owns the dedup-on-submit rules. The store itself is
// append-only; "updating" a product means inserting a newer row for its name.
type InventoryService struct {
	store  Store
	logger *zap.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(store Store) *InventoryService {
	return &InventoryService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// Submit records a product submission stamped with the current time.
func (s *InventoryService) Submit(ctx context.Context, name string, price int64, quantity int) (UpsertResult, error) {
	return s.SubmitAt(ctx, name, price, quantity, time.Now())
}

// SubmitAt records a product submission with an explicit timestamp. Batch
// callers replaying historical data use this; interactive submissions go
// through Submit and are stamped "now", which makes staleness rejection rare
// there.
//
// The comparison candidate is the last row in insertion order for the name,
// mirroring how records accumulate: the latest interactive submission is
// normally also the newest timestamp.
func (s *InventoryService) SubmitAt(ctx context.Context, name string, price int64, quantity int, at time.Time) (UpsertResult, error) {
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to look up %q: %w", name, err)
	}

	p := &models.Product{Name: name, Quantity: quantity, Price: price, UpdatedAt: at}

	if len(existing) == 0 {
		if err := s.store.Insert(ctx, p); err != nil {
			return "", err
		}
		s.logger.Info("Product added",
			zap.Int64("product_id", p.ID),
			zap.String("name", name))
		return Inserted, nil
	}

	last := existing[len(existing)-1]
	if at.Before(last.UpdatedAt) {
		s.logger.Info("Stale submission rejected",
			zap.String("name", name),
			zap.Time("submitted_at", at),
			zap.Time("existing_at", last.UpdatedAt))
		return RejectedStale, nil
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return "", err
	}
	s.logger.Info("Duplicate product updated",
		zap.Int64("product_id", p.ID),
		zap.String("name", name),
		zap.Int64("superseded_id", last.ID))
	return UpdatedDuplicate, nil
}

// View retrieves a single product by id. Returns store.ErrNotFound for
// unknown ids; the store is never mutated.
func (s *InventoryService) View(ctx context.Context, id int64) (*models.Product, error) {
	return s.store.GetByID(ctx, id)
}

// Current retrieves the row with the newest timestamp for a name, the
// authoritative value among all rows the name has accumulated.
func (s *InventoryService) Current(ctx context.Context, name string) (*models.Product, error) {
	return s.store.Current(ctx, name)
}
