package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kkozlov/catalogcore/internal/kv"
	"github.com/kkozlov/catalogcore/internal/model"
)

// Repository reads and writes the product collection through a kv.Store.
type Repository struct {
	store  kv.Store
	logger *zap.Logger
}

// NewRepository creates a Repository over the given store.
func NewRepository(store kv.Store, logger *zap.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger,
	}
}

// Load returns the persisted collection. An absent or unreadable blob
// falls back to an empty collection, which is persisted immediately so
// storage is left in a consistent state. Absence and corruption are
// treated identically.
func (r *Repository) Load(ctx context.Context) ([]model.Product, error) {
	data, err := r.store.Load(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			r.logger.Warn("stored collection unreadable, starting empty",
				zap.Error(err),
			)
		}
		return r.resetEmpty(ctx)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		r.logger.Warn("stored collection corrupt, starting empty",
			zap.Error(err),
		)
		return r.resetEmpty(ctx)
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// Persist writes the full collection under the storage key.
func (r *Repository) Persist(ctx context.Context, products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	if err := r.store.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}

	return nil
}

// resetEmpty persists an empty collection and returns it.
func (r *Repository) resetEmpty(ctx context.Context) ([]model.Product, error) {
	empty := []model.Product{}
	if err := r.Persist(ctx, empty); err != nil {
		return empty, fmt.Errorf("persisting empty collection: %w", err)
	}
	return empty, nil
}
