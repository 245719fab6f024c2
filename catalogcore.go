// Package catalogcore assembles the catalog state core: a persistent
// product collection with derived filtered views, add/edit form
// validation with dirty tracking, and a view/navigation state machine.
// A rendering layer embeds the core, renders its snapshots and feeds
// user intents back into the controller.
package catalogcore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kkozlov/catalogcore/internal/catalog"
	"github.com/kkozlov/catalogcore/internal/config"
	"github.com/kkozlov/catalogcore/internal/controller"
	"github.com/kkozlov/catalogcore/internal/form"
	"github.com/kkozlov/catalogcore/internal/imageenc"
	"github.com/kkozlov/catalogcore/internal/kv"
	"github.com/kkozlov/catalogcore/internal/logging"
	"github.com/kkozlov/catalogcore/internal/model"
)

// Re-exported types for embedders.
type (
	// Config holds the core configuration.
	Config = config.Config
	// Controller is the application state controller.
	Controller = controller.Controller
	// Snapshot is a consistent read of the whole UI-facing state.
	Snapshot = controller.Snapshot
	// View identifies a top-level view.
	View = controller.View
	// Product is one catalog entry.
	Product = model.Product
	// ProductInput carries unsaved form fields.
	ProductInput = model.ProductInput
	// FormSession tracks add/edit form state and its dirty flag.
	FormSession = form.Session
)

// Views.
const (
	ViewMain           = controller.ViewMain
	ViewEditManagement = controller.ViewEditManagement
)

// Re-exported errors.
var (
	// ErrNotFound reports an operation referencing an unknown product id.
	ErrNotFound = controller.ErrNotFound
	// ErrEncoding reports an unreadable image file.
	ErrEncoding = imageenc.ErrEncoding
)

// LoadConfig reads the core configuration from the environment.
func LoadConfig() (*Config, error) {
	return config.Load()
}

// NewAddForm returns a form session for a brand-new product.
func NewAddForm() *FormSession {
	return form.NewAdd()
}

// NewEditForm returns a form session seeded from a saved product.
func NewEditForm(p Product) *FormSession {
	return form.NewEdit(p)
}

// Core bundles the controller with the store it persists into.
type Core struct {
	ctrl   *controller.Controller
	store  kv.Store
	logger *zap.Logger
}

// Open wires configuration, store backend, repository and controller
// together and loads the persisted collection. A nil cfg loads from
// the environment; a nil logger builds one from the configured level.
func Open(ctx context.Context, cfg *Config, logger *zap.Logger) (*Core, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if logger == nil {
		built, err := logging.New(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("building logger: %w", err)
		}
		logger = built
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	repo := catalog.NewRepository(store, logger)
	ctrl := controller.New(repo, logger, cfg.MetricsEnabled)

	if err := ctrl.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.Info("catalog core opened",
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("store_path", cfg.StorePath),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
	)

	return &Core{
		ctrl:   ctrl,
		store:  store,
		logger: logger,
	}, nil
}

// Controller returns the application state controller.
func (c *Core) Controller() *Controller {
	return c.ctrl
}

// Close releases the underlying store.
func (c *Core) Close() error {
	return c.store.Close()
}

// openStore creates the configured kv backend.
func openStore(cfg *Config) (kv.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return kv.NewMemoryStore(), nil
	case config.BackendFile:
		return kv.NewFileStore(cfg.StorePath)
	case config.BackendBolt:
		return kv.OpenBolt(cfg.StorePath)
	default:
		return nil, config.ErrInvalidStoreBackend
	}
}
