// Package controller owns the authoritative product collection and the
// cross-cutting UI state. Every mutation flow funnels through it.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kkozlov/catalogcore/internal/catalog"
	"github.com/kkozlov/catalogcore/internal/imageenc"
	"github.com/kkozlov/catalogcore/internal/metrics"
	"github.com/kkozlov/catalogcore/internal/model"
)

// View identifies which top-level view is active.
type View string

// Views.
const (
	ViewMain           View = "main"
	ViewEditManagement View = "edit-management"
)

// Controller errors.
var (
	ErrNotFound    = catalog.ErrNotFound
	ErrUnknownView = errors.New("unknown view")
)

// Snapshot is a consistent read of everything the rendering layer
// needs: the filtered product list plus the active view, modal flags,
// selection and expansion state.
type Snapshot struct {
	Products          []model.Product
	View              View
	Query             string
	ExpandedID        int64
	SelectedID        int64
	AddOpen           bool
	DetailOpen        bool
	DeleteConfirmOpen bool
	DrawerOpen        bool
}

// Controller is the single source of truth for the product collection
// and the transient UI state layered on top of it. All state lives in
// memory; every successful mutation triggers exactly one full
// re-persist of the collection. Write failures are logged and
// swallowed so the session stays usable when storage degrades.
type Controller struct {
	repo           *catalog.Repository
	logger         *zap.Logger
	metricsEnabled bool

	mu       sync.Mutex
	products []model.Product
	view     View
	query    string

	expandedID        int64
	selectedID        int64
	addOpen           bool
	detailOpen        bool
	deleteConfirmOpen bool
	drawerOpen        bool
}

// New creates a Controller over the given repository.
func New(repo *catalog.Repository, logger *zap.Logger, metricsEnabled bool) *Controller {
	return &Controller{
		repo:           repo,
		logger:         logger,
		metricsEnabled: metricsEnabled,
		products:       []model.Product{},
		view:           ViewMain,
	}
}

// Initialize loads the persisted collection. Absence and corruption
// both fall back to an empty collection with one immediate re-write;
// if even that write fails the session continues in memory.
func (c *Controller) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	products, err := c.repo.Load(ctx)
	if err != nil {
		c.logger.Warn("initial store write failed, continuing in memory",
			zap.Error(err),
		)
		c.countPersistFailure()
	}

	c.mu.Lock()
	c.products = products
	c.mu.Unlock()

	if c.metricsEnabled {
		metrics.SetProductCount(len(products))
	}

	c.logger.Info("catalog initialized", zap.Int("products", len(products)))

	return nil
}

// Create validates the input, encodes the attached image if any, and
// appends a new product with a freshly minted unique id to the end of
// the collection. The encode happens before any lock is taken, so the
// suspension of a save with an image blocks no other mutation. An
// encoding failure aborts the save without committing anything.
func (c *Controller) Create(
	ctx context.Context,
	input model.ProductInput,
	image io.Reader,
) (model.Product, error) {
	opID := uuid.New().String()
	start := time.Now()

	if err := input.Validate(); err != nil {
		c.logger.Debug("create rejected",
			zap.String("op_id", opID),
			zap.Error(err),
		)
		c.observe("create", metrics.OutcomeRejected, start)
		return model.Product{}, err
	}

	imageURL, err := c.encodeImage(opID, "create", image)
	if err != nil {
		c.observe("create", metrics.OutcomeError, start)
		return model.Product{}, err
	}

	c.mu.Lock()
	product := model.Product{
		ID:          catalog.MintID(c.products, time.Now()),
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    imageURL,
	}
	c.products = append(c.products, product)
	c.addOpen = false
	committed := c.cloneProductsLocked()
	c.mu.Unlock()

	c.persist(ctx, opID, committed)

	c.logger.Info("product created",
		zap.String("op_id", opID),
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
	)
	c.observe("create", metrics.OutcomeOK, start)

	return product, nil
}

// Update replaces the name, price, description and image of the
// product with the given id, preserving its id and its position in the
// sequence. A missing id is an explicit ErrNotFound, never a silent
// no-op. When no new image is attached the previously stored reference
// is kept.
func (c *Controller) Update(
	ctx context.Context,
	id int64,
	input model.ProductInput,
	image io.Reader,
) (model.Product, error) {
	opID := uuid.New().String()
	start := time.Now()

	if err := input.Validate(); err != nil {
		c.logger.Debug("update rejected",
			zap.String("op_id", opID),
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		c.observe("update", metrics.OutcomeRejected, start)
		return model.Product{}, err
	}

	imageURL, err := c.encodeImage(opID, "update", image)
	if err != nil {
		c.observe("update", metrics.OutcomeError, start)
		return model.Product{}, err
	}

	c.mu.Lock()
	idx := catalog.IndexOf(c.products, id)
	if idx < 0 {
		c.mu.Unlock()
		c.observe("update", metrics.OutcomeNotFound, start)
		return model.Product{}, fmt.Errorf("update product %d: %w", id, ErrNotFound)
	}

	if imageURL == "" {
		imageURL = c.products[idx].ImageURL
	}
	product := model.Product{
		ID:          id,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    imageURL,
	}
	c.products[idx] = product
	c.addOpen = false
	committed := c.cloneProductsLocked()
	c.mu.Unlock()

	c.persist(ctx, opID, committed)

	c.logger.Info("product updated",
		zap.String("op_id", opID),
		zap.Int64("product_id", id),
		zap.String("name", product.Name),
	)
	c.observe("update", metrics.OutcomeOK, start)

	return product, nil
}

// Remove deletes the product with the given id. A missing id is an
// explicit ErrNotFound. On success the detail and delete-confirmation
// modals close and the selection clears.
func (c *Controller) Remove(ctx context.Context, id int64) error {
	opID := uuid.New().String()
	start := time.Now()

	c.mu.Lock()
	idx := catalog.IndexOf(c.products, id)
	if idx < 0 {
		c.mu.Unlock()
		c.observe("remove", metrics.OutcomeNotFound, start)
		return fmt.Errorf("remove product %d: %w", id, ErrNotFound)
	}

	c.products = append(c.products[:idx], c.products[idx+1:]...)
	c.detailOpen = false
	c.deleteConfirmOpen = false
	c.selectedID = 0
	if c.expandedID == id {
		c.expandedID = 0
	}
	committed := c.cloneProductsLocked()
	c.mu.Unlock()

	c.persist(ctx, opID, committed)

	c.logger.Info("product removed",
		zap.String("op_id", opID),
		zap.Int64("product_id", id),
	)
	c.observe("remove", metrics.OutcomeOK, start)

	return nil
}

// SetSearchQuery replaces the active query string. The collection is
// not touched; only the derived view changes.
func (c *Controller) SetSearchQuery(query string) {
	c.mu.Lock()
	c.query = query
	c.mu.Unlock()
}

// Products returns the full ordered collection.
func (c *Controller) Products() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cloneProductsLocked()
}

// Visible returns the derived view: the ordered subsequence of
// products matching the active search query.
func (c *Controller) Visible() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.Filter(c.cloneProductsLocked(), c.query)
}

// ToggleExpanded collapses the product if it is already expanded,
// otherwise expands it. At most one product is expanded at a time.
func (c *Controller) ToggleExpanded(id int64) {
	c.mu.Lock()
	if c.expandedID == id {
		c.expandedID = 0
	} else {
		c.expandedID = id
	}
	c.mu.Unlock()
}

// Navigate switches between the browsing and management views and
// closes the navigation drawer.
func (c *Controller) Navigate(view View) error {
	if view != ViewMain && view != ViewEditManagement {
		return fmt.Errorf("navigate to %q: %w", view, ErrUnknownView)
	}

	c.mu.Lock()
	c.view = view
	c.drawerOpen = false
	c.mu.Unlock()

	return nil
}

// OpenAdd opens the add/edit form modal.
func (c *Controller) OpenAdd() {
	c.setFlag(&c.addOpen, true)
}

// CloseAdd closes the add/edit form modal.
func (c *Controller) CloseAdd() {
	c.setFlag(&c.addOpen, false)
}

// OpenDetail selects the product and opens the detail modal.
func (c *Controller) OpenDetail(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if catalog.IndexOf(c.products, id) < 0 {
		return fmt.Errorf("open detail for product %d: %w", id, ErrNotFound)
	}

	c.selectedID = id
	c.detailOpen = true

	return nil
}

// CloseDetail closes the detail modal (and any delete confirmation
// layered on it) and clears the selection.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.detailOpen = false
	c.deleteConfirmOpen = false
	c.selectedID = 0
	c.mu.Unlock()
}

// OpenDeleteConfirm opens the delete-confirmation modal.
func (c *Controller) OpenDeleteConfirm() {
	c.setFlag(&c.deleteConfirmOpen, true)
}

// CloseDeleteConfirm closes the delete-confirmation modal.
func (c *Controller) CloseDeleteConfirm() {
	c.setFlag(&c.deleteConfirmOpen, false)
}

// OpenDrawer opens the navigation drawer.
func (c *Controller) OpenDrawer() {
	c.setFlag(&c.drawerOpen, true)
}

// CloseDrawer closes the navigation drawer.
func (c *Controller) CloseDrawer() {
	c.setFlag(&c.drawerOpen, false)
}

// Selected returns the product currently selected for detail/delete,
// or ErrNotFound when nothing is selected.
func (c *Controller) Selected() (model.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := catalog.IndexOf(c.products, c.selectedID)
	if c.selectedID == 0 || idx < 0 {
		return model.Product{}, ErrNotFound
	}

	return c.products[idx], nil
}

// Snapshot returns a consistent view of the whole state for the
// rendering layer: the filtered list plus view, query, modal flags,
// selection and expansion.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Products:          catalog.Filter(c.cloneProductsLocked(), c.query),
		View:              c.view,
		Query:             c.query,
		ExpandedID:        c.expandedID,
		SelectedID:        c.selectedID,
		AddOpen:           c.addOpen,
		DetailOpen:        c.detailOpen,
		DeleteConfirmOpen: c.deleteConfirmOpen,
		DrawerOpen:        c.drawerOpen,
	}
}

// encodeImage converts the attached image, if any, into a data URI.
func (c *Controller) encodeImage(opID, op string, image io.Reader) (string, error) {
	if image == nil {
		return "", nil
	}

	encoded, err := imageenc.Encode(image)
	if err != nil {
		c.logger.Warn("save aborted, image encoding failed",
			zap.String("op_id", opID),
			zap.String("operation", op),
			zap.Error(err),
		)
		return "", fmt.Errorf("%s product image: %w", op, err)
	}

	return encoded, nil
}

// persist writes the committed collection back to storage. A write
// failure never rolls back the in-memory mutation: it is logged,
// counted, and swallowed.
func (c *Controller) persist(ctx context.Context, opID string, products []model.Product) {
	if err := c.repo.Persist(ctx, products); err != nil {
		c.logger.Error("collection write failed",
			zap.String("op_id", opID),
			zap.Error(err),
		)
		c.countPersistFailure()
		return
	}

	if c.metricsEnabled {
		metrics.SetProductCount(len(products))
	}
}

// cloneProductsLocked copies the collection; callers must hold mu.
func (c *Controller) cloneProductsLocked() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// setFlag flips one modal flag under the lock.
func (c *Controller) setFlag(flag *bool, value bool) {
	c.mu.Lock()
	*flag = value
	c.mu.Unlock()
}

// observe records operation metrics when enabled.
func (c *Controller) observe(op, outcome string, start time.Time) {
	if c.metricsEnabled {
		metrics.ObserveOperation(op, outcome, start)
	}
}

// countPersistFailure counts a swallowed write failure when enabled.
func (c *Controller) countPersistFailure() {
	if c.metricsEnabled {
		metrics.PersistFailure()
	}
}
