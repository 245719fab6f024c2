package catalogcore

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testConfig(t *testing.T, backend string) *Config {
	t.Helper()

	return &Config{
		StoreBackend:   backend,
		StorePath:      filepath.Join(t.TempDir(), "catalog-store"),
		LogLevel:       "error",
		MetricsEnabled: false,
	}
}

func TestOpen_Backends(t *testing.T) {
	for _, backend := range []string{"memory", "file", "bolt"} {
		t.Run(backend, func(t *testing.T) {
			// Act
			core, err := Open(context.Background(), testConfig(t, backend), zap.NewNop())

			// Assert
			if err != nil {
				t.Fatalf("Open() unexpected error: %v", err)
			}
			defer func() {
				_ = core.Close()
			}()

			if core.Controller() == nil {
				t.Fatal("Controller() returned nil")
			}
			if got := len(core.Controller().Products()); got != 0 {
				t.Errorf("fresh core has %d products, want 0", got)
			}
		})
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	// Arrange
	cfg := &Config{
		StoreBackend: "redis",
		StorePath:    "catalog.db",
		LogLevel:     "info",
	}

	// Act
	_, err := Open(context.Background(), cfg, zap.NewNop())

	// Assert
	if err == nil {
		t.Error("Open() expected error for unknown backend")
	}
}

func TestCore_FullFlow(t *testing.T) {
	// Arrange
	core, err := Open(context.Background(), testConfig(t, "memory"), zap.NewNop())
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	defer func() {
		_ = core.Close()
	}()

	ctrl := core.Controller()
	ctx := context.Background()

	// Act - fill the add form, save with an image
	addForm := NewAddForm()
	addForm.SetName("Cheese")
	addForm.SetPrice(5000)
	addForm.SetDescription("Local cheese")
	if !addForm.Valid() || !addForm.Dirty() {
		t.Fatal("filled add form should be valid and dirty")
	}

	image := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("pixels")...)
	created, err := ctrl.Create(ctx, addForm.Input(), bytes.NewReader(image))
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if !strings.HasPrefix(created.ImageURL, "data:image/png;base64,") {
		t.Errorf("ImageURL = %q, want png data URI", created.ImageURL)
	}

	// Search narrows the derived view without touching the collection.
	ctrl.SetSearchQuery("chee")
	if got := len(ctrl.Visible()); got != 1 {
		t.Errorf("Visible() returned %d products, want 1", got)
	}
	ctrl.SetSearchQuery("")

	// Edit through a form session; the image survives the edit.
	editForm := NewEditForm(created)
	editForm.SetPrice(6000)
	if !editForm.Dirty() {
		t.Fatal("price change should mark edit form dirty")
	}

	updated, err := ctrl.Update(ctx, created.ID, editForm.Input(), nil)
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("Update() changed id: %d -> %d", created.ID, updated.ID)
	}
	if updated.Price != 6000 {
		t.Errorf("Price = %d, want 6000", updated.Price)
	}
	if updated.ImageURL != created.ImageURL {
		t.Error("Update() without a new image should keep the stored one")
	}

	// Delete through the detail flow.
	if err := ctrl.OpenDetail(created.ID); err != nil {
		t.Fatalf("OpenDetail() unexpected error: %v", err)
	}
	ctrl.OpenDeleteConfirm()

	if err := ctrl.Remove(ctx, created.ID); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}

	// Assert - collection empty, modals closed
	snap := ctrl.Snapshot()
	if len(snap.Products) != 0 {
		t.Errorf("collection has %d products after delete, want 0", len(snap.Products))
	}
	if snap.DetailOpen || snap.DeleteConfirmOpen || snap.SelectedID != 0 {
		t.Error("delete should close modals and clear selection")
	}
}

func TestCore_StatePersistsAcrossReopen(t *testing.T) {
	for _, backend := range []string{"file", "bolt"} {
		t.Run(backend, func(t *testing.T) {
			// Arrange
			cfg := testConfig(t, backend)
			ctx := context.Background()

			first, err := Open(ctx, cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("Open() unexpected error: %v", err)
			}

			created, err := first.Controller().Create(ctx, ProductInput{
				Name:        "Cheese",
				Price:       5000,
				Description: "Local cheese",
			}, nil)
			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if err := first.Close(); err != nil {
				t.Fatalf("Close() unexpected error: %v", err)
			}

			// Act - a fresh core over the same storage
			second, err := Open(ctx, cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("reopen unexpected error: %v", err)
			}
			defer func() {
				_ = second.Close()
			}()

			// Assert
			products := second.Controller().Products()
			if len(products) != 1 {
				t.Fatalf("reopened core has %d products, want 1", len(products))
			}
			if products[0] != created {
				t.Errorf("reopened product = %+v, want %+v", products[0], created)
			}
		})
	}
}

func TestCore_NotFoundErrors(t *testing.T) {
	// Arrange
	core, err := Open(context.Background(), testConfig(t, "memory"), zap.NewNop())
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	defer func() {
		_ = core.Close()
	}()

	ctrl := core.Controller()
	ctx := context.Background()

	// Act / Assert - unknown ids surface ErrNotFound, never a silent no-op
	if _, err := ctrl.Update(ctx, 42, ProductInput{
		Name: "X", Price: 1, Description: "x",
	}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := ctrl.Remove(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove() error = %v, want ErrNotFound", err)
	}
}
