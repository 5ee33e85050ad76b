package storage

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/blink-new/overlay-composer/internal/models"
)

func newTestComposition(id string, overlayCount int) *models.Composition {
	comp := &models.Composition{
		ID:         id,
		BaseImage:  []byte("base"),
		BaseWidth:  800,
		BaseHeight: 600,
		Frame:      models.DisplayFrame{Width: 400, Height: 300},
		CreatedAt:  time.Now(),
	}
	for i := 0; i < overlayCount; i++ {
		comp.Overlays = append(comp.Overlays, models.OverlayPlacement{
			ID:        fmt.Sprintf("overlay_%d", i),
			SourceURL: fmt.Sprintf("http://x/%d.png", i),
		})
	}
	return comp
}

func TestSetBaseClearsOverlays(t *testing.T) {
	tests := []struct {
		name          string
		priorOverlays int
	}{
		{name: "no overlays", priorOverlays: 0},
		{name: "one overlay", priorOverlays: 1},
		{name: "many overlays", priorOverlays: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New()
			store.Create(newTestComposition("c1", tt.priorOverlays))

			if err := store.SetBase("c1", []byte("new"), []byte("new+wm"), 1024, 768); err != nil {
				t.Fatalf("SetBase failed: %v", err)
			}

			comp, _ := store.Get("c1")
			if len(comp.Overlays) != 0 {
				t.Errorf("Expected overlays cleared, got %d", len(comp.Overlays))
			}
			if comp.BaseWidth != 1024 || comp.BaseHeight != 768 {
				t.Errorf("Expected new base dimensions, got %dx%d", comp.BaseWidth, comp.BaseHeight)
			}
			if string(comp.BaseImage) != "new" || string(comp.WatermarkedBase) != "new+wm" {
				t.Error("Expected base bytes replaced wholesale")
			}
		})
	}
}

func TestRemoveOverlayPreservesOrder(t *testing.T) {
	store := New()
	store.Create(newTestComposition("c1", 4))

	if err := store.RemoveOverlay("c1", "overlay_1"); err != nil {
		t.Fatalf("RemoveOverlay failed: %v", err)
	}

	comp, _ := store.Get("c1")
	if len(comp.Overlays) != 3 {
		t.Fatalf("Expected 3 overlays, got %d", len(comp.Overlays))
	}
	for i, want := range []string{"overlay_0", "overlay_2", "overlay_3"} {
		if comp.Overlays[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, comp.Overlays[i].ID)
		}
	}
}

func TestRemoveOverlayUnknownID(t *testing.T) {
	store := New()
	store.Create(newTestComposition("c1", 2))

	err := store.RemoveOverlay("c1", "overlay_99")
	if !errors.Is(err, ErrOverlayNotFound) {
		t.Errorf("Expected ErrOverlayNotFound, got %v", err)
	}

	comp, _ := store.Get("c1")
	if len(comp.Overlays) != 2 {
		t.Errorf("Expected overlays untouched, got %d", len(comp.Overlays))
	}
}

func TestClearOverlays(t *testing.T) {
	store := New()
	store.Create(newTestComposition("c1", 3))

	if err := store.ClearOverlays("c1"); err != nil {
		t.Fatalf("ClearOverlays failed: %v", err)
	}

	comp, _ := store.Get("c1")
	if len(comp.Overlays) != 0 {
		t.Errorf("Expected empty overlay list, got %d", len(comp.Overlays))
	}
}

func TestExportGuard(t *testing.T) {
	store := New()
	store.Create(newTestComposition("c1", 0))

	if err := store.BeginExport("c1"); err != nil {
		t.Fatalf("BeginExport failed: %v", err)
	}
	if err := store.BeginExport("c1"); !errors.Is(err, ErrExportInProgress) {
		t.Errorf("Expected ErrExportInProgress, got %v", err)
	}

	store.EndExport("c1")
	if err := store.BeginExport("c1"); err != nil {
		t.Errorf("Expected guard released after EndExport, got %v", err)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := New()
	store.Create(newTestComposition("c1", 1))

	comp, exists := store.Get("c1")
	if !exists {
		t.Fatal("Expected composition to exist")
	}

	// Mutating the snapshot must not leak into the store
	comp.Overlays[0].ID = "mutated"
	fresh, _ := store.Get("c1")
	if fresh.Overlays[0].ID != "overlay_0" {
		t.Error("Expected store state isolated from returned snapshots")
	}
}

func TestGetMissing(t *testing.T) {
	store := New()
	if _, exists := store.Get("nope"); exists {
		t.Error("Expected missing composition")
	}
	if err := store.SetBase("nope", nil, nil, 0, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := New()
	store.Create(newTestComposition("c1", 0))
	store.Delete("c1")

	if _, exists := store.Get("c1"); exists {
		t.Error("Expected composition deleted")
	}
	if len(store.List()) != 0 {
		t.Error("Expected empty list after delete")
	}
}
