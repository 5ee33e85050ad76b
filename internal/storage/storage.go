// Package storage holds composition sessions in memory.
package storage

import (
	"errors"
	"sync"

	"github.com/blink-new/overlay-composer/internal/models"
)

var (
	// ErrNotFound means no composition exists under the given id.
	ErrNotFound = errors.New("composition not found")
	// ErrOverlayNotFound means the composition has no overlay with the
	// given id.
	ErrOverlayNotFound = errors.New("overlay not found")
	// ErrExportInProgress means an export for the composition is already
	// running.
	ErrExportInProgress = errors.New("export already in progress")
)

// Store is a mutex-guarded in-memory composition store. All state
// mutations (add/remove overlay, replace base) happen atomically under
// the lock.
type Store struct {
	compositions map[string]*models.Composition
	exporting    map[string]bool
	mu           sync.RWMutex
}

// New creates an empty store
func New() *Store {
	return &Store{
		compositions: make(map[string]*models.Composition),
		exporting:    make(map[string]bool),
	}
}

// Create registers a new composition.
func (s *Store) Create(comp *models.Composition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compositions[comp.ID] = comp
}

// Get returns a copy of the composition. The overlay slice is copied so
// callers never observe a partial mutation; the image byte slices are
// shared but only ever replaced wholesale.
func (s *Store) Get(id string) (models.Composition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comp, exists := s.compositions[id]
	if !exists {
		return models.Composition{}, false
	}
	return snapshot(comp), true
}

// List returns copies of all compositions.
func (s *Store) List() []models.Composition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Composition, 0, len(s.compositions))
	for _, comp := range s.compositions {
		result = append(result, snapshot(comp))
	}
	return result
}

// Delete removes a composition.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.compositions, id)
	delete(s.exporting, id)
}

// SetBase replaces the composition's base image wholesale and clears all
// overlays: placements are only meaningful relative to the base they
// were dropped on.
func (s *Store) SetBase(id string, base, watermarked []byte, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comp, exists := s.compositions[id]
	if !exists {
		return ErrNotFound
	}
	comp.BaseImage = base
	comp.WatermarkedBase = watermarked
	comp.BaseWidth = width
	comp.BaseHeight = height
	comp.Overlays = nil
	return nil
}

// SetFrame records the display frame the overlay rectangles are
// expressed in.
func (s *Store) SetFrame(id string, frame models.DisplayFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comp, exists := s.compositions[id]
	if !exists {
		return ErrNotFound
	}
	comp.Frame = frame
	return nil
}

// AddOverlay appends a placement; insertion order is z-order.
func (s *Store) AddOverlay(id string, ov models.OverlayPlacement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comp, exists := s.compositions[id]
	if !exists {
		return ErrNotFound
	}
	comp.Overlays = append(comp.Overlays, ov)
	return nil
}

// RemoveOverlay removes exactly the placement with the given id, leaving
// the order of the rest unchanged.
func (s *Store) RemoveOverlay(id, overlayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comp, exists := s.compositions[id]
	if !exists {
		return ErrNotFound
	}
	for i, ov := range comp.Overlays {
		if ov.ID == overlayID {
			comp.Overlays = append(comp.Overlays[:i], comp.Overlays[i+1:]...)
			return nil
		}
	}
	return ErrOverlayNotFound
}

// ClearOverlays empties the overlay list.
func (s *Store) ClearOverlays(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comp, exists := s.compositions[id]
	if !exists {
		return ErrNotFound
	}
	comp.Overlays = nil
	return nil
}

// BeginExport marks the composition busy. A second export while one is
// in flight gets ErrExportInProgress.
func (s *Store) BeginExport(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.compositions[id]; !exists {
		return ErrNotFound
	}
	if s.exporting[id] {
		return ErrExportInProgress
	}
	s.exporting[id] = true
	return nil
}

// EndExport releases the export guard.
func (s *Store) EndExport(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exporting, id)
}

func snapshot(comp *models.Composition) models.Composition {
	c := *comp
	c.Overlays = make([]models.OverlayPlacement, len(comp.Overlays))
	copy(c.Overlays, comp.Overlays)
	return c
}
