package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"crmsync/internal/prospect/models"
	"crmsync/pkg/platform/sentinel"
)

// InMemoryProspectStore keeps prospects in a map keyed by row ref, preserving
// insertion order for ReadAll so resolution over the candidate set is
// deterministic.
type InMemoryProspectStore struct {
	mu        sync.RWMutex
	prospects map[string]*models.Prospect
	order     []string
}

func NewInMemoryProspectStore() *InMemoryProspectStore {
	return &InMemoryProspectStore{prospects: make(map[string]*models.Prospect)}
}

// Seed inserts prospects directly, assigning row refs. Intended for tests and
// bootstrap fixtures; it bypasses the company ID uniqueness check.
func (s *InMemoryProspectStore) Seed(prospects ...models.Prospect) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := make([]string, 0, len(prospects))
	for _, p := range prospects {
		p.RowRef = uuid.NewString()
		s.prospects[p.RowRef] = &p
		s.order = append(s.order, p.RowRef)
		refs = append(refs, p.RowRef)
	}
	return refs
}

// ReadAll returns copies of all prospects in insertion order.
func (s *InMemoryProspectStore) ReadAll(_ context.Context) ([]*models.Prospect, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Prospect, 0, len(s.order))
	for _, ref := range s.order {
		cp := *s.prospects[ref]
		out = append(out, &cp)
	}
	return out, nil
}

// Update merges a partial field map into the prospect at rowRef.
// Returns sentinel.ErrNotFound for an unknown row ref and sentinel.ErrConflict
// when the update would duplicate another prospect's company ID.
func (s *InMemoryProspectStore) Update(_ context.Context, rowRef string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prospects[rowRef]
	if !ok {
		return fmt.Errorf("prospect %q: %w", rowRef, sentinel.ErrNotFound)
	}
	if id, ok := fields[models.FieldCompanyID].(string); ok && s.companyIDTaken(id, rowRef) {
		return fmt.Errorf("company id %q: %w", id, sentinel.ErrConflict)
	}
	p.ApplyFields(fields)
	return nil
}

// Create inserts a new prospect from a field map and returns its row ref.
// Returns sentinel.ErrConflict when the company ID is already present.
func (s *InMemoryProspectStore) Create(_ context.Context, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := fields[models.FieldCompanyID].(string); ok && s.companyIDTaken(id, "") {
		return "", fmt.Errorf("company id %q: %w", id, sentinel.ErrConflict)
	}
	p := &models.Prospect{RowRef: uuid.NewString()}
	p.ApplyFields(fields)
	s.prospects[p.RowRef] = p
	s.order = append(s.order, p.RowRef)
	return p.RowRef, nil
}

func (s *InMemoryProspectStore) companyIDTaken(id, exceptRowRef string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return false
	}
	for ref, p := range s.prospects {
		if ref == exceptRowRef {
			continue
		}
		if strings.ToLower(strings.TrimSpace(p.CompanyID)) == id {
			return true
		}
	}
	return false
}
