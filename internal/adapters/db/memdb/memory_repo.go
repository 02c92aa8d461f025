// Package memdb provides in-memory repository adapters, used in tests and as
// a reference implementation of the store contracts.
package memdb

import (
	"context"
	"sync"
	"time"

	"locmate/internal/domain"
	"locmate/internal/ports"
)

type MemoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries map[domain.MemoryKey]*domain.MemoryEntry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, entries: map[domain.MemoryKey]*domain.MemoryEntry{}}
}

func (r *MemoryRepo) Upsert(ctx context.Context, e *domain.MemoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	key := e.Key()
	if old, ok := r.entries[key]; ok {
		// Confidence never decreases; usage strictly increases.
		if e.Confidence > old.Confidence {
			old.Confidence = e.Confidence
		}
		old.UsageCount++
		old.TargetText = e.TargetText
		old.Context = e.Context
		old.UpdatedAt = now
		e.ID = old.ID
		e.Confidence = old.Confidence
		e.UsageCount = old.UsageCount
		return nil
	}
	cp := *e
	cp.ID = r.nextID
	r.nextID++
	if cp.UsageCount < 1 {
		cp.UsageCount = 1
	}
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.entries[key] = &cp
	e.ID = cp.ID
	e.UsageCount = cp.UsageCount
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, key domain.MemoryKey) (*domain.MemoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepo) List(ctx context.Context, f ports.MemoryFilter) ([]*domain.MemoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.MemoryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if f.SourceLang != "" && e.SourceLang != f.SourceLang {
			continue
		}
		if f.TargetLang != "" && e.TargetLang != f.TargetLang {
			continue
		}
		if f.ProjectID != "" && e.ProjectID != f.ProjectID {
			continue
		}
		if f.GameID != "" && e.GameID != f.GameID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryRepo) IncrementUsage(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			e.UsageCount++
			e.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return nil
}
