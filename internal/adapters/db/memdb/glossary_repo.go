package memdb

import (
	"context"
	"sort"
	"sync"

	"locmate/internal/domain"
)

type GlossaryRepo struct {
	mu         sync.Mutex
	glossaries map[string]*domain.Glossary
	order      []string // creation order, for stable listings
}

func NewGlossaryRepo() *GlossaryRepo {
	return &GlossaryRepo{glossaries: map[string]*domain.Glossary{}}
}

func (r *GlossaryRepo) Create(ctx context.Context, g *domain.Glossary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := cloneGlossary(g)
	r.glossaries[g.ID] = cp
	r.order = append(r.order, g.ID)
	return nil
}

func (r *GlossaryRepo) Get(ctx context.Context, id string) (*domain.Glossary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.glossaries[id]; ok {
		return cloneGlossary(g), nil
	}
	return nil, nil
}

func (r *GlossaryRepo) List(ctx context.Context) ([]*domain.Glossary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Glossary, 0, len(r.order))
	for _, id := range r.order {
		if g, ok := r.glossaries[id]; ok {
			out = append(out, cloneGlossary(g))
		}
	}
	return out, nil
}

func (r *GlossaryRepo) Update(ctx context.Context, g *domain.Glossary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.glossaries[g.ID] = cloneGlossary(g)
	return nil
}

func (r *GlossaryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.glossaries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *GlossaryRepo) ListActive(ctx context.Context, gameID string) ([]*domain.Glossary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Glossary, 0)
	for _, id := range r.order {
		g, ok := r.glossaries[id]
		if !ok || !g.IsActive {
			continue
		}
		if g.IsGlobal() || (gameID != "" && g.GameID == gameID) {
			out = append(out, cloneGlossary(g))
		}
	}
	// Global glossaries come first; otherwise creation order is preserved.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsGlobal() && !out[j].IsGlobal()
	})
	return out, nil
}

func cloneGlossary(g *domain.Glossary) *domain.Glossary {
	cp := *g
	cp.Entries = append([]domain.GlossaryEntry(nil), g.Entries...)
	return &cp
}
