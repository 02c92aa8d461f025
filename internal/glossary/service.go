package glossary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"locmate/internal/domain"
	"locmate/internal/ports"
)

const exportVersion = "1.0"

// ErrGlobalGlossaryExists is returned when activating a second global
// glossary. The lookup path consults a single global glossary, so a second
// one would silently never be used.
var ErrGlobalGlossaryExists = errors.New("an active global glossary already exists")

// Service owns glossary records and applies them around translation calls.
// All state lives behind the injected repository.
type Service struct {
	repo      ports.GlossaryRepository
	protector *Protector
	log       *slog.Logger
}

func NewService(repo ports.GlossaryRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		protector: &Protector{},
		log:       logger.With("component", "glossary"),
	}
}

func (s *Service) Create(ctx context.Context, name, gameID string) (*domain.Glossary, error) {
	g := &domain.Glossary{
		ID:        uuid.NewString(),
		Name:      name,
		GameID:    gameID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if g.IsGlobal() {
		if err := s.checkGlobalUnique(ctx, g.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create glossary: %w", err)
	}
	s.log.Info("glossary created", "id", g.ID, "name", name, "game_id", gameID)
	return g, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Glossary, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Glossary, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Update persists g, refusing to activate a second global glossary.
func (s *Service) Update(ctx context.Context, g *domain.Glossary) error {
	if g.IsGlobal() && g.IsActive {
		if err := s.checkGlobalUnique(ctx, g.ID); err != nil {
			return err
		}
	}
	g.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, g)
}

// AddEntry appends a term to the glossary, preserving entry order.
func (s *Service) AddEntry(ctx context.Context, glossaryID string, e domain.GlossaryEntry) (*domain.GlossaryEntry, error) {
	g, err := s.repo.Get(ctx, glossaryID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("glossary not found: %s", glossaryID)
	}
	e.ID = uuid.NewString()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	g.Entries = append(g.Entries, e)
	g.UpdatedAt = now
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}
	return &g.Entries[len(g.Entries)-1], nil
}

// RemoveEntry deletes a term by id.
func (s *Service) RemoveEntry(ctx context.Context, glossaryID, entryID string) error {
	g, err := s.repo.Get(ctx, glossaryID)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("glossary not found: %s", glossaryID)
	}
	kept := g.Entries[:0]
	for _, e := range g.Entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(g.Entries) {
		return fmt.Errorf("entry not found: %s", entryID)
	}
	g.Entries = kept
	g.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, g)
}

// Apply protects the text with every active glossary applicable to gameID,
// global glossary first.
func (s *Service) Apply(ctx context.Context, text, gameID string) (Applied, error) {
	glossaries, err := s.repo.ListActive(ctx, gameID)
	if err != nil {
		return Applied{}, fmt.Errorf("list active glossaries: %w", err)
	}
	return s.protector.Apply(text, glossaries), nil
}

// Restore puts protected terms back and logs any placeholder that did not
// survive the intermediate transform.
func (s *Service) Restore(text string, replacements map[string]string) string {
	restored, missing := s.protector.Restore(text, replacements)
	if len(missing) > 0 {
		s.log.Warn("placeholders lost in translation", "missing", missing)
	}
	return restored
}

// Export serializes the glossary into the round-trippable envelope.
func (s *Service) Export(ctx context.Context, id string) ([]byte, error) {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("glossary not found: %s", id)
	}
	envelope := domain.GlossaryExport{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC(),
		Glossary:   *g,
	}
	return json.MarshalIndent(envelope, "", "  ")
}

// Import reads an exported envelope and upserts the contained glossary.
func (s *Service) Import(ctx context.Context, data []byte) (*domain.Glossary, error) {
	var envelope domain.GlossaryExport
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse glossary export: %w", err)
	}
	g := envelope.Glossary
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.UpdatedAt = time.Now().UTC()
	existing, err := s.repo.Get(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		err = s.repo.Update(ctx, &g)
	} else {
		if g.IsGlobal() && g.IsActive {
			if err := s.checkGlobalUnique(ctx, g.ID); err != nil {
				return nil, err
			}
		}
		err = s.repo.Create(ctx, &g)
	}
	if err != nil {
		return nil, fmt.Errorf("import glossary: %w", err)
	}
	s.log.Info("glossary imported", "id", g.ID, "entries", len(g.Entries))
	return &g, nil
}

// Stats summarizes a glossary for display.
func (s *Service) Stats(ctx context.Context, id string) (*domain.GlossaryStats, error) {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("glossary not found: %s", id)
	}
	stats := &domain.GlossaryStats{
		TotalEntries: len(g.Entries),
		ByCategory:   map[string]int{},
	}
	for _, e := range g.Entries {
		if e.Target == "" {
			stats.DoNotTranslate++
		}
		if e.Category != "" {
			stats.ByCategory[e.Category]++
		}
	}
	return stats, nil
}

func (s *Service) checkGlobalUnique(ctx context.Context, selfID string) error {
	existing, err := s.repo.ListActive(ctx, "")
	if err != nil {
		return err
	}
	for _, g := range existing {
		if g.IsGlobal() && g.ID != selfID {
			return ErrGlobalGlossaryExists
		}
	}
	return nil
}
