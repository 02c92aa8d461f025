// Package memory offers reuse suggestions from the translation-memory store.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"locmate/internal/domain"
	"locmate/internal/match"
	"locmate/internal/ports"
)

// Service wraps the external memory store with similarity-based lookups.
type Service struct {
	repo ports.MemoryRepository
	log  *slog.Logger
}

func New(repo ports.MemoryRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, log: logger.With("component", "memory")}
}

// SearchOptions mirrors match.Options plus the language pair the store is
// queried with.
type SearchOptions struct {
	SourceLang     string
	TargetLang     string
	Threshold      float64
	MaxResults     int
	ProjectID      string
	GameID         string
	IncludeContext bool
	PreferRecent   bool
}

// Search ranks stored entries against query. Suggestions are offered before
// (or instead of) a live translation.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]match.Result, error) {
	entries, err := s.repo.List(ctx, ports.MemoryFilter{
		SourceLang: opts.SourceLang,
		TargetLang: opts.TargetLang,
		ProjectID:  opts.ProjectID,
		GameID:     opts.GameID,
	})
	if err != nil {
		return nil, fmt.Errorf("list memory entries: %w", err)
	}
	return match.FuzzySearch(query, entries, match.Options{
		Threshold:      opts.Threshold,
		MaxResults:     opts.MaxResults,
		ProjectID:      opts.ProjectID,
		GameID:         opts.GameID,
		IncludeContext: opts.IncludeContext,
		PreferRecent:   opts.PreferRecent,
	}), nil
}

// Exact returns entries whose source text equals query case-insensitively,
// most used first.
func (s *Service) Exact(ctx context.Context, query string, opts SearchOptions) ([]match.Result, error) {
	entries, err := s.repo.List(ctx, ports.MemoryFilter{
		SourceLang: opts.SourceLang,
		TargetLang: opts.TargetLang,
		ProjectID:  opts.ProjectID,
	})
	if err != nil {
		return nil, fmt.Errorf("list memory entries: %w", err)
	}
	return match.FindExactMatches(query, entries, opts.ProjectID), nil
}

// Remember records a successful translation. Re-remembering the same
// (source, source_lang, target_lang, project) tuple raises confidence to
// max(old, new) and strictly increases the usage count.
func (s *Service) Remember(ctx context.Context, e *domain.MemoryEntry) error {
	if strings.TrimSpace(e.SourceText) == "" {
		return fmt.Errorf("memory entry needs a source text")
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("confidence out of range: %v", e.Confidence)
	}
	if err := s.repo.Upsert(ctx, e); err != nil {
		return fmt.Errorf("upsert memory entry: %w", err)
	}
	s.log.Debug("memory entry remembered",
		"source_lang", e.SourceLang, "target_lang", e.TargetLang, "usage", e.UsageCount)
	return nil
}

// RecordUse bumps the usage counter when a suggestion is reused.
func (s *Service) RecordUse(ctx context.Context, id int64) error {
	return s.repo.IncrementUsage(ctx, id)
}
