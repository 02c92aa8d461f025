package ports

import (
	"context"

	"locmate/internal/domain"
)

// MemoryFilter scopes translation-memory lookups. Empty fields match all.
type MemoryFilter struct {
	SourceLang string
	TargetLang string
	ProjectID  string
	GameID     string
}

// MemoryRepository is the external translation-memory store. The core only
// searches, upserts and increments usage; persistence mechanics live behind
// this interface.
type MemoryRepository interface {
	// Upsert inserts the entry or, when the (source_text, source_lang,
	// target_lang, project_id) tuple already exists, raises confidence to
	// max(old, new) and strictly increases usage_count.
	Upsert(ctx context.Context, e *domain.MemoryEntry) error
	Get(ctx context.Context, key domain.MemoryKey) (*domain.MemoryEntry, error)
	List(ctx context.Context, f MemoryFilter) ([]*domain.MemoryEntry, error)
	IncrementUsage(ctx context.Context, id int64) error
}

type GlossaryRepository interface {
	Create(ctx context.Context, g *domain.Glossary) error
	Get(ctx context.Context, id string) (*domain.Glossary, error)
	List(ctx context.Context) ([]*domain.Glossary, error)
	Update(ctx context.Context, g *domain.Glossary) error
	Delete(ctx context.Context, id string) error
	// ListActive returns active glossaries applicable to gameID: the global
	// glossary first, then game-specific ones, preserving entry order.
	ListActive(ctx context.Context, gameID string) ([]*domain.Glossary, error)
}

type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) error
	Update(ctx context.Context, p *domain.Provider) error
	Get(ctx context.Context, id int64) (*domain.Provider, error)
	List(ctx context.Context) ([]*domain.Provider, error)
	Delete(ctx context.Context, id int64) error
	SaveModelCache(ctx context.Context, providerID int64, names []string) error
	ListModelCache(ctx context.Context, providerID int64) ([]*domain.ProviderModel, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
