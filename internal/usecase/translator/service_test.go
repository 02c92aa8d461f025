package translator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locmate/internal/adapters/db/memdb"
	"locmate/internal/domain"
	"locmate/internal/glossary"
	"locmate/internal/ports"
	"locmate/internal/usecase/memory"
)

// fakeProvider is an identity "translator" that preserves placeholders
// verbatim, optionally failing a fixed number of times first.
type fakeProvider struct {
	calls     int
	failTimes int
	failWith  error
	transform func(string) string
}

func (f *fakeProvider) Translate(ctx context.Context, req ports.TranslateRequest) (ports.TranslateResult, error) {
	f.calls++
	if f.calls <= f.failTimes {
		return ports.TranslateResult{}, f.failWith
	}
	out := req.Text
	if f.transform != nil {
		out = f.transform(out)
	}
	return ports.TranslateResult{Translation: out, Raw: out}, nil
}

func (f *fakeProvider) ListModels(ctx context.Context) ([]ports.ModelInfo, error) { return nil, nil }
func (f *fakeProvider) Test(ctx context.Context) error                            { return nil }

type fakeProviderRepo struct{ prov *domain.Provider }

func (r *fakeProviderRepo) Create(ctx context.Context, p *domain.Provider) error { return nil }
func (r *fakeProviderRepo) Update(ctx context.Context, p *domain.Provider) error { return nil }
func (r *fakeProviderRepo) Get(ctx context.Context, id int64) (*domain.Provider, error) {
	return r.prov, nil
}
func (r *fakeProviderRepo) List(ctx context.Context) ([]*domain.Provider, error) { return nil, nil }
func (r *fakeProviderRepo) Delete(ctx context.Context, id int64) error           { return nil }
func (r *fakeProviderRepo) SaveModelCache(ctx context.Context, providerID int64, names []string) error {
	return nil
}
func (r *fakeProviderRepo) ListModelCache(ctx context.Context, providerID int64) ([]*domain.ProviderModel, error) {
	return nil, nil
}

type fixture struct {
	svc      *Service
	memRepo  *memdb.MemoryRepo
	glossSvc *glossary.Service
	provider *fakeProvider
}

func newFixture(t *testing.T, provider *fakeProvider) *fixture {
	t.Helper()
	memRepo := memdb.NewMemoryRepo()
	glossSvc := glossary.NewService(memdb.NewGlossaryRepo(), nil)
	svc := New(Deps{
		Providers: &fakeProviderRepo{prov: &domain.Provider{ID: 1, Type: "fake", Model: "test-model"}},
		Memory:    memory.New(memRepo, nil),
		Glossary:  glossSvc,
		BuildProvider: func(p *domain.Provider) (ports.Provider, error) {
			return provider, nil
		},
	})
	return &fixture{svc: svc, memRepo: memRepo, glossSvc: glossSvc, provider: provider}
}

func TestTranslateOneProtectsGlossaryTerms(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeProvider{})

	g, err := f.glossSvc.Create(ctx, "terms", "game-1")
	require.NoError(t, err)
	_, err = f.glossSvc.AddEntry(ctx, g.ID, domain.GlossaryEntry{
		Source: "HP", Target: "Punti Vita", WholeWord: true,
	})
	require.NoError(t, err)

	out, err := f.svc.TranslateOne(ctx, TranslateArgs{
		Text: "Your HP is low", SourceLang: "en", TargetLang: "it",
		ProviderID: 1, GameID: "game-1",
	})
	require.NoError(t, err)
	// Identity provider: only the protected term changes.
	assert.Equal(t, "Your Punti Vita is low", out)
}

func TestTranslateOneRemembersResult(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeProvider{})

	_, err := f.svc.TranslateOne(ctx, TranslateArgs{
		Text: "New Game", SourceLang: "en", TargetLang: "it", ProviderID: 1,
	})
	require.NoError(t, err)

	entry, err := f.memRepo.Get(ctx, domain.MemoryKey{
		SourceText: "New Game", SourceLang: "en", TargetLang: "it",
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, machineConfidence, entry.Confidence)
}

func TestTranslateOneReusesMemoryHit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeProvider{})

	seed := &domain.MemoryEntry{
		SourceText: "Continue", TargetText: "Continua",
		SourceLang: "en", TargetLang: "it", Confidence: 1,
	}
	require.NoError(t, f.memRepo.Upsert(ctx, seed))

	out, err := f.svc.TranslateOne(ctx, TranslateArgs{
		Text: "Continue", SourceLang: "en", TargetLang: "it", ProviderID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Continua", out)
	assert.Zero(t, f.provider.calls, "memory hit must not reach the provider")

	// Reuse bumps the usage counter.
	entry, _ := f.memRepo.Get(ctx, seed.Key())
	assert.Greater(t, entry.UsageCount, 1)
}

func TestTranslateOneBypassMemory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeProvider{})

	seed := &domain.MemoryEntry{
		SourceText: "Continue", TargetText: "Continua",
		SourceLang: "en", TargetLang: "it", Confidence: 1,
	}
	require.NoError(t, f.memRepo.Upsert(ctx, seed))

	_, err := f.svc.TranslateOne(ctx, TranslateArgs{
		Text: "Continue", SourceLang: "en", TargetLang: "it",
		ProviderID: 1, BypassMemory: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.provider.calls)
}

func TestTranslateOneRetriesParseFlakes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeProvider{
		failTimes: 2,
		failWith:  errors.New("failed to parse translation json; content: ..."),
	})

	out, err := f.svc.TranslateOne(ctx, TranslateArgs{
		Text: "Options", SourceLang: "en", TargetLang: "it", ProviderID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Options", out)
	assert.Equal(t, 3, f.provider.calls)
}

func TestTranslateOneDoesNotRetryHardErrors(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("connection refused")
	f := newFixture(t, &fakeProvider{failTimes: 99, failWith: sentinel})

	_, err := f.svc.TranslateOne(ctx, TranslateArgs{
		Text: "Options", SourceLang: "en", TargetLang: "it", ProviderID: 1,
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, f.provider.calls)
}

func TestTranslateOneEmptyText(t *testing.T) {
	f := newFixture(t, &fakeProvider{})
	_, err := f.svc.TranslateOne(context.Background(), TranslateArgs{Text: "   "})
	assert.Error(t, err)
}

func TestTranslateOneDroppedPlaceholderIsNotFatal(t *testing.T) {
	ctx := context.Background()
	// The "translator" mangles everything, dropping placeholders.
	f := newFixture(t, &fakeProvider{transform: func(string) string { return "qualcosa di diverso" }})

	g, err := f.glossSvc.Create(ctx, "terms", "game-1")
	require.NoError(t, err)
	_, err = f.glossSvc.AddEntry(ctx, g.ID, domain.GlossaryEntry{Source: "HP", Target: "PV"})
	require.NoError(t, err)

	out, err := f.svc.TranslateOne(ctx, TranslateArgs{
		Text: "HP low", SourceLang: "en", TargetLang: "it",
		ProviderID: 1, GameID: "game-1",
	})
	// Documented limitation: the occurrence silently fails to restore, the
	// call itself does not error.
	require.NoError(t, err)
	assert.Equal(t, "qualcosa di diverso", out)
}
