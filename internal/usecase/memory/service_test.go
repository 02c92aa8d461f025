package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locmate/internal/adapters/db/memdb"
	"locmate/internal/domain"
)

func TestRememberUpsertInvariant(t *testing.T) {
	ctx := context.Background()
	repo := memdb.NewMemoryRepo()
	svc := New(repo, nil)

	first := &domain.MemoryEntry{
		SourceText: "Your HP is low",
		TargetText: "I tuoi PV sono bassi",
		SourceLang: "en",
		TargetLang: "it",
		Confidence: 0.8,
	}
	require.NoError(t, svc.Remember(ctx, first))

	got, err := repo.Get(ctx, first.Key())
	require.NoError(t, err)
	require.NotNil(t, got)
	usageAfterFirst := got.UsageCount

	// Re-remember with lower confidence: confidence never decreases,
	// usage strictly increases.
	second := &domain.MemoryEntry{
		SourceText: "Your HP is low",
		TargetText: "I tuoi PV sono bassi",
		SourceLang: "en",
		TargetLang: "it",
		Confidence: 0.5,
	}
	require.NoError(t, svc.Remember(ctx, second))

	got, err = repo.Get(ctx, first.Key())
	require.NoError(t, err)
	assert.Equal(t, 0.8, got.Confidence)
	assert.Greater(t, got.UsageCount, usageAfterFirst)

	// And with higher confidence: max wins.
	third := &domain.MemoryEntry{
		SourceText: "Your HP is low",
		TargetText: "I tuoi PV sono bassi",
		SourceLang: "en",
		TargetLang: "it",
		Confidence: 0.95,
	}
	require.NoError(t, svc.Remember(ctx, third))
	got, _ = repo.Get(ctx, first.Key())
	assert.Equal(t, 0.95, got.Confidence)
}

func TestRememberValidation(t *testing.T) {
	svc := New(memdb.NewMemoryRepo(), nil)
	assert.Error(t, svc.Remember(context.Background(), &domain.MemoryEntry{SourceText: "  "}))
	assert.Error(t, svc.Remember(context.Background(), &domain.MemoryEntry{SourceText: "x", Confidence: 1.5}))
}

func TestSearchAndExact(t *testing.T) {
	ctx := context.Background()
	repo := memdb.NewMemoryRepo()
	svc := New(repo, nil)

	seed := []domain.MemoryEntry{
		{SourceText: "Your HP is low", TargetText: "I tuoi PV sono bassi", SourceLang: "en", TargetLang: "it", Confidence: 0.9},
		{SourceText: "Your MP is low", TargetText: "I tuoi PM sono bassi", SourceLang: "en", TargetLang: "it", Confidence: 0.9},
		{SourceText: "Your HP is low", TargetText: "Tes PV sont bas", SourceLang: "en", TargetLang: "fr", Confidence: 0.9},
	}
	for i := range seed {
		require.NoError(t, svc.Remember(ctx, &seed[i]))
	}

	results, err := svc.Search(ctx, "Your HP is low", SearchOptions{
		SourceLang: "en", TargetLang: "it", Threshold: 0.5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	// The French pair is filtered out before scoring.
	for _, r := range results {
		assert.Equal(t, "it", r.Entry.TargetLang)
	}
	assert.Equal(t, "I tuoi PV sono bassi", results[0].Entry.TargetText)

	exact, err := svc.Exact(ctx, "your hp is low", SearchOptions{SourceLang: "en", TargetLang: "it"})
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, 1.0, exact[0].Similarity)
}

func TestRecordUse(t *testing.T) {
	ctx := context.Background()
	repo := memdb.NewMemoryRepo()
	svc := New(repo, nil)

	e := &domain.MemoryEntry{SourceText: "Continue", TargetText: "Continua", SourceLang: "en", TargetLang: "it"}
	require.NoError(t, svc.Remember(ctx, e))

	before, _ := repo.Get(ctx, e.Key())
	require.NoError(t, svc.RecordUse(ctx, e.ID))
	after, _ := repo.Get(ctx, e.Key())
	assert.Equal(t, before.UsageCount+1, after.UsageCount)
}
