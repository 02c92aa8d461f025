package glossary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locmate/internal/adapters/db/memdb"
	"locmate/internal/domain"
)

func newTestService() *Service {
	return NewService(memdb.NewGlossaryRepo(), nil)
}

func TestServiceCreateAndEntries(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	g, err := svc.Create(ctx, "Dark Fantasy RPG", "game-1")
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.True(t, g.IsActive)

	e, err := svc.AddEntry(ctx, g.ID, domain.GlossaryEntry{
		Source: "HP", Target: "Punti Vita", WholeWord: true, Category: "ui",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)

	loaded, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, "Punti Vita", loaded.Entries[0].Target)
}

func TestServiceRejectsSecondGlobalGlossary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Create(ctx, "global one", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "global two", "")
	assert.ErrorIs(t, err, ErrGlobalGlossaryExists)

	// Game-scoped glossaries are unaffected.
	_, err = svc.Create(ctx, "per game", "game-1")
	assert.NoError(t, err)
}

func TestServiceApplyScopesAndOrders(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	global, err := svc.Create(ctx, "global", "")
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, global.ID, domain.GlossaryEntry{Source: "HP", Target: "Punti Vita", WholeWord: true})
	require.NoError(t, err)

	game, err := svc.Create(ctx, "game terms", "game-1")
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, game.ID, domain.GlossaryEntry{Source: "Estus", Target: ""})
	require.NoError(t, err)

	other, err := svc.Create(ctx, "other game", "game-2")
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, other.ID, domain.GlossaryEntry{Source: "low", Target: "never"})
	require.NoError(t, err)

	applied, err := svc.Apply(ctx, "Your HP is low, drink Estus", "game-1")
	require.NoError(t, err)
	assert.Equal(t, "Your [[GL0]] is low, drink [[GL1]]", applied.Text)
	assert.Equal(t, map[string]string{
		"[[GL0]]": "Punti Vita",
		"[[GL1]]": "Estus",
	}, applied.Replacements)

	restored := svc.Restore(applied.Text, applied.Replacements)
	assert.Equal(t, "Your Punti Vita is low, drink Estus", restored)
}

func TestServiceInactiveGlossaryNotApplied(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	g, err := svc.Create(ctx, "dormant", "game-1")
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, g.ID, domain.GlossaryEntry{Source: "HP", Target: "PV"})
	require.NoError(t, err)

	g, err = svc.Get(ctx, g.ID)
	require.NoError(t, err)
	g.IsActive = false
	require.NoError(t, svc.Update(ctx, g))

	applied, err := svc.Apply(ctx, "HP low", "game-1")
	require.NoError(t, err)
	assert.Equal(t, "HP low", applied.Text)
}

func TestServiceExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	g, err := svc.Create(ctx, "exported", "game-1")
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, g.ID, domain.GlossaryEntry{Source: "HP", Target: "Punti Vita", WholeWord: true})
	require.NoError(t, err)

	data, err := svc.Export(ctx, g.ID)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.0"`)

	// Import into a fresh store: nothing is lost.
	fresh := newTestService()
	imported, err := fresh.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, g.ID, imported.ID)
	require.Len(t, imported.Entries, 1)
	assert.Equal(t, "Punti Vita", imported.Entries[0].Target)
	assert.True(t, imported.Entries[0].WholeWord)
}

func TestServiceRemoveEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	g, err := svc.Create(ctx, "g", "game-1")
	require.NoError(t, err)
	e, err := svc.AddEntry(ctx, g.ID, domain.GlossaryEntry{Source: "HP", Target: "PV"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveEntry(ctx, g.ID, e.ID))
	assert.Error(t, svc.RemoveEntry(ctx, g.ID, "nope"))

	loaded, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Entries)
}

func TestServiceStats(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	g, err := svc.Create(ctx, "g", "game-1")
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, g.ID, domain.GlossaryEntry{Source: "HP", Target: "PV", Category: "ui"})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, g.ID, domain.GlossaryEntry{Source: "Liyue", Target: "", Category: "location"})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, g.ID, domain.GlossaryEntry{Source: "Estus", Target: ""})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 2, stats.DoNotTranslate)
	assert.Equal(t, map[string]int{"ui": 1, "location": 1}, stats.ByCategory)
}
