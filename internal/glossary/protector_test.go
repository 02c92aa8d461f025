package glossary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locmate/internal/domain"
)

func glossaryWith(entries ...domain.GlossaryEntry) []*domain.Glossary {
	return []*domain.Glossary{{ID: "g1", Name: "test", IsActive: true, Entries: entries}}
}

func TestApplyRestoreRoundTrip(t *testing.T) {
	p := &Protector{}
	glossaries := glossaryWith(domain.GlossaryEntry{
		Source: "HP", Target: "Punti Vita", WholeWord: true,
	})

	applied := p.Apply("Your HP is low", glossaries)

	assert.Equal(t, "Your [[GL0]] is low", applied.Text)
	assert.Equal(t, map[string]string{"[[GL0]]": "Punti Vita"}, applied.Replacements)

	// Identity "translator": placeholders preserved verbatim.
	restored, missing := p.Restore(applied.Text, applied.Replacements)
	assert.Equal(t, "Your Punti Vita is low", restored)
	assert.Empty(t, missing)
}

func TestApplyCaseInsensitiveByDefault(t *testing.T) {
	p := &Protector{}
	glossaries := glossaryWith(domain.GlossaryEntry{Source: "hp", Target: "PV", WholeWord: true})

	applied := p.Apply("Low HP warning", glossaries)
	assert.Equal(t, "Low [[GL0]] warning", applied.Text)
}

func TestApplyCaseSensitive(t *testing.T) {
	p := &Protector{}
	glossaries := glossaryWith(domain.GlossaryEntry{
		Source: "Mana", Target: "Mana", CaseSensitive: true, WholeWord: true,
	})

	applied := p.Apply("mana and Mana", glossaries)
	assert.Equal(t, "mana and [[GL0]]", applied.Text)
}

func TestApplyWholeWordBoundary(t *testing.T) {
	p := &Protector{}
	glossaries := glossaryWith(domain.GlossaryEntry{Source: "HP", Target: "PV", WholeWord: true})

	// "HP" inside "CHPS" must not match.
	applied := p.Apply("CHPS and HP", glossaries)
	assert.Equal(t, "CHPS and [[GL0]]", applied.Text)

	// Without wholeWord the substring matches too.
	loose := glossaryWith(domain.GlossaryEntry{Source: "HP", Target: "PV"})
	applied = p.Apply("CHHPS", loose)
	assert.Equal(t, "CH[[GL0]]S", applied.Text)
}

func TestApplyEmptyTargetProtectsVerbatim(t *testing.T) {
	p := &Protector{}
	glossaries := glossaryWith(domain.GlossaryEntry{Source: "Liyue", Target: "", WholeWord: true})

	applied := p.Apply("Welcome to Liyue", glossaries)
	assert.Equal(t, "Welcome to [[GL0]]", applied.Text)

	restored, _ := p.Restore(applied.Text, applied.Replacements)
	assert.Equal(t, "Welcome to Liyue", restored)
}

func TestApplyMultipleOccurrencesGetFreshPlaceholders(t *testing.T) {
	p := &Protector{}
	glossaries := glossaryWith(domain.GlossaryEntry{Source: "HP", Target: "PV", WholeWord: true})

	applied := p.Apply("HP here, HP there", glossaries)
	assert.Equal(t, "[[GL0]] here, [[GL1]] there", applied.Text)
	assert.Len(t, applied.Replacements, 2)

	restored, _ := p.Restore(applied.Text, applied.Replacements)
	assert.Equal(t, "PV here, PV there", restored)
}

func TestApplyOverlappingEntriesDoNotRematch(t *testing.T) {
	p := &Protector{}
	// "Dark Souls" is protected first; a later "Souls" entry must not eat into
	// the placeholder.
	glossaries := glossaryWith(
		domain.GlossaryEntry{Source: "Dark Souls", Target: "Dark Souls"},
		domain.GlossaryEntry{Source: "Souls", Target: "Anime"},
	)

	applied := p.Apply("Dark Souls and lost Souls", glossaries)
	assert.Equal(t, "[[GL0]] and lost [[GL1]]", applied.Text)

	restored, _ := p.Restore(applied.Text, applied.Replacements)
	assert.Equal(t, "Dark Souls and lost Anime", restored)
}

func TestApplyGlossaryOrderGlobalFirst(t *testing.T) {
	p := &Protector{}
	global := &domain.Glossary{ID: "global", IsActive: true, Entries: []domain.GlossaryEntry{
		{Source: "Boss", Target: "Capo"},
	}}
	game := &domain.Glossary{ID: "game", GameID: "g1", IsActive: true, Entries: []domain.GlossaryEntry{
		{Source: "Boss fight", Target: "never matched"},
	}}

	applied := p.Apply("Boss fight", []*domain.Glossary{global, game})
	// The global entry placeholders "Boss" first, leaving nothing for the
	// game-specific overlapping entry.
	assert.Equal(t, "[[GL0]] fight", applied.Text)
}

func TestApplyNoMatchLeavesTextUntouched(t *testing.T) {
	p := &Protector{}
	glossaries := glossaryWith(domain.GlossaryEntry{Source: "Stamina", Target: "Resistenza"})

	applied := p.Apply("Nothing to see", glossaries)
	assert.Equal(t, "Nothing to see", applied.Text)
	assert.Empty(t, applied.Replacements)
}

func TestRestoreReportsMissingPlaceholders(t *testing.T) {
	p := &Protector{}
	replacements := map[string]string{
		"[[GL0]]": "Punti Vita",
		"[[GL1]]": "Resistenza",
	}

	// The "translator" dropped [[GL1]].
	restored, missing := p.Restore("Your Punti [[GL0]] here", replacements)
	assert.Equal(t, "Your Punti Punti Vita here", restored)
	assert.Equal(t, []string{"[[GL1]]"}, missing)
}

func TestRestoreSurvivesReordering(t *testing.T) {
	p := &Protector{}
	glossaries := glossaryWith(
		domain.GlossaryEntry{Source: "HP", Target: "PV", WholeWord: true},
		domain.GlossaryEntry{Source: "MP", Target: "PM", WholeWord: true},
	)
	applied := p.Apply("HP and MP", glossaries)

	// The transform reorders the placeholders and adds new text around them.
	reordered := "[[GL1]] prima, poi [[GL0]]"
	restored, missing := p.Restore(reordered, applied.Replacements)
	assert.Equal(t, "PM prima, poi PV", restored)
	assert.Empty(t, missing)
}

func TestOpaqueTokens(t *testing.T) {
	p := &Protector{Opaque: true}
	glossaries := glossaryWith(domain.GlossaryEntry{Source: "HP", Target: "PV", WholeWord: true})

	applied := p.Apply("HP low", glossaries)
	require.Len(t, applied.Replacements, 1)
	for token := range applied.Replacements {
		assert.True(t, strings.HasPrefix(token, "[[GL-"))
		assert.NotEqual(t, "[[GL0]]", token)
		assert.Contains(t, applied.Text, token)
	}

	restored, missing := p.Restore(applied.Text, applied.Replacements)
	assert.Equal(t, "PV low", restored)
	assert.Empty(t, missing)
}
