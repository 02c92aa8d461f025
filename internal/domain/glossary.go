package domain

import "time"

// GlossaryEntry is a fixed-translation or do-not-translate term. An empty
// Target means "protect but do not translate": the source term is restored
// verbatim after the external translation step.
type GlossaryEntry struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Target        string    `json:"target"`
	CaseSensitive bool      `json:"case_sensitive"`
	WholeWord     bool      `json:"whole_word"`
	Category      string    `json:"category"` // character, location, item, ui, ...
	GameID        string    `json:"game_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Glossary is an ordered set of entries. An empty GameID marks the glossary
// as global: it applies to every game and is consulted before game-specific
// glossaries.
type Glossary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	GameID    string          `json:"game_id"`
	Entries   []GlossaryEntry `json:"entries"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsGlobal reports whether the glossary applies to all games.
func (g *Glossary) IsGlobal() bool { return g.GameID == "" }

// GlossaryExport is the round-trippable persistence envelope.
type GlossaryExport struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	Glossary   Glossary  `json:"glossary"`
}

// GlossaryStats summarizes a glossary for display.
type GlossaryStats struct {
	TotalEntries   int            `json:"total_entries"`
	DoNotTranslate int            `json:"do_not_translate"`
	ByCategory     map[string]int `json:"by_category"`
}
