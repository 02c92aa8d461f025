package domain

import "time"

// MemoryEntry is a previously produced (source, target) pair stored in the
// translation memory. Entries are created on the first successful translation
// of a text and mutated on reuse; deletion is owned by the external store.
type MemoryEntry struct {
	ID         int64     `json:"id"`
	SourceText string    `json:"source_text"`
	TargetText string    `json:"target_text"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	Context    string    `json:"context"`
	Confidence float64   `json:"confidence"` // [0,1]
	UsageCount int       `json:"usage_count"`
	ProjectID  string    `json:"project_id"`
	GameID     string    `json:"game_id"`
	FilePath   string    `json:"file_path"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Key identifies the upsert tuple: re-inserting an entry with the same key
// raises confidence to max(old, new) and strictly increases usage_count.
type MemoryKey struct {
	SourceText string
	SourceLang string
	TargetLang string
	ProjectID  string
}

func (e *MemoryEntry) Key() MemoryKey {
	return MemoryKey{
		SourceText: e.SourceText,
		SourceLang: e.SourceLang,
		TargetLang: e.TargetLang,
		ProjectID:  e.ProjectID,
	}
}
