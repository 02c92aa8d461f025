package domain

import "time"

// Provider is a stored translation-backend configuration. Type selects the
// adapter (openai, openrouter, ollama); OptionsRaw carries adapter-specific
// settings as an opaque JSON blob.
type Provider struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	BaseURL    string    `json:"base_url"`
	Model      string    `json:"model"`
	APIKey     string    `json:"api_key"`
	OptionsRaw string    `json:"options_json"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProviderModel is one cached model name fetched from a provider, so the
// model picker works without a live round trip.
type ProviderModel struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	Name       string    `json:"name"`
	UpdatedAt  time.Time `json:"updated_at"`
}
