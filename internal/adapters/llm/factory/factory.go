package factory

import (
	"fmt"
	"strings"

	"locmate/internal/adapters/llm/httpclient"
	"locmate/internal/adapters/llm/openai"
	"locmate/internal/adapters/llm/registry"
	"locmate/internal/domain"
	"locmate/internal/ports"
)

// adapters caches constructed clients so repeated translations against the
// same provider reuse one HTTP client.
var adapters = registry.New()

// FromProvider builds (or reuses) the concrete adapter for a stored provider
// record.
func FromProvider(p *domain.Provider) (ports.Provider, error) {
	key := cacheKey(p)
	if prov, ok := adapters.Get(key); ok {
		return prov, nil
	}
	prov, err := build(p)
	if err != nil {
		return nil, err
	}
	adapters.Register(key, prov)
	return prov, nil
}

func build(p *domain.Provider) (ports.Provider, error) {
	switch strings.ToLower(p.Type) {
	case "openai":
		return openai.New(p.APIKey, p.BaseURL, p.Model), nil
	case "openrouter", "ollama":
		return httpclient.New(p.Type, p.APIKey, p.BaseURL, p.Model), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", p.Type)
	}
}

func cacheKey(p *domain.Provider) string {
	return fmt.Sprintf("%s|%s|%s|%s", strings.ToLower(p.Type), p.BaseURL, p.Model, p.APIKey)
}
