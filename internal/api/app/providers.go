package app

import (
	"context"
	"errors"
	"strings"

	"locmate/internal/adapters/llm/factory"
	"locmate/internal/domain"
	"locmate/internal/ports"
)

type ProviderAPI struct {
	repo ports.ProviderRepository
}

func NewProviderAPI(repo ports.ProviderRepository) *ProviderAPI { return &ProviderAPI{repo: repo} }

func (a *ProviderAPI) Create(p domain.Provider) (*domain.Provider, error) {
	ctx := context.Background()
	if p.Type == "" || p.Name == "" {
		return nil, errors.New("type and name are required")
	}
	_ = a.normalizeModel(ctx, &p)
	if err := a.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	p.APIKey = mask(p.APIKey)
	return &p, nil
}

func (a *ProviderAPI) Update(p domain.Provider) (*domain.Provider, error) {
	ctx := context.Background()
	if p.ID == 0 {
		return nil, errors.New("id is required")
	}
	// A masked or empty key from the UI means "keep the stored one".
	if strings.HasPrefix(p.APIKey, "****") || p.APIKey == "" {
		existing, err := a.repo.Get(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			p.APIKey = existing.APIKey
		}
	}
	_ = a.normalizeModel(ctx, &p)
	if err := a.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	p.APIKey = mask(p.APIKey)
	return &p, nil
}

func (a *ProviderAPI) List() ([]*domain.Provider, error) {
	ctx := context.Background()
	list, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.APIKey = mask(p.APIKey)
	}
	return list, nil
}

func (a *ProviderAPI) Delete(id int64) (bool, error) {
	if err := a.repo.Delete(context.Background(), id); err != nil {
		return false, err
	}
	return true, nil
}

type ModelInfo struct {
	Name, Description string
	ContextTokens     int
}

func (a *ProviderAPI) ListModels(id int64) ([]ModelInfo, error) {
	ctx := context.Background()
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("provider not found")
	}
	prov, err := factory.FromProvider(p)
	if err != nil {
		return nil, err
	}
	models, err := prov.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	_ = a.repo.SaveModelCache(ctx, id, modelNames(models))
	return toModelInfos(models), nil
}

// ListModelsPreview returns models for a transient provider configuration
// without persisting it.
func (a *ProviderAPI) ListModelsPreview(p domain.Provider) ([]ModelInfo, error) {
	ctx := context.Background()
	prov, err := factory.FromProvider(&p)
	if err != nil {
		return nil, err
	}
	models, err := prov.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	return toModelInfos(models), nil
}

// ProviderTestResult reports a live round trip through a provider.
type ProviderTestResult struct {
	Ok          bool   `json:"ok"`
	Translation string `json:"translation,omitempty"`
	Raw         string `json:"raw,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Test performs a live translation of a simple phrase to validate the
// provider configuration. Failures are reported in the result, not as an
// API error.
func (a *ProviderAPI) Test(id int64) (ProviderTestResult, error) {
	ctx := context.Background()
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return ProviderTestResult{}, err
	}
	if p == nil {
		return ProviderTestResult{}, errors.New("provider not found")
	}
	prov, err := factory.FromProvider(p)
	if err != nil {
		return ProviderTestResult{}, err
	}
	res, trErr := prov.Translate(ctx, ports.TranslateRequest{
		Text:       "hello",
		SourceLang: "en",
		TargetLang: "it",
		Model:      p.Model,
	})
	if trErr != nil {
		return ProviderTestResult{Ok: false, Error: trErr.Error()}, nil
	}
	return ProviderTestResult{Ok: true, Translation: res.Translation, Raw: res.Raw}, nil
}

// normalizeModel converts human-readable model labels to canonical ids for
// providers that expose both (OpenRouter). Best effort, in place.
func (a *ProviderAPI) normalizeModel(ctx context.Context, p *domain.Provider) error {
	if p == nil || strings.ToLower(p.Type) != "openrouter" {
		return nil
	}
	m := strings.TrimSpace(p.Model)
	if m == "" {
		return nil
	}
	// Labels tend to contain spaces or parentheses; ids rarely do.
	if !strings.ContainsAny(m, " ()") {
		return nil
	}
	prov, err := factory.FromProvider(p)
	if err != nil {
		return nil
	}
	models, err := prov.ListModels(ctx)
	if err != nil {
		return err
	}
	for _, mi := range models {
		if strings.EqualFold(mi.Name, m) || strings.EqualFold(mi.Description, m) {
			p.Model = mi.Name
			return nil
		}
	}
	return nil
}

func toModelInfos(models []ports.ModelInfo) []ModelInfo {
	out := make([]ModelInfo, 0, len(models))
	for _, m := range models {
		out = append(out, ModelInfo{Name: m.Name, Description: m.Description, ContextTokens: m.ContextTokens})
	}
	return out
}

func modelNames(models []ports.ModelInfo) []string {
	out := make([]string, 0, len(models))
	for _, m := range models {
		out = append(out, m.Name)
	}
	return out
}

func mask(s string) string {
	if len(s) <= 4 {
		return s
	}
	return "****" + s[len(s)-4:]
}
