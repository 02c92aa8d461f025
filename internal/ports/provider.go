package ports

import "context"

// TranslateRequest carries one text through the external translation step.
// Text arrives with glossary terms already replaced by placeholders; the
// provider must return every placeholder substring verbatim.
type TranslateRequest struct {
	Text        string
	SourceLang  string
	TargetLang  string
	Model       string
	Temperature float64
	Context     string
}

type TranslateResult struct {
	Translation string
	Raw         string
}

type ModelInfo struct {
	Name          string
	Description   string
	ContextTokens int
}

// Provider represents a single LLM provider implementation.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (TranslateResult, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
	Test(ctx context.Context) error
}
