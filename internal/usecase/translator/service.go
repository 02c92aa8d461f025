// Package translator runs single texts through the external translation
// step, shielding glossary terms and feeding the translation memory.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"locmate/internal/domain"
	"locmate/internal/glossary"
	"locmate/internal/ports"
	"locmate/internal/usecase/memory"
)

// machineConfidence is the confidence recorded for entries produced by a
// live provider call, below the 1.0 of a human-approved pair.
const machineConfidence = 0.8

type Deps struct {
	Providers ports.ProviderRepository
	Memory    *memory.Service
	Glossary  *glossary.Service
	// BuildProvider returns a concrete ports.Provider for a stored record.
	BuildProvider func(*domain.Provider) (ports.Provider, error)
	Logger        *slog.Logger
}

type Service struct {
	d       Deps
	log     *slog.Logger
	breaker *gobreaker.CircuitBreaker
}

func New(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		d:   d,
		log: logger.With("component", "translator"),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "provider-translate",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
		}),
	}
}

type TranslateArgs struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderID   int64
	Model        string
	ProjectID    string
	GameID       string
	Context      string
	BypassMemory bool
}

// TranslateOne translates a single text: reuse an exact translation-memory
// hit when one exists, otherwise protect glossary terms, call the provider,
// restore the terms and remember the result.
func (s *Service) TranslateOne(ctx context.Context, a TranslateArgs) (string, error) {
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return "", errors.New("text is required")
	}

	opts := memory.SearchOptions{
		SourceLang: a.SourceLang,
		TargetLang: a.TargetLang,
		ProjectID:  a.ProjectID,
	}
	if !a.BypassMemory {
		hits, err := s.d.Memory.Exact(ctx, text, opts)
		if err != nil {
			return "", err
		}
		if len(hits) > 0 {
			top := hits[0]
			_ = s.d.Memory.RecordUse(ctx, top.Entry.ID)
			s.log.Debug("memory hit", "usage", top.Entry.UsageCount+1)
			return top.Entry.TargetText, nil
		}
	}

	prov, err := s.d.Providers.Get(ctx, a.ProviderID)
	if err != nil {
		return "", err
	}
	if prov == nil {
		return "", fmt.Errorf("provider not found: %d", a.ProviderID)
	}
	if s.d.BuildProvider == nil {
		return "", errors.New("provider builder missing")
	}
	adapter, err := s.d.BuildProvider(prov)
	if err != nil {
		return "", err
	}

	applied, err := s.d.Glossary.Apply(ctx, text, a.GameID)
	if err != nil {
		return "", err
	}

	model := a.Model
	if model == "" {
		model = prov.Model
	}
	req := ports.TranslateRequest{
		Text:        applied.Text,
		SourceLang:  a.SourceLang,
		TargetLang:  a.TargetLang,
		Model:       model,
		Temperature: 0.0,
		Context:     a.Context,
	}

	var res ports.TranslateResult
	for attempt := 1; attempt <= 3; attempt++ {
		out, brErr := s.breaker.Execute(func() (any, error) {
			return adapter.Translate(ctx, req)
		})
		if brErr == nil {
			res = out.(ports.TranslateResult)
			err = nil
			break
		}
		err = brErr
		// Retry only output/format flakes; transport and breaker errors
		// surface immediately.
		if !isRetryableTranslateError(brErr) || attempt == 3 {
			return "", brErr
		}
		time.Sleep(time.Duration(200*attempt) * time.Millisecond)
	}
	if err != nil {
		return "", err
	}

	translated := s.d.Glossary.Restore(strings.TrimSpace(res.Translation), applied.Replacements)

	entry := &domain.MemoryEntry{
		SourceText: text,
		TargetText: translated,
		SourceLang: a.SourceLang,
		TargetLang: a.TargetLang,
		Context:    a.Context,
		Confidence: machineConfidence,
		ProjectID:  a.ProjectID,
		GameID:     a.GameID,
	}
	if err := s.d.Memory.Remember(ctx, entry); err != nil {
		// The translation itself succeeded; a memory write failure is not
		// worth failing the call for.
		s.log.Warn("failed to remember translation", "error", err)
	}
	return translated, nil
}

// isRetryableTranslateError returns true for transient output/format issues
// that are likely to succeed on retry (e.g., invalid JSON in the model
// response).
func isRetryableTranslateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "failed to parse translation json"):
		return true
	case strings.Contains(msg, "no choices returned"):
		return true
	case strings.Contains(msg, "unexpected end of"):
		return true
	case strings.Contains(msg, "invalid character"):
		return true
	default:
		return false
	}
}
