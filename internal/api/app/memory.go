package app

import (
	"context"

	"locmate/internal/domain"
	"locmate/internal/match"
	"locmate/internal/usecase/memory"
)

type MemoryAPI struct {
	svc *memory.Service
}

func NewMemoryAPI(svc *memory.Service) *MemoryAPI { return &MemoryAPI{svc: svc} }

type MemorySearchRequest struct {
	Query          string  `json:"query"`
	SourceLang     string  `json:"source_lang"`
	TargetLang     string  `json:"target_lang"`
	Threshold      float64 `json:"threshold"`
	MaxResults     int     `json:"max_results"`
	ProjectID      string  `json:"project_id"`
	GameID         string  `json:"game_id"`
	IncludeContext bool    `json:"include_context"`
	PreferRecent   bool    `json:"prefer_recent"`
}

func (a *MemoryAPI) Search(req MemorySearchRequest) ([]match.Result, error) {
	return a.svc.Search(context.Background(), req.Query, memory.SearchOptions{
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		Threshold:      req.Threshold,
		MaxResults:     req.MaxResults,
		ProjectID:      req.ProjectID,
		GameID:         req.GameID,
		IncludeContext: req.IncludeContext,
		PreferRecent:   req.PreferRecent,
	})
}

func (a *MemoryAPI) Exact(req MemorySearchRequest) ([]match.Result, error) {
	return a.svc.Exact(context.Background(), req.Query, memory.SearchOptions{
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		ProjectID:  req.ProjectID,
	})
}

func (a *MemoryAPI) Remember(e domain.MemoryEntry) (*domain.MemoryEntry, error) {
	if err := a.svc.Remember(context.Background(), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (a *MemoryAPI) RecordUse(id int64) (bool, error) {
	if err := a.svc.RecordUse(context.Background(), id); err != nil {
		return false, err
	}
	return true, nil
}

// Highlight splits text into matched/unmatched segments against query, for
// rendering fuzzy-match previews.
func (a *MemoryAPI) Highlight(text, query string) []match.Segment {
	return match.HighlightMatches(text, query)
}
