package app

import (
	"context"

	"locmate/internal/usecase/translator"
)

type TranslateAPI struct {
	svc *translator.Service
}

func NewTranslateAPI(svc *translator.Service) *TranslateAPI { return &TranslateAPI{svc: svc} }

type TranslateRequest struct {
	Text         string `json:"text"`
	SourceLang   string `json:"source_lang"`
	TargetLang   string `json:"target_lang"`
	ProviderID   int64  `json:"provider_id"`
	Model        string `json:"model"`
	ProjectID    string `json:"project_id"`
	GameID       string `json:"game_id"`
	Context      string `json:"context"`
	BypassMemory bool   `json:"bypass_memory"`
}

type TranslateResponse struct {
	Translation string `json:"translation"`
}

func (a *TranslateAPI) Translate(req TranslateRequest) (TranslateResponse, error) {
	out, err := a.svc.TranslateOne(context.Background(), translator.TranslateArgs{
		Text:         req.Text,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderID:   req.ProviderID,
		Model:        req.Model,
		ProjectID:    req.ProjectID,
		GameID:       req.GameID,
		Context:      req.Context,
		BypassMemory: req.BypassMemory,
	})
	if err != nil {
		return TranslateResponse{}, err
	}
	return TranslateResponse{Translation: out}, nil
}
