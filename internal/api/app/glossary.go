package app

import (
	"context"

	"locmate/internal/domain"
	"locmate/internal/glossary"
)

type GlossaryAPI struct {
	svc *glossary.Service
}

func NewGlossaryAPI(svc *glossary.Service) *GlossaryAPI { return &GlossaryAPI{svc: svc} }

func (a *GlossaryAPI) Create(name, gameID string) (*domain.Glossary, error) {
	return a.svc.Create(context.Background(), name, gameID)
}

func (a *GlossaryAPI) Get(id string) (*domain.Glossary, error) {
	return a.svc.Get(context.Background(), id)
}

func (a *GlossaryAPI) List() ([]*domain.Glossary, error) {
	return a.svc.List(context.Background())
}

func (a *GlossaryAPI) Update(g domain.Glossary) (*domain.Glossary, error) {
	if err := a.svc.Update(context.Background(), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (a *GlossaryAPI) Delete(id string) (bool, error) {
	if err := a.svc.Delete(context.Background(), id); err != nil {
		return false, err
	}
	return true, nil
}

func (a *GlossaryAPI) AddEntry(glossaryID string, e domain.GlossaryEntry) (*domain.GlossaryEntry, error) {
	return a.svc.AddEntry(context.Background(), glossaryID, e)
}

func (a *GlossaryAPI) RemoveEntry(glossaryID, entryID string) (bool, error) {
	if err := a.svc.RemoveEntry(context.Background(), glossaryID, entryID); err != nil {
		return false, err
	}
	return true, nil
}

func (a *GlossaryAPI) Export(id string) (string, error) {
	data, err := a.svc.Export(context.Background(), id)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *GlossaryAPI) Import(data string) (*domain.Glossary, error) {
	return a.svc.Import(context.Background(), []byte(data))
}

func (a *GlossaryAPI) Stats(id string) (*domain.GlossaryStats, error) {
	return a.svc.Stats(context.Background(), id)
}

// PreviewResult shows the editor what a protected text looks like before it
// is sent out.
type PreviewResult struct {
	Text         string            `json:"text"`
	Replacements map[string]string `json:"replacements"`
}

func (a *GlossaryAPI) Preview(text, gameID string) (PreviewResult, error) {
	applied, err := a.svc.Apply(context.Background(), text, gameID)
	if err != nil {
		return PreviewResult{}, err
	}
	return PreviewResult{Text: applied.Text, Replacements: applied.Replacements}, nil
}
