package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"locmate/internal/batch"
	"locmate/internal/domain"
	"locmate/internal/usecase/translator"
)

// BatchAPI exposes multi-select editing: a selection the UI toggles items in
// and out of, and operations that run over it. The API doubles as the
// executor's confirmer: the UI arms the next confirmation with
// SetConfirmation before running a gated operation.
type BatchAPI struct {
	x          *batch.Executor
	translator *translator.Service

	confirmNext atomic.Bool
}

func NewBatchAPI(tr *translator.Service, em batch.Emitter, logger *slog.Logger) *BatchAPI {
	a := &BatchAPI{translator: tr}
	a.x = batch.NewExecutor(a, em, batch.Hooks{}, logger)
	return a
}

// Confirm consumes the armed confirmation; an unarmed gate declines.
func (a *BatchAPI) Confirm(ctx context.Context, op batch.Operation, itemIDs []string) bool {
	return a.confirmNext.Swap(false)
}

func (a *BatchAPI) SetConfirmation(ok bool) { a.confirmNext.Store(ok) }

func (a *BatchAPI) Toggle(id string) bool { return a.x.Selection.Toggle(id) }

func (a *BatchAPI) SelectAll(ids []string) int {
	a.x.Selection.SelectAll(ids)
	return a.x.Selection.Count()
}

func (a *BatchAPI) ClearSelection() { a.x.Selection.Clear() }

func (a *BatchAPI) SelectionCount() int { return a.x.Selection.Count() }

func (a *BatchAPI) SelectedItems() []string { return a.x.Selection.Items() }

func (a *BatchAPI) IsSelected(id string) bool { return a.x.Selection.IsSelected(id) }

func (a *BatchAPI) State() string { return string(a.x.State()) }

type BatchTranslateRequest struct {
	// Texts maps selected item ids to their source text.
	Texts                map[string]string `json:"texts"`
	SourceLang           string            `json:"source_lang"`
	TargetLang           string            `json:"target_lang"`
	ProviderID           int64             `json:"provider_id"`
	Model                string            `json:"model"`
	ProjectID            string            `json:"project_id"`
	GameID               string            `json:"game_id"`
	DelayMs              int               `json:"delay_ms"`
	Concurrency          int               `json:"concurrency"`
	RequiresConfirmation bool              `json:"requires_confirmation"`
}

// TranslateSelected translates every selected item. A missing text or a
// failed translation marks that item failed without stopping the rest.
func (a *BatchAPI) TranslateSelected(req BatchTranslateRequest) (*domain.BatchResult, error) {
	op := batch.Operation{
		ID:                   "batch.translate",
		Name:                 "Translate selection",
		RequiresConfirmation: req.RequiresConfirmation,
		Action: a.x.PerItem("batch.translate", func(ctx context.Context, id string) (any, error) {
			text, ok := req.Texts[id]
			if !ok {
				return nil, fmt.Errorf("no source text for item %s", id)
			}
			return a.translator.TranslateOne(ctx, translator.TranslateArgs{
				Text:       text,
				SourceLang: req.SourceLang,
				TargetLang: req.TargetLang,
				ProviderID: req.ProviderID,
				Model:      req.Model,
				ProjectID:  req.ProjectID,
				GameID:     req.GameID,
			})
		}, batch.PerItemConfig{
			Delay:       time.Duration(req.DelayMs) * time.Millisecond,
			Concurrency: req.Concurrency,
		}),
	}
	return a.x.Run(context.Background(), op)
}
