// Package batch runs multi-item editing operations over a selection of
// record ids, aggregating per-item outcomes into a single result.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"locmate/internal/domain"
	"locmate/internal/progress"
)

// ErrConfirmationDeclined is returned when the user rejects the confirmation
// gate of an operation. The action is never invoked and the selection stays
// untouched.
var ErrConfirmationDeclined = errors.New("operation declined by user")

// ErrEmptySelection is returned when Run is invoked with nothing selected.
var ErrEmptySelection = errors.New("no items selected")

// Action is the sole seam between the executor and a concrete operation
// (translate, approve, delete, export, ...).
type Action func(ctx context.Context, itemIDs []string) (*domain.BatchResult, error)

// Operation is a definition, not data: what to run and whether to gate it
// behind a confirmation step.
type Operation struct {
	ID                   string
	Name                 string
	RequiresConfirmation bool
	Action               Action
}

// Confirmer answers the pre-start confirmation question. It is the only
// cancellable point: once an operation starts it runs to completion.
type Confirmer interface {
	Confirm(ctx context.Context, op Operation, itemIDs []string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, op Operation, itemIDs []string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, op Operation, itemIDs []string) bool {
	return f(ctx, op, itemIDs)
}

// Emitter receives fire-and-forget progress notifications. Emit never blocks
// or alters the executor's control flow.
type Emitter interface {
	Emit(name string, payload any)
}

// Hooks are the lifecycle callbacks exposed to the surrounding application.
type Hooks struct {
	OnStart    func(op Operation, itemIDs []string)
	OnComplete func(op Operation, result *domain.BatchResult)
	OnError    func(op Operation, err error)
}

// State of one operation invocation.
type State string

const (
	StateIdle      State = "idle"
	StateConfirm   State = "confirming"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateRejected  State = "rejected"
)

// Executor runs operations over the current selection.
type Executor struct {
	Selection *Selection

	confirmer Confirmer
	hooks     Hooks
	em        Emitter
	log       *slog.Logger

	mu    sync.Mutex
	state State
}

func NewExecutor(confirmer Confirmer, em Emitter, hooks Hooks, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		Selection: NewSelection(),
		confirmer: confirmer,
		hooks:     hooks,
		em:        em,
		log:       logger.With("component", "batch"),
		state:     StateIdle,
	}
}

func (x *Executor) State() State {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state
}

func (x *Executor) setState(s State) {
	x.mu.Lock()
	x.state = s
	x.mu.Unlock()
}

// Run executes op over the current selection and returns its aggregate
// result.
//
// A failure of the action itself (as opposed to per-item failures inside a
// produced BatchResult) propagates to the caller unchanged.
func (x *Executor) Run(ctx context.Context, op Operation) (*domain.BatchResult, error) {
	itemIDs := x.Selection.Items()
	if len(itemIDs) == 0 {
		return nil, ErrEmptySelection
	}

	if op.RequiresConfirmation {
		x.setState(StateConfirm)
		if x.confirmer == nil || !x.confirmer.Confirm(ctx, op, itemIDs) {
			x.setState(StateRejected)
			x.log.Debug("operation declined", "operation", op.ID, "items", len(itemIDs))
			return nil, ErrConfirmationDeclined
		}
	}

	x.setState(StateRunning)
	if x.hooks.OnStart != nil {
		x.hooks.OnStart(op, itemIDs)
	}
	x.emit("batch.started", map[string]any{"operation_id": op.ID, "total": len(itemIDs)})
	x.log.Info("operation started", "operation", op.ID, "items", len(itemIDs))

	result, err := op.Action(ctx, itemIDs)
	if err != nil {
		x.setState(StateIdle)
		if x.hooks.OnError != nil {
			x.hooks.OnError(op, err)
		}
		x.emit("batch.failed", map[string]any{"operation_id": op.ID, "error": err.Error()})
		return nil, err
	}

	x.setState(StateCompleted)
	if x.hooks.OnComplete != nil {
		x.hooks.OnComplete(op, result)
	}
	x.emit("batch.completed", map[string]any{
		"operation_id": op.ID,
		"total":        result.TotalItems,
		"succeeded":    result.SuccessCount,
		"failed":       result.FailureCount,
	})
	x.log.Info("operation completed", "operation", op.ID,
		"succeeded", result.SuccessCount, "failed", result.FailureCount)
	return result, nil
}

// ItemFunc processes a single item and returns its payload.
type ItemFunc func(ctx context.Context, itemID string) (any, error)

// PerItemConfig tunes the generated per-item action.
type PerItemConfig struct {
	// Delay is the pause between item starts, to stay under external rate
	// limits. Zero disables it.
	Delay time.Duration
	// Concurrency limits in-flight items; values below 1 mean sequential.
	Concurrency int
	// FallbackItemTime seeds the ETA before the first item has completed.
	FallbackItemTime time.Duration
}

// PerItem builds a bulk Action from a per-item function. Every attempted item
// yields exactly one result entry; a failing item is recorded, never aborts
// the rest.
func (x *Executor) PerItem(operationID string, fn ItemFunc, cfg PerItemConfig) Action {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return func(ctx context.Context, itemIDs []string) (*domain.BatchResult, error) {
		start := time.Now()
		results := make([]domain.BatchItemResult, len(itemIDs))
		smoother := progress.NewSmoother(0.4)

		var mu sync.Mutex
		processed, succeeded := 0, 0

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Concurrency)
		for i, id := range itemIDs {
			if i > 0 && cfg.Delay > 0 {
				time.Sleep(cfg.Delay)
			}
			i, id := i, id
			g.Go(func() error {
				results[i] = x.attempt(gctx, fn, id)

				mu.Lock()
				processed++
				if results[i].Success {
					succeeded++
				}
				done, ok := processed, succeeded
				mu.Unlock()

				pct := smoother.Update(progress.BatchProgress(len(itemIDs), ok, done-ok))
				x.emit("batch.item.done", results[i])
				x.emit("batch.progress", domain.ProgressUpdate{
					OperationID: operationID,
					Progress:    pct,
					Status:      string(StateRunning),
					EstimatedTimeRemaining: progress.EstimateBatchTimeRemaining(
						len(itemIDs), done, time.Since(start), cfg.FallbackItemTime),
					Data: map[string]any{"processed": done, "total": len(itemIDs)},
				})
				return nil
			})
		}
		_ = g.Wait() // item errors never surface here

		failed := 0
		for _, r := range results {
			if !r.Success {
				failed++
			}
		}
		return &domain.BatchResult{
			OperationID:  operationID,
			TotalItems:   len(itemIDs),
			SuccessCount: len(itemIDs) - failed,
			FailureCount: failed,
			Results:      results,
			Duration:     time.Since(start),
			CompletedAt:  time.Now().UTC(),
		}, nil
	}
}

// attempt isolates one item: an error or panic becomes a failure entry.
func (x *Executor) attempt(ctx context.Context, fn ItemFunc, id string) (res domain.BatchItemResult) {
	res = domain.BatchItemResult{ItemID: id}
	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Result = nil
			res.Error = fmt.Sprintf("panic: %v", r)
		}
	}()
	payload, err := fn(ctx, id)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	res.Result = payload
	return res
}

func (x *Executor) emit(name string, payload any) {
	if x.em != nil {
		x.em.Emit(name, payload)
	}
}
