package main

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App is the Wails application shell.
type App struct {
	ctx   context.Context
	relay *eventRelay
}

func NewApp(relay *eventRelay) *App {
	return &App{relay: relay}
}

// startup saves the runtime context so events can reach the frontend.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.relay.set(ctx)
}

// eventRelay forwards backend events to the frontend once the runtime
// context exists; before startup, events are dropped.
type eventRelay struct {
	mu  sync.RWMutex
	ctx context.Context
}

func (r *eventRelay) set(ctx context.Context) {
	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()
}

func (r *eventRelay) Emit(name string, payload any) {
	r.mu.RLock()
	ctx := r.ctx
	r.mu.RUnlock()
	if ctx != nil {
		runtime.EventsEmit(ctx, name, payload)
	}
}
