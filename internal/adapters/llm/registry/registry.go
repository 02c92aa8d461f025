package registry

import (
	"context"
	"errors"
	"sync"

	"locmate/internal/ports"
)

// Registry caches constructed Provider adapters by name so repeated
// translations reuse the same HTTP client.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ports.Provider
}

func New() *Registry {
	return &Registry{providers: make(map[string]ports.Provider)}
}

func (r *Registry) Register(name string, p ports.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

func (r *Registry) Get(name string) (ports.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, name)
}

// HealthCheck runs Test on every registered provider.
func (r *Registry) HealthCheck(ctx context.Context) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]error, len(r.providers))
	for name, p := range r.providers {
		if p == nil {
			out[name] = errors.New("nil provider")
			continue
		}
		out[name] = p.Test(ctx)
	}
	return out
}
