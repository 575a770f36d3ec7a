package handler

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Registry maps handler names to handlers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	metrics  *Metrics
}

// NewRegistry creates an empty registry. metrics may be nil.
func NewRegistry(metrics *Metrics) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		metrics:  metrics,
	}
}

// Register adds h under name.
func (r *Registry) Register(name string, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return &ErrHandlerAlreadyRegistered{Name: name}
	}
	r.handlers[name] = h
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Get returns the handler registered under name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Handle runs the handler registered under name.
func (r *Registry) Handle(ctx context.Context, name string, conf Conf) (Result, error) {
	h, ok := r.Get(name)
	if !ok {
		return nil, &ErrHandlerNotFound{Name: name}
	}

	start := time.Now()
	result, err := h.Handle(ctx, conf)
	if r.metrics != nil {
		r.metrics.ObserveRequest(name, time.Since(start), err)
	}
	return result, err
}
