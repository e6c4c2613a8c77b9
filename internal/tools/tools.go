// Package tools exposes the analysis capabilities behind a uniform tool
// interface so callers can discover and invoke them by name.
package tools

import (
	"context"
	"sync"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
)

// Tool is one named analysis capability. Execute takes loosely typed
// parameters as described by Info().Parameters (a JSON schema) and
// returns a JSON-serializable result.
type Tool interface {
	Info() domain.ToolInfo
	Execute(ctx context.Context, params map[string]any) (any, error)
}

// Registry holds the registered tools. Registration happens at startup;
// lookups are concurrent.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a name twice is a programming error
// and reported as a conflict.
func (r *Registry) Register(tool Tool) error {
	name := tool.Info().Name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return domainerrors.Conflict("tool already registered").WithDetails(map[string]any{"name": name})
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	if !ok {
		return nil, domainerrors.NotFoundf("tool %q not found", name)
	}
	return tool, nil
}

// List returns tool descriptions in registration order.
func (r *Registry) List() []domain.ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]domain.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, r.tools[name].Info())
	}
	return infos
}

// Execute runs a named tool.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (any, error) {
	tool, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return tool.Execute(ctx, params)
}

func stringParam(params map[string]any, key string) (string, bool) {
	value, ok := params[key].(string)
	return value, ok && value != ""
}

func stringSliceParam(params map[string]any, key string) ([]string, bool) {
	raw, ok := params[key].([]any)
	if !ok {
		// Already-typed slices arrive from in-process callers.
		typed, ok := params[key].([]string)
		return typed, ok
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		values = append(values, s)
	}
	return values, true
}
