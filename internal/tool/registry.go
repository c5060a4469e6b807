// Package tool is the dispatch surface the conversation driver calls. Every
// tool takes string arguments and returns a string; failures ride inside the
// result (sentinels or a JSON error payload), never as a raised fault.
package tool

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/healthline/voice-agent/internal/telephony"
	"github.com/healthline/voice-agent/pkg/metrics"
)

// Args are the string-typed tool arguments from the conversation driver.
type Args map[string]string

// HandlerFunc executes a tool invocation. The session may be nil when the
// driver calls outside an active call; handlers that need one must check.
type HandlerFunc func(ctx context.Context, sess *telephony.Session, args Args) string

// Parameter describes one tool argument in the published schema.
type Parameter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Definition is the schema published to the conversation driver.
type Definition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

// Tool pairs a definition with its handler.
type Tool struct {
	Definition
	Handler HandlerFunc
}

// Registry holds the named tools and records invocation metrics.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]*Tool
	metrics *metrics.Metrics
}

// NewRegistry builds an empty registry. Metrics may be nil in tests.
func NewRegistry(m *metrics.Metrics) *Registry {
	return &Registry{
		tools:   make(map[string]*Tool),
		metrics: m,
	}
}

func (r *Registry) Register(t *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name] = t
}

// Definitions returns the published tool schema, sorted by name.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.Definition)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Invoke runs the named tool. An unknown name is the only error this method
// returns; tool-level failures are already folded into the result string.
func (r *Registry) Invoke(ctx context.Context, name string, sess *telephony.Session, args Args) (string, error) {
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	start := time.Now()
	result := t.Handler(ctx, sess, args)

	if r.metrics != nil {
		outcome := "ok"
		if result == SentinelFailure || result == SentinelError {
			outcome = "failure"
		}
		r.metrics.ToolInvocations.WithLabelValues(name, outcome).Inc()
		r.metrics.ToolLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
	return result, nil
}
