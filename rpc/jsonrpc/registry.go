package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/anyswap/BlockEntry-Service/ledger"
)

// Handler serves one JSON-RPC method.
// params is nil when the request carries no params.
type Handler interface {
	Handle(ctx context.Context, params json.RawMessage, reader ledger.Reader) (interface{}, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, params json.RawMessage, reader ledger.Reader) (interface{}, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, params json.RawMessage, reader ledger.Reader) (interface{}, error) {
	return f(ctx, params, reader)
}

// Registry maps method names to handlers.
// All registrations happen before serving; lookups are read only afterwards.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty method table.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler for method.
func (r *Registry) Register(method string, handler Handler) error {
	if method == "" {
		return fmt.Errorf("register empty method name")
	}
	if handler == nil {
		return fmt.Errorf("register nil handler for method '%s'", method)
	}
	if _, exist := r.handlers[method]; exist {
		return fmt.Errorf("method '%s' is already registered", method)
	}
	r.handlers[method] = handler
	return nil
}

// Lookup returns the handler of method.
func (r *Registry) Lookup(method string) (Handler, bool) {
	handler, ok := r.handlers[method]
	return handler, ok
}

// Methods returns the registered method names in order.
func (r *Registry) Methods() []string {
	methods := make([]string, 0, len(r.handlers))
	for method := range r.handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}
