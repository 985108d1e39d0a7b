package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/anyswap/BlockEntry-Service/ledger"
	"github.com/anyswap/BlockEntry-Service/log"
)

// Router validates requests, dispatches them through a Registry and turns
// every outcome into a response. It keeps no state between requests.
type Router struct {
	registry    *Registry
	reader      ledger.Reader
	strictCodes bool
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithStrictErrorCodes reports unknown methods as -32601 and bad params as
// -32602 instead of folding them into -32603.
func WithStrictErrorCodes(strict bool) RouterOption {
	return func(r *Router) {
		r.strictCodes = strict
	}
}

// NewRouter creates a router serving the methods of registry against reader.
func NewRouter(registry *Registry, reader ledger.Reader, opts ...RouterOption) *Router {
	r := &Router{
		registry: registry,
		reader:   reader,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StrictErrorCodes reports whether the conventional error code split is used.
func (r *Router) StrictErrorCodes() bool {
	return r.strictCodes
}

// HasMethod reports whether method is registered.
func (r *Router) HasMethod(method string) bool {
	_, ok := r.registry.Lookup(method)
	return ok
}

// HandleMessage decodes and handles one raw request.
// The decoded request is returned along with the response, it is never nil.
func (r *Router) HandleMessage(ctx context.Context, data []byte) (*Request, *Response) {
	req, rpcErr := DecodeRequest(data)
	if rpcErr != nil {
		return req, errorResponse(req.ID, rpcErr)
	}
	return req, r.Handle(ctx, req)
}

// Handle serves one request. It always returns a well formed response.
func (r *Router) Handle(ctx context.Context, req *Request) *Response {
	if req.JSONRPC != Version {
		return errorResponse(req.ID, NewError(ErrCodeInvalidRequest, "Invalid JSON-RPC version (expected '2.0')"))
	}

	result, err := r.dispatch(ctx, req)
	if err != nil {
		return errorResponse(req.ID, r.mapError(req.Method, err))
	}

	data, err := json.Marshal(result)
	if err != nil {
		return errorResponse(req.ID, r.mapError(req.Method, err))
	}
	return resultResponse(req.ID, data)
}

func (r *Router) dispatch(ctx context.Context, req *Request) (result interface{}, err error) {
	handler, ok := r.registry.Lookup(req.Method)
	if !ok {
		return nil, &MethodNotFoundError{Method: req.Method}
	}
	defer func() {
		if x := recover(); x != nil {
			log.Error("rpc handler panic", "method", req.Method, "panic", x, "stack", string(debug.Stack()))
			result, err = nil, fmt.Errorf("handler panic: %v", x)
		}
	}()
	return handler.Handle(ctx, req.Params, r.reader)
}

func (r *Router) mapError(method string, err error) *Error {
	code := ErrCodeInternal
	if r.strictCodes {
		switch {
		case IsMethodNotFound(err):
			code = ErrCodeMethodNotFound
		case IsParamsError(err):
			code = ErrCodeInvalidParams
		}
	}
	return NewError(code, fmt.Sprintf("Method '%s' failed: %v", method, err))
}
