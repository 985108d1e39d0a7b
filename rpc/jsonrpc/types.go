// Package jsonrpc implements the JSON-RPC 2.0 envelope handling and method
// dispatch of the entry service. It does not know about any transport.
package jsonrpc

import (
	"encoding/json"
)

// Version is the only protocol version accepted.
const Version = "2.0"

// Request is a JSON-RPC request envelope.
// ID and Params are kept raw; ID is echoed back byte for byte.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC response envelope.
// Exactly one of Result and Error is set. A nil ID is written as null.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

func resultResponse(id json.RawMessage, result json.RawMessage) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Result:  result,
	}
}

func errorResponse(id json.RawMessage, err *Error) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Error:   err,
	}
}

// NewErrorResponse creates an error response for transports that fail before
// a request reaches the router.
func NewErrorResponse(id json.RawMessage, code int, message string) *Response {
	return errorResponse(id, NewError(code, message))
}
