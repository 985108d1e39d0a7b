package jsonrpc

import (
	"bytes"
	"encoding/json"
)

// DecodeRequest parses one request object.
// The returned *Error, if any, is already shaped for the response; the
// returned request is still usable to echo its id.
// A wrong or missing version is not reported here, Router.Handle rejects it.
func DecodeRequest(data []byte) (*Request, *Error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		if json.Valid(data) {
			return &Request{}, invalidRequest(describeNonObject(data))
		}
		return &Request{}, NewError(ErrCodeParse, "Parse error")
	}
	if members == nil {
		return &Request{}, invalidRequest("request must be an object")
	}

	req := &Request{
		ID:     members["id"],
		Params: members["params"],
	}
	if raw, ok := members["jsonrpc"]; ok {
		// a non string version stays empty and fails the version check
		_ = json.Unmarshal(raw, &req.JSONRPC)
	}
	if req.JSONRPC != Version {
		return req, nil
	}
	if raw, ok := members["method"]; ok {
		if err := json.Unmarshal(raw, &req.Method); err != nil || isNull(raw) {
			return req, invalidRequest("method must be a string")
		}
	}
	return req, nil
}

func invalidRequest(detail string) *Error {
	return NewError(ErrCodeInvalidRequest, "Invalid Request: "+detail)
}

func describeNonObject(data []byte) string {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return "batch requests are not supported"
	}
	return "request must be an object"
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
