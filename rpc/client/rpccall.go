package client

import (
	"errors"
	"fmt"
)

// ErrRPCQueryError rpc query error
var ErrRPCQueryError = errors.New("rpc query error")

// WrapRPCQueryError wrap rpc error
func WrapRPCQueryError(err error, method string, params ...interface{}) error {
	return fmt.Errorf("%w: call '%s %v' failed, err='%v'", ErrRPCQueryError, method, params, err)
}

// RPCCall tries urls in order and returns the first successful result.
// Json-rpc errors are returned as is, they would be the same on every url.
func RPCCall(result interface{}, urls []string, req *Request) (err error) {
	if len(urls) == 0 {
		return WrapRPCQueryError(errors.New("no url specified"), req.Method, req.Params)
	}
	for _, url := range urls {
		err = RPCPostRequest(url, req, result)
		if err == nil || isRPCError(err) {
			return err
		}
	}
	return WrapRPCQueryError(err, req.Method, req.Params)
}
