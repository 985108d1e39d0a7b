// Package client calls the entry service json-rpc and rest apis.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/anyswap/BlockEntry-Service/internal/entryapi"
	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
)

const defaultTimeout = 60 // seconds

var httpClient = resty.New()

// Request json-rpc request
type Request struct {
	Method  string
	Params  interface{}
	Timeout int
	ID      interface{}
}

// NewRequestWithTimeoutAndID new request
func NewRequestWithTimeoutAndID(timeout int, id interface{}, method string, params ...interface{}) *Request {
	return &Request{
		Method:  method,
		Params:  params,
		Timeout: timeout,
		ID:      id,
	}
}

type requestBody struct {
	Version string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// RPCPostRequest post request
// A json-rpc error in the response is returned as *jsonrpc.Error.
func RPCPostRequest(url string, req *Request, result interface{}) error {
	ctx, cancel := withTimeout(req.Timeout)
	defer cancel()

	reqBody := &requestBody{
		Version: jsonrpc.Version,
		Method:  req.Method,
		Params:  req.Params,
		ID:      req.ID,
	}
	resp, err := httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(url)
	if err != nil {
		return fmt.Errorf("POST request error: %w (url: %v, method: %v)", err, url, req.Method)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("wrong response status %v. message: %v", resp.StatusCode(), resp.String())
	}

	var jsonResp jsonrpc.Response
	if err = json.Unmarshal(resp.Body(), &jsonResp); err != nil {
		return fmt.Errorf("unmarshal body error: %w", err)
	}
	if jsonResp.Error != nil {
		return jsonResp.Error
	}
	if err = json.Unmarshal(jsonResp.Result, result); err != nil {
		return fmt.Errorf("unmarshal result error: %w", err)
	}
	return nil
}

// RPCGet get url and decode the json body into result
func RPCGet(result interface{}, url string) error {
	ctx, cancel := withTimeout(defaultTimeout)
	defer cancel()

	resp, err := httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return fmt.Errorf("GET request error: %w (url: %v)", err, url)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("error response status: %v (url: %v)", resp.StatusCode(), url)
	}
	if err = json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("unmarshal result error: %w", err)
	}
	return nil
}

// GetBlockEntriesFrom call getBlockEntries trying urls in order
func GetBlockEntriesFrom(urls []string, slot uint64, id interface{}) ([]*entryapi.BlockEntry, error) {
	var entries []*entryapi.BlockEntry
	req := NewRequestWithTimeoutAndID(defaultTimeout, id, "getBlockEntries", slot)
	if err := RPCCall(&entries, urls, req); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetServerInfo get server info of the service at url
func GetServerInfo(url string) (*entryapi.ServerInfo, error) {
	var info entryapi.ServerInfo
	if err := RPCGet(&info, url+"/serverinfo"); err != nil {
		return nil, err
	}
	return &info, nil
}

func isRPCError(err error) bool {
	var rpcErr *jsonrpc.Error
	return errors.As(err, &rpcErr)
}

func withTimeout(timeoutSeconds int) (context.Context, context.CancelFunc) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultTimeout
	}
	return context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
}
