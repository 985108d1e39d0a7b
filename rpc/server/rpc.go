package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pborman/uuid"

	"github.com/anyswap/BlockEntry-Service/log"
	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
)

const (
	transportHTTP = "http"
	transportWS   = "ws"
)

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestContentLength))
	var resp *jsonrpc.Response
	if err != nil {
		start := time.Now()
		req := &jsonrpc.Request{}
		resp = jsonrpc.NewErrorResponse(nil, jsonrpc.ErrCodeInvalidRequest, "Invalid Request: "+err.Error())
		s.finish(transportHTTP, uuid.New(), req, resp, start)
	} else {
		resp = s.handle(r.Context(), transportHTTP, body)
	}
	writeJSON(w, resp)
}

// handle serves one raw message and records logs and metrics for it.
func (s *Server) handle(ctx context.Context, transport string, data []byte) *jsonrpc.Response {
	start := time.Now()
	reqID := uuid.New()

	req, resp := s.router.HandleMessage(ctx, data)
	s.finish(transport, reqID, req, resp, start)
	return resp
}

func (s *Server) finish(transport, reqID string, req *jsonrpc.Request, resp *jsonrpc.Response, start time.Time) {
	elapsed := time.Since(start)
	s.observe(transport, req, resp, elapsed)
	if resp.Error != nil {
		log.Warn("rpc request failed", "transport", transport, "reqid", reqID,
			"method", req.Method, "id", string(req.ID),
			"code", resp.Error.Code, "err", resp.Error.Message, "elapsed", elapsed)
		return
	}
	if log.IsDebugEnabled() {
		log.Debug("rpc request served", "transport", transport, "reqid", reqID,
			"method", req.Method, "id", string(req.ID), "elapsed", elapsed)
	}
}

func writeJSON(w http.ResponseWriter, resp *jsonrpc.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error("marshal rpc response failed", "err", err)
		data, _ = json.Marshal(jsonrpc.NewErrorResponse(nil, jsonrpc.ErrCodeInternal, "Internal error"))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(data); err != nil {
		log.Debug("write rpc response failed", "err", err)
	}
}
