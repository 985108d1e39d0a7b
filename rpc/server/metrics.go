package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
)

const unknownMethod = "unknown"

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entry_rpc_requests_total",
		Help: "Total JSON-RPC requests by transport, method, and error code (0 on success).",
	}, []string{"transport", "method", "code"})

	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "entry_rpc_request_duration_seconds",
		Help:    "JSON-RPC request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"transport", "method"})

	wsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "entry_ws_connections",
		Help: "Number of open websocket connections.",
	})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "entry_rate_limited_total",
		Help: "Total requests rejected by the rate limiter.",
	})
)

// methodLabel keeps label cardinality bounded by the registered methods.
func (s *Server) methodLabel(method string) string {
	if s.router.HasMethod(method) {
		return method
	}
	return unknownMethod
}

func (s *Server) observe(transport string, req *jsonrpc.Request, resp *jsonrpc.Response, elapsed time.Duration) {
	method := s.methodLabel(req.Method)
	code := "0"
	if resp.Error != nil {
		code = strconv.Itoa(resp.Error.Code)
	}
	rpcRequestsTotal.WithLabelValues(transport, method, code).Inc()
	rpcRequestDuration.WithLabelValues(transport, method).Observe(elapsed.Seconds())
}
