package server

import (
	"encoding/json"
	"net/http"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"

	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
)

// newLimiter returns nil when rate limiting is disabled.
func (s *Server) newLimiter() *limiter.Limiter {
	if s.config.MaxRequestsLimit <= 0 {
		return nil
	}
	lmt := tollbooth.NewLimiter(float64(s.config.MaxRequestsLimit), nil)
	msg, _ := json.Marshal(jsonrpc.NewErrorResponse(nil, jsonrpc.ErrCodeRateLimited, "Too many requests"))
	lmt.SetMessage(string(msg))
	lmt.SetMessageContentType("application/json")
	lmt.SetOnLimitReached(func(w http.ResponseWriter, r *http.Request) {
		rateLimitedTotal.Inc()
	})
	return lmt
}

func limitHandler(lmt *limiter.Limiter, next http.Handler) http.Handler {
	if lmt == nil {
		return next
	}
	return tollbooth.LimitHandler(lmt, next)
}
