// Package server serves the json-rpc router over http and websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anyswap/BlockEntry-Service/log"
	"github.com/anyswap/BlockEntry-Service/params"
	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
	"github.com/anyswap/BlockEntry-Service/rpc/restapi"
)

const (
	maxRequestContentLength = 1024 * 1024
	shutdownTimeout         = 5 * time.Second
)

// Server is the api server of the entry service.
type Server struct {
	config *params.APIServerConfig
	router *jsonrpc.Router

	upgrader *websocket.Upgrader

	mu           sync.Mutex
	httpServer   *http.Server
	listener     net.Listener
	wsConns      map[*wsConn]struct{}
	shuttingDown bool
}

// NewServer creates an api server dispatching to router.
func NewServer(config *params.APIServerConfig, router *jsonrpc.Router) *Server {
	s := &Server{
		config:  config,
		router:  router,
		wsConns: make(map[*wsConn]struct{}),
	}
	s.upgrader = s.newUpgrader()
	return s
}

// Handler returns the http handler with all routes and middlewares.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	lmt := s.newLimiter()
	rpcHandler := limitHandler(lmt, http.HandlerFunc(s.serveRPC))
	r.Handle("/", rpcHandler).Methods(http.MethodPost)
	r.Handle("/rpc", rpcHandler).Methods(http.MethodPost)
	if s.config.EnableWebsocket {
		r.Handle("/ws", limitHandler(lmt, http.HandlerFunc(s.serveWebsocket))).Methods(http.MethodGet)
	}
	r.HandleFunc("/serverinfo", restapi.ServerInfoHandler).Methods(http.MethodGet)
	r.HandleFunc("/versioninfo", restapi.VersionInfoHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", restapi.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST"}),
	}
	if len(s.config.AllowedOrigins) != 0 {
		corsOptions = append(corsOptions,
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
			handlers.AllowedOrigins(s.config.AllowedOrigins),
		)
	}
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(handlers.CORS(corsOptions...)(r))
}

// Start listens on the configured address and serves in background.
func (s *Server) Start() error {
	listenAddr := s.config.ListenAddress()
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %v: %w", listenAddr, err)
	}

	svr := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	s.mu.Lock()
	s.httpServer = svr
	s.listener = listener
	s.mu.Unlock()

	log.Info("JSON RPC service listen and serving", "addr", listener.Addr(),
		"allowedOrigins", s.config.AllowedOrigins, "websocket", s.config.EnableWebsocket)
	go func() {
		if err := svr.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Serve error", "err", err)
		}
	}()
	return nil
}

// Addr returns the listening address, nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shuttingDown = true
	svr := s.httpServer
	conns := make([]*wsConn, 0, len(s.wsConns))
	for conn := range s.wsConns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		conn.close()
	}
	if svr == nil {
		return nil
	}
	return svr.Shutdown(ctx)
}

// ShutdownWithTimeout calls Shutdown with the default deadline.
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(args ...interface{}) {
	log.Error("http handler panic", "detail", fmt.Sprint(args...))
}
