package rpc

import (
	"net"
	"net/http"
	"net/rpc"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/powerman/rpc-codec/jsonrpc2"
	"github.com/rs/cors"
)

var log = log15.New("module", "rpc")

// API describes one service exposed over JSON-RPC. Namespace becomes the
// method prefix, so a method GetBalance on namespace "ledger" is invoked
// as "ledger.GetBalance".
type API struct {
	Namespace string
	Version   string
	Service   interface{}
	Public    bool
}

// Server hosts registered APIs as JSON-RPC 2.0 over HTTP. Service methods
// follow the net/rpc shape: two arguments, the second a pointer, error
// return.
type Server struct {
	rpcSrv *rpc.Server

	listener net.Listener
	httpSrv  *http.Server
}

func NewServer(apis []API) (*Server, error) {
	srv := rpc.NewServer()
	for _, api := range apis {
		if err := srv.RegisterName(api.Namespace, api.Service); err != nil {
			return nil, err
		}
		log.Info("rpc api registered", "namespace", api.Namespace, "version", api.Version, "public", api.Public)
	}
	return &Server{rpcSrv: srv}, nil
}

// Start opens the HTTP endpoint and serves until Stop. It returns once
// the listener is bound, so a failed bind surfaces to the caller instead
// of a goroutine.
func (srv *Server) Start(endpoint string) error {
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return err
	}
	srv.listener = listener

	handler := cors.Default().Handler(jsonrpc2.HTTPHandler(srv.rpcSrv))
	srv.httpSrv = &http.Server{
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := srv.httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("rpc server stopped", "err", err)
		}
	}()

	log.Info("rpc endpoint opened", "url", "http://"+endpoint)
	return nil
}

// Addr is the bound listen address. It differs from the requested
// endpoint when the port was 0.
func (srv *Server) Addr() string {
	if srv.listener == nil {
		return ""
	}
	return srv.listener.Addr().String()
}

func (srv *Server) Stop() error {
	if srv.httpSrv == nil {
		return nil
	}
	err := srv.httpSrv.Close()
	srv.httpSrv = nil
	srv.listener = nil
	log.Info("rpc endpoint closed")
	return err
}
