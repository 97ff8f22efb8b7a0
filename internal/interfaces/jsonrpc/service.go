package jsonrpcinterface

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/stream"
	interfaces "github.com/tdex-network/tdex-pool/internal/interfaces"
	rpchandler "github.com/tdex-network/tdex-pool/internal/interfaces/jsonrpc/handler"
	"github.com/tdex-network/tdex-pool/pkg/poolclient"
)

const (
	// MetricsEndpoint is the path where the prometheus metrics are served.
	MetricsEndpoint = "/metrics"

	shutdownTimeout = 5 * time.Second
)

type service struct {
	opts   ServiceOpts
	server *http.Server
}

type ServiceOpts struct {
	Port int

	Runtime    *hostenv.Runtime
	PoolSvc    *pool.Service
	WebhookSvc *pubsub.Service
	// EventHub, if defined, streams the pool events at
	// poolclient.EventsEndpoint.
	EventHub *stream.Hub
}

func (o ServiceOpts) validate() error {
	if o.Port <= 0 || o.Port > 65535 {
		return fmt.Errorf("invalid port %d", o.Port)
	}
	if o.Runtime == nil {
		return fmt.Errorf("runtime must not be null")
	}
	if o.PoolSvc == nil {
		return fmt.Errorf("pool app service must not be null")
	}
	if o.WebhookSvc == nil {
		return fmt.Errorf("webhook app service must not be null")
	}
	return nil
}

func (o ServiceOpts) address() string {
	return fmt.Sprintf(":%d", o.Port)
}

func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	handler, err := NewHandler(opts)
	if err != nil {
		return nil, err
	}

	return &service{
		opts:   opts,
		server: &http.Server{Addr: opts.address(), Handler: handler},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.opts.address())
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(lis); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Warn("jsonrpc interface stopped unexpectedly")
		}
	}()

	log.Infof("jsonrpc interface is listening on %s", s.opts.address())
	return nil
}

func (s *service) Stop() {
	// Hijacked websocket connections are not tracked by the http server.
	if s.opts.EventHub != nil {
		s.opts.EventHub.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop jsonrpc interface")
		return
	}
	log.Debug("stopped jsonrpc interface")
}

// NewHandler returns the router serving the JSON-RPC services at
// poolclient.Endpoint, the prometheus metrics at MetricsEndpoint and, if
// enabled, the event stream at poolclient.EventsEndpoint.
func NewHandler(opts ServiceOpts) (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterBeforeFunc(func(i *rpc.RequestInfo) {
		log.Debug(i.Method)
	})
	server.RegisterAfterFunc(func(i *rpc.RequestInfo) {
		if i.Error != nil {
			log.WithError(i.Error).Debugf("%s failed", i.Method)
		}
	})

	services := []struct {
		name    string
		handler interface{}
	}{
		{
			poolclient.PoolService,
			rpchandler.NewPoolHandler(opts.Runtime, opts.PoolSvc),
		},
		{poolclient.TokenService, rpchandler.NewTokenHandler(opts.Runtime)},
		{poolclient.AccountService, rpchandler.NewAccountHandler(opts.Runtime)},
		{poolclient.WebhookService, rpchandler.NewWebhookHandler(opts.WebhookSvc)},
	}
	for _, svc := range services {
		if err := server.RegisterService(svc.handler, svc.name); err != nil {
			return nil, fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	router := mux.NewRouter()
	router.Handle(poolclient.Endpoint, server).Methods(http.MethodPost)
	router.Handle(MetricsEndpoint, promhttp.Handler()).Methods(http.MethodGet)
	if opts.EventHub != nil {
		router.Handle(poolclient.EventsEndpoint, opts.EventHub).Methods(http.MethodGet)
	}
	return router, nil
}
