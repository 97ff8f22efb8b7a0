package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/config"
	"github.com/tdex-network/tdex-pool/internal/core/application"
	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/stream"
	jsonrpcinterface "github.com/tdex-network/tdex-pool/internal/interfaces/jsonrpc"
	"github.com/tdex-network/tdex-pool/pkg/stats"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	datadir := config.GetDatadir()
	dbDir := filepath.Join(datadir, config.DbLocation)
	profilerDir := filepath.Join(datadir, config.ProfilerLocation)

	eventHub := stream.NewHub(0, 0, 0)

	appConfig := &application.Config{
		DBType:            config.GetString(config.DBTypeKey),
		DBDir:             dbDir,
		PoolAccount:       config.GetString(config.PoolAccountKey),
		PoolNativeBalance: config.GetUint64(config.PoolNativeBalanceKey),
		PoolOpts: pool.Options{
			LpCodeHash:    config.GetString(config.LpCodeHashKey),
			Rounding:      config.GetSwapRounding(),
			ReserveSource: config.GetReserveSource(),
		},
		Token0:           config.GetString(config.Token0Key),
		Token1:           config.GetString(config.Token1Key),
		BootstrapOwner:   config.GetString(config.BootstrapOwnerKey),
		BootstrapSupply:  config.GetUint64(config.BootstrapSupplyKey),
		WebhookTimeout:   config.GetWebhookTimeout(),
		WebhookRateLimit: config.GetInt(config.WebhookRateLimitKey),
		EventStreams:     []ports.EventStream{eventHub},
	}
	// The pool must exist for the daemon to be of any use.
	if err := appConfig.Validate(); err != nil {
		appConfig.Close()
		log.WithError(err).Fatal("failed to initialize pool")
	}
	defer appConfig.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		stats.EnableMemoryStatistics(ctx, interval, profilerDir)
		log.Infof("profiler enabled, metrics are dumped to %s at shutdown", profilerDir)
	}

	svc, err := jsonrpcinterface.NewService(jsonrpcinterface.ServiceOpts{
		Port:       config.GetInt(config.RPCListeningPortKey),
		Runtime:    appConfig.Runtime(),
		PoolSvc:    appConfig.PoolService(),
		WebhookSvc: appConfig.WebhookService(),
		EventHub:   eventHub,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create jsonrpc interface")
	}

	log.RegisterExitHandler(svc.Stop)

	log.Info("starting daemon")
	defer log.Info("shutdown")

	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start jsonrpc interface")
	}
	defer svc.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	<-sigChan

	log.Info("shutting down daemon")
}
