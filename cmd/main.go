package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	aulogging "github.com/StephanHCB/go-autumn-logging"
	auzerolog "github.com/StephanHCB/go-autumn-logging-zerolog"
	"github.com/rs/zerolog"

	"github.com/fleetmgmt/billplz-payment-service/internal/common"
	"github.com/fleetmgmt/billplz-payment-service/internal/config"
	"github.com/fleetmgmt/billplz-payment-service/internal/interaction"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database/inmemory"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database/mysql"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/billplz"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/fleetmanager"
	"github.com/fleetmgmt/billplz-payment-service/internal/server"
)

func main() {
	confFile := flag.String("config", "config.yaml", "configuration file path")
	flag.Parse()

	logger := logging.NewLogger()

	conf, err := config.LoadConfiguration(*confFile, logger.Error)
	if err != nil {
		logger.Fatal("could not load configuration from %s. [error]: %v", *confFile, err)
	}

	setupLogging(conf)

	store, err := newRepository(conf, logger)
	if err != nil {
		logger.Fatal("could not set up the database. [error]: %v", err)
	}

	if err := store.Migrate(); err != nil {
		logger.Fatal("could not migrate the database. [error]: %v", err)
	}

	fleetClient, err := fleetmanager.New(conf.Service.FleetManagerService, conf.Security.Fixed.Api)
	if err != nil {
		logger.Fatal("could not create the fleet manager client. [error]: %v", err)
	}

	providerClient, err := billplz.New(conf.Payment)
	if err != nil {
		logger.Fatal("could not create the provider client. [error]: %v", err)
	}

	interactor, err := interaction.NewServiceInteractor(store, fleetClient, providerClient, conf, logger)
	if err != nil {
		logger.Fatal("could not create the service interactor. [error]: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := server.CreateRouter(interactor, &conf.Security)
	srv := server.NewServer(ctx, &conf.Server, router)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		logger.Info("received shutdown signal, stopping now")
		cancel()

		tCtx, tCancel := context.WithTimeout(context.Background(), time.Second*5)
		defer tCancel()

		if err := srv.Shutdown(tCtx); err != nil {
			logger.Error("could not shut down the server gracefully. [error]: %v", err)
		}
	}()

	logger.Info("serving on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server terminated unexpectedly. [error]: %v", err)
	}

	logger.Info("shutdown complete")
}

// setupLogging configures the global logger used by the rest client layer.
// The request scoped loggers come out of the logging package instead.
func setupLogging(conf *config.Application) {
	if conf.Logging.Plaintext {
		auzerolog.SetupPlaintextLogging()
	} else {
		auzerolog.SetupJsonLogging(common.ApplicationName)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(conf.Logging.Severity))
	if err != nil {
		aulogging.Logger.NoCtx().Warn().Printf("unknown log severity %q, falling back to info", conf.Logging.Severity)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func newRepository(conf *config.Application, logger logging.Logger) (database.Repository, error) {
	switch conf.Database.Use {
	case config.Mysql:
		return mysql.NewMySQLConnector(conf.Database, logger)
	default:
		logger.Warn("using in memory database. This setting is not intended for production use")
		return inmemory.NewInMemoryProvider(), nil
	}
}
