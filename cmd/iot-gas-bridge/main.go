package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"gopkg.in/yaml.v2"

	"github.com/gasdetection/iot-gas-bridge/internal/pkg/application/ingest"
	"github.com/gasdetection/iot-gas-bridge/internal/pkg/infrastructure/push"
	"github.com/gasdetection/iot-gas-bridge/internal/pkg/infrastructure/router"
	"github.com/gasdetection/iot-gas-bridge/internal/pkg/infrastructure/state"
	"github.com/gasdetection/iot-gas-bridge/internal/pkg/infrastructure/transport"
	"github.com/gasdetection/iot-gas-bridge/internal/pkg/presentation/api"
	"github.com/gasdetection/iot-gas-bridge/internal/pkg/presentation/ws"
)

const serviceName string = "iot-gas-bridge"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	configurationFile
	credentialsFile
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		configurationFile: "/opt/iot-gas-bridge/config/config.yaml",
		credentialsFile:   "",
	}
}

type appConfig struct {
	Broker   transport.Config `yaml:"broker"`
	Alerting struct {
		Topic           string `yaml:"topic"`
		CredentialsFile string `yaml:"credentialsFile"`
	} `yaml:"alerting"`
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	cfg, err := parseExternalConfigFile(cfgFile)
	exitIf(err, logger, "could not parse configuration file")

	if flags[credentialsFile] != "" {
		cfg.Alerting.CredentialsFile = flags[credentialsFile]
	}

	server, mqttClient, err := initialize(ctx, flags, cfg)
	exitIf(err, logger, "failed to initialize bridge")

	err = mqttClient.Connect(ctx)
	if err != nil {
		// Recoverable, the client keeps retrying in the background.
		logger.Error("could not connect to broker", "err", err.Error())
	}

	go func() {
		logger.Info("starting http server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mqttClient.Disconnect()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down http server", "err", err.Error())
	}
}

func initialize(ctx context.Context, flags flagMap, cfg *appConfig) (*http.Server, *transport.Client, error) {
	logger := logging.GetFromContext(ctx)

	store := state.New()
	hub := ws.NewHub(logger)

	registry := push.NewTokenRegistry()
	gateway := newGateway(ctx, cfg.Alerting.CredentialsFile, logger)
	dispatcher := push.NewDispatcher(gateway, registry, cfg.Alerting.Topic, logger)

	svc := ingest.New(store, hub, dispatcher, logger)
	mqttClient := transport.New(cfg.Broker, svc.MessageHandler, svc.ConnectionHandler, logger)

	r := router.New(serviceName)
	err := api.RegisterHandlers(ctx, r, store, mqttClient, dispatcher, hub, hub.Handler(), cfg.Broker.TopicPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", flags[listenAddress], flags[servicePort]),
		Handler: r,
	}

	return server, mqttClient, nil
}

func newGateway(ctx context.Context, credentialsFile string, logger *slog.Logger) push.Gateway {
	if credentialsFile == "" {
		logger.Warn("no push credentials configured, push notifications are disabled")
		return push.NewDisabledGateway(logger)
	}

	gateway, err := push.NewFirebaseGateway(ctx, credentialsFile, logger)
	if err != nil {
		logger.Error("could not initialize push gateway, push notifications are disabled", "err", err.Error())
		return push.NewDisabledGateway(logger)
	}

	return gateway
}

func parseExternalConfigFile(cfgFile io.ReadCloser) (*appConfig, error) {
	defer cfgFile.Close()

	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := &appConfig{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Broker.TopicPrefix == "" {
		cfg.Broker.TopicPrefix = "gas"
	}
	if cfg.Broker.ClientID == "" {
		cfg.Broker.ClientID = serviceName
	}

	return cfg, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[credentialsFile] = envOrDef(ctx, "FCM_CREDENTIALS_FILE", flags[credentialsFile])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "bridge configuration file", apply(configurationFile))
	flag.Func("credentials", "push gateway credentials file", apply(credentialsFile))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
