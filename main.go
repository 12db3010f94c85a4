package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/fx"
	"ssb_courier/dal"
	"ssb_courier/logic"
	"ssb_courier/pub"
	"ssb_courier/server"
	"ssb_courier/shared"
	"ssb_courier/texts"
)

const shutdownGraceSeconds = 30

type initErrorHandler struct {
}

func (*initErrorHandler) HandleError(err error) {
	fmt.Fprintf(os.Stderr, "Failed to initialize dependency injection\n%v", err)
}

var logger *log.Logger

func main() {

	cfg := shared.LoadConfig()
	provideConfig := func() *shared.Config {
		return cfg
	}

	logger = initLogger(cfg)
	provideLogger := func() shared.ILogger {
		return logger
	}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			provideConfig,
			provideLogger,
			server.NewHTTPServer,
			fx.Annotate(server.NewMux, fx.ParamTags(`group:"handler_group"`)),
			shared.NewUserAgent,
			logic.NewMetrics,
			logic.NewComposer,
			logic.NewBlobUploader,
			logic.NewFeedRegistry,
			logic.NewFeedWatcher,
			logic.NewPoster,
			pub.NewBridgeConnector,
			pub.NewConnManager,
			texts.NewTexts,
			dal.NewRepo,
			asHandlerGroupDef(server.NewApiHandlerGroup),
			asHandlerGroupDef(server.NewMetricsHandlerGroup),
		),
		fx.Invoke(
			registerHooks,
			registerRepoHooks,
			registerPosterHooks,
			registerWatcherHooks,
			func(*http.Server) {},
		),
		fx.ErrorHook(&initErrorHandler{}),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		logger.Errorf("Failed to start: %v", err)
		os.Exit(1)
	}

	<-app.Done()

	// A second signal during the grace period force-quits.
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		<-sigs
		logger.Warn("Forced shutdown")
		os.Exit(1)
	}()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), shutdownGraceSeconds*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		logger.Errorf("Failed to shut down cleanly: %v", err)
		os.Exit(1)
	}
}

func asHandlerGroupDef(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(server.IHandlerGroup)),
		fx.ResultTags(`group:"handler_group"`),
	)
}

func initLogger(cfg *shared.Config) *log.Logger {

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		msg := fmt.Sprintf("Failed to open log file '%v': %v", cfg.LogFile, err)
		log.Fatal(msg)
	}

	logger := log.New(io.MultiWriter(os.Stdout, logFile))
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat("2006-01-02 15:04:05.000")
	switch cfg.LogLevel {
	case "Debug":
		logger.SetLevel(log.DebugLevel)
	case "Info":
		logger.SetLevel(log.InfoLevel)
	case "Warn":
		logger.SetLevel(log.WarnLevel)
	case "Error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.ErrorLevel)
	}
	logger.SetReportCaller(true)

	return logger
}

func registerHooks(lc fx.Lifecycle, metrics logic.IMetrics) {
	lc.Append(
		fx.Hook{
			OnStart: func(context.Context) error {
				logger.Printf("Application starting up")
				metrics.ServiceStarted()
				return nil
			},
			OnStop: func(context.Context) error {
				logger.Printf("Application shutting down")
				return nil
			},
		},
	)
}

func registerRepoHooks(lc fx.Lifecycle, repo dal.IRepo) {
	lc.Append(
		fx.Hook{
			OnStart: func(context.Context) error {
				repo.InitUpdateDb()
				return nil
			},
			OnStop: func(context.Context) error {
				return repo.Close()
			},
		},
	)
}

func registerPosterHooks(lc fx.Lifecycle, poster logic.IPoster) {
	lc.Append(
		fx.Hook{
			OnStart: func(context.Context) error {
				poster.Run()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				poster.Shutdown(ctx)
				return nil
			},
		},
	)
}

func registerWatcherHooks(lc fx.Lifecycle, watcher logic.IFeedWatcher) {
	lc.Append(
		fx.Hook{
			OnStart: func(context.Context) error {
				watcher.Start()
				return nil
			},
			OnStop: func(context.Context) error {
				watcher.Stop()
				return nil
			},
		},
	)
}
