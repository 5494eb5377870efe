package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/mode"
	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/pipeline"
	"github.com/khaledhikmat/fire-go/service/config"
	"github.com/khaledhikmat/fire-go/service/data"
	"github.com/khaledhikmat/fire-go/service/inference"
	"github.com/khaledhikmat/fire-go/service/lgr"
	"github.com/khaledhikmat/fire-go/service/metrics"
	"github.com/khaledhikmat/fire-go/service/tracing"
)

var modeProcessors = map[string]mode.Processor{
	"classify": mode.Classify,
	"probe":    mode.Probe,
}

// Usage: fire-go [classify|probe] [file|live]
func main() {
	os.Exit(run())
}

func run() int {
	rootCtx := context.Background()
	canxCtx, canxFn := context.WithCancel(rootCtx)
	defer canxFn()

	// Hook up a signal handler to cancel the context
	// Cancellation is the quit signal of the sampling loop
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		lgr.Logger.Info(
			"received kill signal",
			slog.Any("signal", sig),
		)
		canxFn()
	}()

	// Load env vars if we are in DEV mode
	if os.Getenv("RUN_TIME_ENV") == "dev" || os.Getenv("RUN_TIME_ENV") == "" {
		if err := godotenv.Load(); err != nil {
			lgr.Logger.Warn("no .env file loaded", slog.Any("error", xerrors.New(err.Error())))
		}
	}

	cfgSvc, err := loadConfig()
	if err != nil {
		lgr.Logger.Error("error loading configuration", slog.Any("error", err))
		return 1
	}

	lgr.Setup(cfgSvc.GetLogLevel(), cfgSvc.GetLogFile())
	defer lgr.Close()

	modeType := "classify"
	args := os.Args[1:]
	if len(args) > 0 {
		modeType = args[0]
	}

	modeProc, ok := modeProcessors[modeType]
	if !ok {
		lgr.Logger.Error("invalid mode", slog.String("mode", modeType))
		return 2
	}

	source := model.NewFileSource(cfgSvc.GetSourcePath(), cfgSvc.GetSourceRateHint())
	if len(args) > 1 && args[1] == "live" {
		source = model.NewLiveSource(cfgSvc.GetLiveDeviceID())
	}

	// Create the services needed for the mode processor
	dataSvc, err := data.New(cfgSvc)
	if err != nil {
		lgr.Logger.Error("error creating data service", slog.Any("error", err))
		return 1
	}
	defer dataSvc.Close()

	svcs := pipeline.ServicesFactory{
		CfgSvc:  cfgSvc,
		DataSvc: dataSvc,
	}

	tp, err := tracing.InitTracer(canxCtx, cfgSvc.GetTracingEndpoint())
	if err != nil {
		lgr.Logger.Error("error initializing tracing", slog.Any("error", err))
		return 1
	}
	if tp != nil {
		defer func() {
			// canxCtx may already be cancelled at this point
			shutdownCtx, shutdownFn := context.WithTimeout(rootCtx, 5*time.Second)
			defer shutdownFn()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				lgr.Logger.Error("error shutting down tracing", slog.Any("error", err))
			}
		}()
	}

	if modeType == "classify" {
		inferenceSvc, err := inference.New(cfgSvc)
		if err != nil {
			lgr.Logger.Error("error loading classifier", slog.Any("error", err))
			return 1
		}
		defer inferenceSvc.Close()
		svcs.InferenceSvc = inferenceSvc
	}

	go func() {
		if err := metrics.Serve(canxCtx, cfgSvc.GetMetricsPort()); err != nil {
			lgr.Logger.Error("metrics server exited", slog.Any("error", err))
		}
	}()

	// Start the mode processor
	modeProcResult := make(chan error, 1)
	go func() {
		modeProcResult <- modeProc(canxCtx, svcs, source)
	}()

	select {
	case err := <-modeProcResult:
		if err != nil {
			lgr.Logger.Error(
				"mode processor exited",
				slog.String("mode", modeType),
				slog.Any("error", err),
			)
			return 1
		}
		return 0

	case <-canxCtx.Done():
		lgr.Logger.Info(
			"context cancelled, waiting for the mode processor",
		)
	}

	// The sampler observes the cancellation at the end of its current pass
	timer := time.NewTimer(time.Duration(cfgSvc.GetModeMaxShutdownTime()) * time.Second)
	defer timer.Stop()

	select {
	case <-timer.C:
		lgr.Logger.Info(
			"shutdown waiting period expired. Exiting now",
			slog.Duration("period", time.Duration(cfgSvc.GetModeMaxShutdownTime())*time.Second),
		)
		return 1

	case err := <-modeProcResult:
		if err != nil {
			lgr.Logger.Error(
				"mode processor exited",
				slog.String("mode", modeType),
				slog.Any("error", err),
			)
			return 1
		}
		return 0
	}
}

func loadConfig() (config.IService, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return config.NewFile(path)
	}
	return config.NewEnv()
}
