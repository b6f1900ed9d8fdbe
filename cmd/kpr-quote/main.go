package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bprsb-tools/kpr-quote/internal/cache"
	"github.com/bprsb-tools/kpr-quote/internal/config"
	"github.com/bprsb-tools/kpr-quote/internal/engine"
	"github.com/bprsb-tools/kpr-quote/internal/server"
	"github.com/bprsb-tools/kpr-quote/pkg/constants"
	"github.com/bprsb-tools/kpr-quote/pkg/output"
	"github.com/bprsb-tools/kpr-quote/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// buildCache constructs the quote cache selected by configuration, falling
// back to the in-memory cache when Redis is unusable.
func buildCache(conf config.CacheConfig, logger *zap.Logger) cache.Cache {
	if conf.Backend == constants.CacheBackendRedis && conf.Address != "" {
		logger.Info("using redis quote cache",
			zap.String("op", "main"),
			zap.String("address", conf.Address),
		)
		return cache.NewRedis(conf.Address, conf.TTL)
	}
	return cache.NewMemory()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	price := flag.String("price", "", "property price in rupiah")
	loan := flag.String("loan", "", "requested loan amount in rupiah")
	term := flag.String("term", "", "loan term in years (1-15)")
	serve := flag.Bool("serve", false, "run the HTTP quote API instead of a one-shot quote")
	address := flag.String("address", "", "listen address override for -serve")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	eng := engine.New(logger)

	if *serve {
		runServer(logger, conf, eng, *address)
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outcome := eng.Evaluate(engine.Input{
		PropertyPrice: *price,
		LoanAmount:    *loan,
		TermYears:     *term,
	})

	switch outcome.State {
	case engine.StateEmpty:
		fmt.Println("usage: kpr-quote -price <rupiah> -loan <rupiah> -term <years>")
		os.Exit(2)
	case engine.StateInvalid:
		fmt.Println(outcome.Message)
		os.Exit(1)
	case engine.StateComputed:
		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettyFormat(outcome.Quote)
		case constants.OutputFormatCSV:
			output.CsvFormat(outcome.Quote)
		}
	}
}

// runServer starts the HTTP API and blocks until interrupted.
func runServer(logger *zap.Logger, conf *config.Configuration, eng *engine.Engine, addressOverride string) {
	listenAddress := conf.Server.Address
	if addressOverride != "" {
		listenAddress = addressOverride
	}

	quoteCache := buildCache(conf.Cache, logger)
	handler := server.NewHandler(logger, eng, quoteCache, version)

	srv := &http.Server{
		Addr:         listenAddress,
		Handler:      handler,
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("quote API listening",
			zap.String("op", "main"),
			zap.String("address", listenAddress),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case <-quit:
		logger.Info("shutting down",
			zap.String("op", "main"),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
