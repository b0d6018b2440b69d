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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/avalle/asset-runway/internal/config"
	"github.com/avalle/asset-runway/internal/llm"
	"github.com/avalle/asset-runway/internal/optimizer"
	"github.com/avalle/asset-runway/internal/server"
	"github.com/avalle/asset-runway/internal/simulation"
	"github.com/avalle/asset-runway/pkg/constants"
	"github.com/avalle/asset-runway/pkg/output"
	"github.com/avalle/asset-runway/pkg/validation"
)

// version is stamped at build time.
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

func main() {
	configLocation := flag.String("config", "", "path to configuration file")
	snapshotLocation := flag.String("snapshot", "", "path to a YAML snapshot file for a one-shot projection")
	serve := flag.Bool("serve", false, "run the HTTP server")
	optimize := flag.Bool("optimize", false, "also compute the maximum sustainable annual spending")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		runServer(logger, conf)
		return
	}

	if *snapshotLocation == "" {
		logger.Fatal("either -serve or -snapshot is required",
			zap.String("op", "main"),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	snapshot, err := loadSnapshot(*snapshotLocation)
	if err != nil {
		logger.Fatal("failed to load snapshot",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	snapshot.EnsureIDs()

	warnings := snapshotWarnings(snapshot)
	for _, warning := range warnings {
		logger.Warn("Snapshot warning: "+warning,
			zap.String("op", "main"),
		)
	}

	result := simulation.NewSimulator(logger).Run(*snapshot)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(result); err != nil {
			logger.Fatal("failed to encode result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	if *optimize {
		summary, err := optimizer.NewRunner(logger).MaxSustainableSpending(*snapshot)
		if err != nil {
			logger.Warn(err.Error(),
				zap.String("op", "main"),
			)
			return
		}
		fmt.Printf("\nMaximum sustainable annual spending: $%.2f (headroom $%.2f, %d iterations)\n",
			summary.MaxAnnualSpending, summary.Headroom, summary.Iterations)
	}
}

func runServer(logger *zap.Logger, conf *config.Configuration) {
	ctx := context.Background()

	generator, err := llm.NewClient(ctx, conf.LLM.APIKey, conf.LLM.Model, logger)
	if err != nil {
		logger.Fatal("failed to initialize generation client",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	handler := server.NewHandler(logger, generator, conf.Server.MaxUploadSize, version)
	srv := &http.Server{
		Addr:         conf.Server.Address,
		Handler:      handler,
		ReadTimeout:  time.Duration(conf.Server.RequestTimeout) * time.Second,
		WriteTimeout: time.Duration(conf.Server.RequestTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("listening",
		zap.String("op", "main"),
		zap.String("address", conf.Server.Address),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		logger.Fatal("server error",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func loadSnapshot(path string) (*simulation.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snapshot simulation.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return &snapshot, nil
}

func snapshotWarnings(snapshot *simulation.Snapshot) []string {
	assets := make([]validation.AssetInfo, len(snapshot.Assets))
	for i, a := range snapshot.Assets {
		assets[i] = validation.AssetInfo{Name: a.Name, Type: a.Type, Balance: a.Balance}
	}
	debts := make([]validation.DebtInfo, len(snapshot.Debts))
	for i, d := range snapshot.Debts {
		debts[i] = validation.DebtInfo{
			Name:           d.Name,
			CurrentBalance: d.CurrentBalance,
			InterestRate:   d.InterestRate,
			MonthlyPayment: d.MonthlyPayment,
		}
	}
	return validation.ValidateSnapshot(assets, debts, snapshot.AnnualExpenses, snapshot.AnnualPassiveIncome)
}
