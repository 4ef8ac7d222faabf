// Package app wires configuration, storage, clients, and services into a
// running Teaser AI application.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ateger/teaserai/internal/clients/gemini"
	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/interfaces"
	"github.com/ateger/teaserai/internal/server"
	"github.com/ateger/teaserai/internal/services/pipeline"
	"github.com/ateger/teaserai/internal/services/reportgen"
	"github.com/ateger/teaserai/internal/services/screening"
	"github.com/ateger/teaserai/internal/storage"
)

// App holds all initialized services, clients, and the HTTP server.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	GeminiClient     interfaces.GeminiClient
	ReportGenerator  interfaces.ReportGenerator
	ScreeningService interfaces.ScreeningService
	Pipeline         interfaces.PipelineService
	Server           *server.Server
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, services, and the HTTP server.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	// Get binary directory for self-contained operation
	binDir := getBinaryDir()

	// Load configuration - check provided path, TEASERAI_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("TEASERAI_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "teaserai.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/teaserai.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage and report paths to the binary directory
	resolvePath(&config.Storage.Teasers.Path, binDir)
	resolvePath(&config.Storage.Documents.Path, binDir)
	resolvePath(&config.Reports.Dir, binDir)
	resolvePath(&config.Logging.FilePath, binDir)

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Gemini client is optional: without an API key the pipeline still
	// extracts text and entities but skips analysis.
	var geminiClient interfaces.GeminiClient
	if config.Clients.Gemini.APIKey != "" {
		geminiClient, err = gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
			gemini.WithLogger(logger),
		)
		if err != nil {
			storageManager.Close()
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - analysis will be skipped")
	}

	generator := reportgen.NewGenerator(config.Reports.Dir, logger,
		reportgen.WithCoverageChart(config.Reports.CoverageChart),
	)
	screeningService := screening.NewService(generator, logger)
	pipelineService := pipeline.NewService(storageManager, geminiClient, screeningService, logger)

	srv, err := server.NewServer(config, logger, storageManager, pipelineService)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	app := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		GeminiClient:     geminiClient,
		ReportGenerator:  generator,
		ScreeningService: screeningService,
		Pipeline:         pipelineService,
		Server:           srv,
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")

	return app, nil
}

// resolvePath makes a relative path absolute against the binary directory.
func resolvePath(path *string, binDir string) {
	if *path != "" && !filepath.IsAbs(*path) {
		*path = filepath.Join(binDir, *path)
	}
}

// Close releases all resources held by the application.
func (a *App) Close() {
	if a.GeminiClient != nil {
		if err := a.GeminiClient.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close Gemini client")
		}
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}
}
