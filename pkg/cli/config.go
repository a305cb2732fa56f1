package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	appconfig "github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/repository"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Repository
	dataDir  string
	project  string
	database string

	// Catalog config file and logging
	configPath string
	logLevel   string

	// Adapters
	geminiProject  string
	geminiLocation string
	geminiModel    string
	searchDataDir  string
	ghostURL       string
	ghostAdminKey  string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory for local JSON state",
			Value:       "./data",
			Sources:     cli.EnvVars("SKRIBENT_DATA_DIR"),
			Destination: &cfg.dataDir,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID (switches state to Firestore)",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to YAML catalog config",
			Sources:     cli.EnvVars("SKRIBENT_CONFIG"),
			Destination: &cfg.configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("SKRIBENT_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Generative model name override",
			Sources:     cli.EnvVars("GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
	}
}

// searchFlags returns flags for the search-performance export location
func searchFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "search-data",
			Usage:       "Directory holding search-performance CSV exports",
			Value:       "./data/search-console",
			Sources:     cli.EnvVars("SEARCH_DATA_DIR"),
			Destination: &cfg.searchDataDir,
		},
	}
}

// ghostFlags returns flags for the Ghost Admin API
func ghostFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ghost-url",
			Usage:       "Ghost Admin API base URL",
			Sources:     cli.EnvVars("GHOST_API_URL"),
			Destination: &cfg.ghostURL,
		},
		&cli.StringFlag{
			Name:        "ghost-admin-key",
			Usage:       "Ghost Admin API key (id:secret)",
			Sources:     cli.EnvVars("GHOST_ADMIN_API_KEY"),
			Destination: &cfg.ghostAdminKey,
		},
	}
}

// setup installs the logger on the context and loads the catalog config
func (cfg *config) setup(ctx context.Context) (context.Context, *appconfig.Config, error) {
	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	ctx = logging.With(ctx, logger)

	conf, err := appconfig.Load(cfg.configPath)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, conf, nil
}

// newRepository creates a new repository instance. A Google Cloud project
// selects Firestore; otherwise state lives in local JSON files.
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.project != "" {
		if cfg.database == "" {
			return nil, goerr.New("database is required")
		}
		repo, err := repository.NewFirestore(ctx, cfg.project, cfg.database)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create firestore repository")
		}
		return repo, nil
	}

	repo, err := repository.NewLocal(cfg.dataDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create local repository")
	}
	return repo, nil
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.geminiProject == "" {
		return nil, goerr.New("gemini-project is required")
	}
	if cfg.geminiLocation == "" {
		return nil, goerr.New("gemini-location is required")
	}

	var opts []adapter.GeminiOption
	if cfg.geminiModel != "" {
		opts = append(opts, adapter.WithModel(cfg.geminiModel))
	}
	return adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation, opts...)
}

// newGhost creates a new Ghost CMS adapter instance
func (cfg *config) newGhost() (adapter.CMS, error) {
	if cfg.ghostURL == "" {
		return nil, goerr.New("ghost-url is required")
	}
	if cfg.ghostAdminKey == "" {
		return nil, goerr.New("ghost-admin-key is required")
	}
	return adapter.NewGhost(cfg.ghostURL, cfg.ghostAdminKey)
}

// newTrendSource builds the RSS trend source from the configured feeds
func (cfg *config) newTrendSource(conf *appconfig.Config) adapter.TrendSource {
	feeds := make([]adapter.Feed, 0, len(conf.Feeds))
	for _, f := range conf.Feeds {
		feeds = append(feeds, adapter.Feed{Name: f.Name, URL: f.URL})
	}
	return adapter.NewTrendFeed(feeds)
}
