package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/vlourenco/treinoapp/internal/envstruct"
	"github.com/vlourenco/treinoapp/internal/errors"
	"github.com/vlourenco/treinoapp/internal/logging"
	"github.com/vlourenco/treinoapp/internal/progress"
	"github.com/vlourenco/treinoapp/internal/sqlite"
	"github.com/vlourenco/treinoapp/internal/users"
	"github.com/vlourenco/treinoapp/internal/workout"
)

type application struct {
	logger          *slog.Logger
	sessionManager  *scs.SessionManager
	userService     *users.Service
	workoutService  *workout.Service
	progressService *progress.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"TREINO_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"TREINO_SQLITE_URL" envDefault:"./treinoapp.sqlite3"`
	// DefaultTimezone is the IANA timezone used for day bucketing when a request does not carry one.
	DefaultTimezone string `env:"TREINO_DEFAULT_TIMEZONE" envDefault:"America/Sao_Paulo"`
	// OpenAIAPIKey enables AI-generated exercise descriptions when set.
	OpenAIAPIKey string `env:"TREINO_OPENAI_API_KEY" envDefault:""`
	// SeedCatalogue controls whether the exercise catalogue is loaded on startup.
	SeedCatalogue bool `env:"TREINO_SEED_CATALOGUE" envDefault:"true"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	sessionManager := initializeSessionManager(db)

	userService := users.NewService(db, logger)
	workoutService := workout.NewService(db, logger, userService, cfg.OpenAIAPIKey)
	progressService, err := progress.NewService(
		workoutService, userService, userService, logger, cfg.DefaultTimezone)
	if err != nil {
		return errors.Wrap(err, "new progress service")
	}

	if cfg.SeedCatalogue {
		if err = workoutService.SeedCatalogue(ctx); err != nil {
			return errors.Wrap(err, "seed exercise catalogue")
		}
	}

	app := application{
		logger:          logger,
		sessionManager:  sessionManager,
		userService:     userService,
		workoutService:  workoutService,
		progressService: progressService,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                               //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
