package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/pagefit/internal/api"
	"github.com/matzehuels/pagefit/pkg/archive"
	"github.com/matzehuels/pagefit/pkg/cache"
	"github.com/matzehuels/pagefit/pkg/observability"
	"github.com/matzehuels/pagefit/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	redisKeyPrefix  = "pagefit:"
	shutdownTimeout = 10 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	mongoDB  string
	logFile  string
	noCache  bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     envOr("PAGEFIT_ADDR", defaultAddr),
		redisURL: os.Getenv("PAGEFIT_REDIS_URL"),
		mongoURI: os.Getenv("PAGEFIT_MONGO_URI"),
		mongoDB:  envOr("PAGEFIT_MONGO_DB", archive.DefaultDatabase),
		logFile:  os.Getenv("PAGEFIT_LOG_FILE"),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP API",
		Long: `Run the conversion HTTP API.

Conversions are cached in Redis when --redis is set and in the local file
cache otherwise. Reports are archived in MongoDB when --mongo is set and in
memory otherwise.

Environment:
  PAGEFIT_ADDR       listen address
  PAGEFIT_REDIS_URL  Redis URL
  PAGEFIT_MONGO_URI  MongoDB URI
  PAGEFIT_MONGO_DB   MongoDB database
  PAGEFIT_LOG_FILE   rotating JSON request log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", opts.redisURL, "Redis URL for the conversion cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for the report archive")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().StringVar(&opts.logFile, "log-file", opts.logFile, "write request logs as JSON to a rotating file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cc, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if opts.redisURL != "" && !opts.noCache {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
	}
	runner := pipeline.NewRunner(cc, keyer, logger)
	defer runner.Close()

	var store archive.Store
	if opts.mongoURI != "" {
		store, err = archive.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return err
		}
		logger.Info("report archive", "backend", "mongo", "db", opts.mongoDB)
	} else {
		store = archive.NewMemoryStore()
		logger.Info("report archive", "backend", "memory")
	}
	defer store.Close()

	counters := observability.NewCounters()
	observability.Register(counters)
	defer observability.Reset()

	reqLogger, closer := requestLogger(logger, opts.logFile)
	if closer != nil {
		defer closer.Close()
		logger.Info("request log", "file", opts.logFile)
	}

	srv := &http.Server{
		Addr:         opts.addr,
		Handler:      api.NewServer(runner, store, counters, reqLogger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting pagefit", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	logger := loggerFromContext(ctx)
	switch {
	case opts.noCache:
		logger.Info("cache", "backend", "none")
		return cache.NewNullCache(), nil
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, err
		}
		logger.Info("cache", "backend", "redis")
		return rc, nil
	default:
		fc, err := newCache(false)
		if err != nil {
			return nil, err
		}
		logger.Info("cache", "backend", "file")
		return fc, nil
	}
}

// Request log rotation limits.
const (
	logMaxSizeMB  = 50
	logMaxBackups = 5
	logMaxAgeDays = 28
)

// requestLogger returns the logger for HTTP requests. With a path it logs
// JSON lines to a rotating file at the level of base; the returned closer
// releases the file.
func requestLogger(base *log.Logger, path string) (*log.Logger, io.Closer) {
	if path == "" {
		return base, nil
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Formatter:       log.JSONFormatter,
		Level:           base.GetLevel(),
	}), w
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

