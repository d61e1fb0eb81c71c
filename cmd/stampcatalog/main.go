package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/stampcatalog/internal/catalog"
	"github.com/HerbHall/stampcatalog/internal/config"
	"github.com/HerbHall/stampcatalog/internal/metrics"
	"github.com/HerbHall/stampcatalog/internal/server"
	"github.com/HerbHall/stampcatalog/internal/session"
	"github.com/HerbHall/stampcatalog/internal/source"
	"github.com/HerbHall/stampcatalog/internal/store"
	"github.com/HerbHall/stampcatalog/internal/version"
	pkgcatalog "github.com/HerbHall/stampcatalog/pkg/catalog"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "import":
			runImport(os.Args[2:])
			return
		case "version":
			fmt.Println(version.Info())
			return
		}
	}
	runServe(os.Args[1:])
}

func runServe(args []string) {
	fs := flag.NewFlagSet("stampcatalog", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(settings.Log.Development)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("StampCatalog server starting", zap.String("version", version.Short()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, closeSource, err := openSource(ctx, settings)
	if err != nil {
		logger.Fatal("failed to open catalog source", zap.Error(err))
	}
	defer closeSource()

	m := metrics.New()

	// The catalog is loaded before serving; an unusable source is fatal.
	cat := pkgcatalog.NewCatalog(src, logger.Named("catalog"))
	if _, err := cat.Records(ctx); err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	m.SetCatalog(cat.Len(), cat.Warnings())

	matcher, err := catalog.NewMatcher(settings.Search.Mode, settings.Search.Threshold)
	if err != nil {
		logger.Fatal("invalid search configuration", zap.Error(err))
	}
	engine, err := catalog.NewEngine(cat, matcher)
	if err != nil {
		logger.Fatal("failed to create catalog engine", zap.Error(err))
	}

	sessions, closeSessions, err := openSessions(ctx, settings, logger)
	if err != nil {
		logger.Fatal("failed to open session store", zap.Error(err))
	}
	defer closeSessions()

	handler := catalog.NewHandler(catalog.HandlerConfig{
		Engine:    engine,
		Presenter: catalog.NewPresenter(engine.Schema(), settings.Images.BaseOrigin),
		Sessions:  sessions,
		Increment: settings.Pagination.Increment,
		TTL:       settings.Session.TTL,
		Metrics:   m,
		Logger:    logger.Named("api"),
	})

	addr := settings.Addr()
	srv := server.New(addr, logger.Named("http"), m, handler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("StampCatalog server ready",
		zap.String("addr", addr),
		zap.Int("records", cat.Len()),
	)

	// SIGHUP re-reads the catalog source; SIGINT and SIGTERM shut down.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigCh {
		if sig == syscall.SIGHUP {
			if err := cat.Reload(ctx); err != nil {
				logger.Error("catalog reload failed", zap.Error(err))
				continue
			}
			m.SetCatalog(cat.Len(), cat.Warnings())
			continue
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		break
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("StampCatalog server stopped")
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openSource builds the configured catalog source and the function that
// releases it.
func openSource(ctx context.Context, s *config.Settings) (pkgcatalog.Source, func(), error) {
	switch s.Catalog.Source {
	case config.SourceCSV:
		return source.NewCSVSource(s.Catalog.Path), func() {}, nil

	case config.SourceSQLite:
		st, err := store.New(s.Catalog.Path)
		if err != nil {
			return nil, nil, err
		}
		src, err := source.NewSQLiteSource(st, s.Catalog.Table)
		if err != nil {
			st.Close()
			return nil, nil, err
		}
		return src, func() { st.Close() }, nil

	case config.SourcePostgres:
		db, err := source.OpenPostgres(ctx, s.Catalog.DSN)
		if err != nil {
			return nil, nil, err
		}
		src, err := source.NewPostgresSource(db, s.Catalog.Table)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return src, func() { db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog source %q", s.Catalog.Source)
}

// openSessions builds the configured per-viewer state store.
func openSessions(ctx context.Context, s *config.Settings, logger *zap.Logger) (session.Store[catalog.State], func(), error) {
	switch s.Session.Backend {
	case config.SessionRedis:
		client, err := session.ConnectRedis(ctx, s.Session.Redis.Addr, s.Session.Redis.Password, s.Session.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis session store", zap.String("addr", s.Session.Redis.Addr))
		return session.NewRedisStore[catalog.State](client, s.Session.TTL), func() { client.Close() }, nil

	case config.SessionMemory:
		st := session.NewMemoryStore[catalog.State](s.Session.TTL, nil)
		go st.RunSweeper(ctx, time.Hour)
		return st, func() {}, nil
	}
	return nil, nil, errors.New("unknown session backend " + s.Session.Backend)
}
