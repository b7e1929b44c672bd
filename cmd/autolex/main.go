package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/autolex/pkg/api"
	"github.com/hazyhaar/autolex/pkg/cache"
	"github.com/hazyhaar/autolex/pkg/catalog"
	"github.com/hazyhaar/autolex/pkg/lexicon"
)

const version = "0.3.0"

type config struct {
	Addr           string        `yaml:"addr"`
	Catalog        string        `yaml:"catalog"`
	ReloadInterval time.Duration `yaml:"reload_interval"`
	LogLevel       string        `yaml:"log_level"`
	Cache          cacheConfig   `yaml:"cache"`
}

type cacheConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

func defaultConfig() config {
	return config{
		Addr:           ":8421",
		Catalog:        "catalog/vehicles.yaml",
		ReloadInterval: 30 * time.Second,
		LogLevel:       "info",
		Cache:          cacheConfig{Size: cache.DefaultSize, TTL: cache.DefaultTTL},
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	case "expand":
		cmdExpand(os.Args[2:])
	case "suggest":
		cmdSuggest(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: autolex <command>

Commands:
  serve     Start the HTTP server
  mcp       Serve the MCP tools over stdio
  import    Convert a catalog between yaml, gob and sqlite
  expand    Print the aliases a query expands to
  suggest   Print autocomplete suggestions for a prefix
  rank      Rank captions read from stdin against a query
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := setup(*cfgPath, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg, qc, reload := startEngine(ctx, cfg, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(reg, qc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// SIGHUP: hot reload the catalog.
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading catalog")
			if err := reload(ctx); err != nil {
				logger.Error("reload failed", "error", err)
			}
		}
	}()

	go func() {
		logger.Info("autolex listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	// stdout carries the protocol.
	cfg, logger := setup(*cfgPath, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg, qc, _ := startEngine(ctx, cfg, logger)

	srv := server.NewMCPServer("autolex", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, reg, qc, logger)

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

// startEngine loads the catalog, creates the query cache and starts the
// catalog watcher. The returned reload function also drops cached results.
func startEngine(ctx context.Context, cfg config, logger *slog.Logger) (*lexicon.Registry, *cache.QueryCache, func(context.Context) error) {
	loader, err := catalog.Loader(cfg.Catalog)
	if err != nil {
		logger.Error("invalid catalog", "catalog", cfg.Catalog, "error", err)
		os.Exit(1)
	}
	reg := lexicon.NewRegistry(loader, logger)
	if err := reg.Load(ctx); err != nil {
		logger.Error("failed to load catalog", "catalog", cfg.Catalog, "error", err)
		os.Exit(1)
	}

	qc := cache.NewQueryCache(cfg.Cache.Size, cfg.Cache.TTL)
	reload := func(ctx context.Context) error {
		if err := reg.Reload(ctx); err != nil {
			return err
		}
		qc.Purge()
		return nil
	}

	if cfg.ReloadInterval > 0 {
		w, err := catalog.NewWatcher(cfg.Catalog, reload, logger, cfg.ReloadInterval)
		if err != nil {
			logger.Error("catalog watcher", "error", err)
			os.Exit(1)
		}
		go w.Start(ctx)
	}
	return reg, qc, reload
}

// setup loads the config and builds the logger it asks for.
func setup(path string, out *os.File) (config, *slog.Logger) {
	cfg, found, err := readConfig(path)
	level, levelErr := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	if err != nil {
		logger.Error("config", "path", path, "error", err)
		os.Exit(1)
	}
	if levelErr != nil {
		logger.Warn("config", "error", levelErr)
	}
	if !found {
		logger.Info("no config file, using defaults", "path", path)
	}
	return cfg, logger
}

// readConfig applies the file at path over the defaults. A missing file is
// not an error.
func readConfig(path string) (config, bool, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, true, fmt.Errorf("parse config: %w", err)
	}
	return cfg, true, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q, using info", s)
	}
}
