package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	sitebuilder "github.com/goliatone/go-sitebuilder"
	"github.com/goliatone/go-sitebuilder/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("sitebuilder server: %v", err)
	}
}

type options struct {
	configPath string
	envFile    string
	addr       string
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("sitebuilder-server", flag.ContinueOnError)
	opts := options{}
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML config file (environment only when empty)")
	fs.StringVar(&opts.envFile, "env-file", ".env", "Optional dotenv file loaded before the environment is read")
	fs.StringVar(&opts.addr, "addr", "", "Listen address, overrides SITEBUILDER_ADDR")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func loadConfig(opts options) (sitebuilder.Config, error) {
	cfg, err := sitebuilder.LoadConfig(opts.configPath, opts.envFile)
	if err != nil {
		return sitebuilder.Config{}, err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	return cfg, nil
}

func newServer(cfg sitebuilder.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	module, err := sitebuilder.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	handler, err := module.Handler()
	if err != nil {
		return fmt.Errorf("register routes: %w", err)
	}
	srv := newServer(cfg, handler)
	logger := logging.HTTPLogger(module.Container().LoggerProvider())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server.listening", "addr", cfg.Server.Addr, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("server.shutdown")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
