package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/realestate-crm/internal/bootstrap"
	"github.com/example/realestate-crm/internal/config"
	"github.com/example/realestate-crm/internal/format"
	"github.com/example/realestate-crm/internal/logging"
	"github.com/example/realestate-crm/internal/persistence/seed"
	"github.com/example/realestate-crm/internal/persistence/sqlite"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs once configuration is parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand(out io.Writer) *cobra.Command {
	rt := &app{}
	var envFile string

	root := &cobra.Command{
		Use:           "crm",
		Short:         "Real estate CRM query API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFiles(envFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			rt.cfg = cfg
			rt.logger = logging.New(out, cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file loaded before reading the environment")

	root.AddCommand(newServeCommand(rt), newImportCommand(rt))
	return root
}

func newServeCommand(rt *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = fmt.Sprintf(":%d", rt.cfg.HTTPPort)
			}
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				rt.logger.Error("failed to listen", "addr", addr, "error", err)
				return err
			}
			return serve(cmd.Context(), rt.cfg, rt.logger, listener)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, defaults to :CRM_HTTP_PORT")
	return cmd
}

func newImportCommand(rt *app) *cobra.Command {
	var file, dsn string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the SQLite snapshot with a seed file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = rt.cfg.SeedFile
			}
			if dsn == "" {
				dsn = rt.cfg.SQLiteDSN
			}
			if dsn == "" {
				err := errors.New("CRM_SQLITE_DSN eller --dsn måste anges")
				rt.logger.Error("import needs a database", "error", err)
				return err
			}
			return importSeed(cmd.Context(), dsn, file, rt.logger)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "seed YAML file, defaults to CRM_SEED_FILE or the embedded data set")
	cmd.Flags().StringVar(&dsn, "dsn", "", "SQLite database, defaults to CRM_SQLITE_DSN")
	return cmd
}

// serve loads the snapshot, builds the services and serves HTTP on listener
// until ctx is cancelled.
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger, listener net.Listener) error {
	var store bootstrap.Store
	if cfg.SQLiteDSN != "" {
		sqliteStore, err := openStore(ctx, cfg.SQLiteDSN, logger)
		if err != nil {
			_ = listener.Close()
			return err
		}
		defer func() {
			if cerr := sqliteStore.Close(); cerr != nil {
				logger.Error("failed to close storage", "error", cerr)
			}
		}()
		store = sqliteStore
	}

	snapshot, err := bootstrap.LoadSnapshot(ctx, store, seed.Source{Path: cfg.SeedFile}, logger)
	if err != nil {
		logger.Error("failed to load snapshot", "error", err)
		_ = listener.Close()
		return err
	}

	services, err := bootstrap.NewServices(bootstrap.CatalogFromSnapshot(snapshot), bootstrap.ServiceOptions{
		Location:           cfg.Location,
		SessionTTL:         cfg.SessionTTL,
		PropertyFetchDelay: cfg.PropertyFetchDelay,
		GlobalSearchLimit:  cfg.GlobalSearchLimit,
		MetricsMode:        cfg.MetricsMode,
		Logger:             logger,
	})
	if err != nil {
		logger.Error("failed to build services", "error", err)
		_ = listener.Close()
		return err
	}

	server := &http.Server{
		Handler:           services.Handler(format.New(cfg.Location), logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("crm API listening", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
			return err
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("server encountered error", "error", err)
		return err
	}
	logger.Info("crm API stopped")
	return nil
}

func importSeed(ctx context.Context, dsn, file string, logger *slog.Logger) error {
	store, err := openStore(ctx, dsn, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	snapshot, err := seed.Source{Path: file}.LoadSnapshot(ctx)
	if err != nil {
		logger.Error("failed to read seed", "file", file, "error", err)
		return err
	}
	bootstrap.ReportDangling(ctx, snapshot, logger)

	if err := store.ImportSnapshot(ctx, snapshot); err != nil {
		logger.Error("failed to import snapshot", "error", err)
		return err
	}
	return nil
}

func openStore(ctx context.Context, dsn string, logger *slog.Logger) (*sqlite.Store, error) {
	cfg := sqlite.DefaultConfig(dsn)
	if dsn == ":memory:" {
		cfg = sqlite.InMemoryConfig()
	}

	store, err := sqlite.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		logger.Error("failed to apply migrations", "error", err)
		return nil, err
	}
	return store, nil
}
