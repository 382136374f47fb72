package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/garasiku/garasiku-server/internal/config"
	"github.com/garasiku/garasiku-server/internal/files"
	"github.com/garasiku/garasiku-server/internal/handlers"
	"github.com/garasiku/garasiku-server/internal/server"
	"github.com/garasiku/garasiku-server/internal/services"
	"github.com/garasiku/garasiku-server/internal/store"
	"github.com/garasiku/garasiku-server/pkg/async"
	"github.com/garasiku/garasiku-server/pkg/google"
)

const databaseFile = "garasiku.duckdb"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "garasiku-server",
		Short:         "Car dealership storefront and dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to configuration file")
	bindFlags(root.Flags())

	return root
}

func bindFlags(fs *pflag.FlagSet) {
	fs.Int("port", 0, "HTTP listen port")
	fs.String("mode", "", "server mode: dev or prod")
	fs.String("data-folder", "", "directory for the database and car images")
	fs.String("statics-folder", "", "directory with the UI bundle (prod mode)")
	fs.String("log-level", "", "log verbosity: debug, info, warn, error")

	must(viper.BindPFlag("server.httpPort", fs.Lookup("port")))
	must(viper.BindPFlag("server.serverMode", fs.Lookup("mode")))
	must(viper.BindPFlag("database.dataFolder", fs.Lookup("data-folder")))
	must(viper.BindPFlag("server.staticsFolder", fs.Lookup("statics-folder")))
	must(viper.BindPFlag("logLevel", fs.Lookup("log-level")))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// loadConfiguration merges, in order of precedence: flags, GARASIKU_*
// environment variables, the config file, then the struct defaults.
func loadConfiguration(configFile string) (*config.Configuration, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("garasiku")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/garasiku")
	}
	viper.SetEnvPrefix("GARASIKU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
	}

	cfg := config.NewConfigurationWithOptionsAndDefaults()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwtSecret must be set")
	}
	return cfg, nil
}

func setupLogging(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.LogLevel, err)
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func banner(cfg *config.Configuration) {
	color.New(color.FgCyan, color.Bold).Println("garasiku-server")
	color.New(color.FgHiBlack).Printf("mode=%s port=%d data=%s\n",
		cfg.Server.ServerMode, cfg.Server.HTTPPort, cfg.Database.DataFolder)
}

func run(ctx context.Context, cfg *config.Configuration) error {
	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := zap.S().Named("main")

	banner(cfg)
	log.Infow("configuration loaded", "config", cfg.DebugMap())

	if err := os.MkdirAll(cfg.Database.DataFolder, 0o755); err != nil {
		return fmt.Errorf("creating data folder: %w", err)
	}

	db, err := store.NewDB(filepath.Join(cfg.Database.DataFolder, databaseFile))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	st := store.NewStore(db)
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	images, err := files.NewStore(cfg.Database.DataFolder)
	if err != nil {
		return fmt.Errorf("preparing image storage: %w", err)
	}

	hub := services.NewHub()
	defer hub.Close()

	resolver := services.NewReferenceResolver(st)
	carSrv := services.NewCarService(st, resolver, images, hub)
	saleSrv := services.NewSaleService(st, hub)

	googleClient := google.NewClient(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret)
	authSrv := services.NewAuthService(st, googleClient, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	defer authSrv.Close()

	pool := async.NewPool(cfg.NumWorkers)
	defer pool.Close()
	authSrv.StartSweeper(pool)

	handler := handlers.New(carSrv, saleSrv, authSrv, hub, images)
	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		handler.Register(router)
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-shutdownCtx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(drainCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("stopped")
	return nil
}
