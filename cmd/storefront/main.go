// cmd/storefront/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/interfaces/tui"
	"github.com/your-org/storefront/internal/pkg/logging"
	"github.com/your-org/storefront/internal/state"
)

var (
	apiURL       string
	stateFile    string
	storeBackend string
	redisAddr    string
	pageSize     int
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Terminal storefront for the commerce API",
	Long: `storefront browses a remote commerce catalog from the terminal.

The cart and the signed-in session persist locally between runs, so you
can close the app mid-shop and pick up where you left off. Configuration
comes from environment variables (and an optional .env file); the flags
below override it per invocation.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		applyFlags(cmd, cfg)

		store, err := newStore(cfg)
		if err != nil {
			return fmt.Errorf("open state store: %w", err)
		}

		// The terminal owns stdout while the UI runs; keep the logger
		// quiet unless a log file is configured.
		log := logging.NewQuiet()
		if cfg.Logging.File != "" {
			log = logging.New(cfg)
		}

		client := api.NewClient(cfg, log)
		container := state.NewContainer(store, log)

		return tui.Run(client, container, cfg.Catalog.PageSize)
	},
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = apiURL
	}
	if cmd.Flags().Changed("state-file") {
		cfg.Store.FilePath = stateFile
	}
	if cmd.Flags().Changed("store") {
		cfg.Store.Backend = storeBackend
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.Store.RedisAddr = redisAddr
	}
	if cmd.Flags().Changed("page-size") && pageSize > 0 {
		cfg.Catalog.PageSize = pageSize
	}
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		return storage.NewRedisStore(storage.RedisOptions{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
			Prefix:   cfg.Store.RedisPrefix,
		})
	case config.StoreBackendFile:
		return storage.NewFileStore(cfg.Store.FilePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func main() {
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "base URL of the commerce API")
	rootCmd.Flags().StringVar(&stateFile, "state-file", "", "path of the local state file")
	rootCmd.Flags().StringVar(&storeBackend, "store", "", "state backend: file or redis")
	rootCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for the redis backend")
	rootCmd.Flags().IntVar(&pageSize, "page-size", 0, "products per catalog page")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
