package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/skoskinen/biblio/internal/cache"
	"github.com/skoskinen/biblio/internal/catalog"
	"github.com/skoskinen/biblio/internal/config"
	"github.com/skoskinen/biblio/internal/shelf"
	"github.com/skoskinen/biblio/internal/storage"
)

// CLI represents the complete command structure for the biblio application
type CLI struct {
	// Global flags
	DBFile      string `help:"Path to the reading list SQLite database file" default:"./biblio.db"`
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 24h)" default:"24h"`

	Search   SearchCmd   `cmd:"" help:"Search the book catalog"`
	Suggest  SuggestCmd  `cmd:"" help:"Show autocomplete suggestions for a partial query"`
	Trending TrendingCmd `cmd:"" help:"Show a rotating selection of popular books"`
	Shelf    ShelfCmd    `cmd:"" help:"Manage the personal reading list"`
	Theme    ThemeCmd    `cmd:"" help:"Show or change the color theme"`
	Cache    CacheCmd    `cmd:"" help:"Cache maintenance"`
}

// CacheCmd groups cache maintenance subcommands.
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Clear cached catalog responses for a source"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("biblio"),
		kong.Description("A book discovery tool with a personal reading list."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("search.language", "en")
	viper.SetDefault("search.maxresults", 20)
	viper.SetDefault("storage.dbfile", "./biblio.db")

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "24h")

	// Cover defaults
	viper.SetDefault("covers.dir", "./covers")
	viper.SetDefault("covers.maxwidth", 400)

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetStoragePath(cli.DBFile)

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

// newCatalogClient builds a catalog client from the global configuration.
func newCatalogClient() *catalog.Client {
	return catalog.NewClient(
		catalog.WithAPIKey(config.GoogleBooksAPIKey),
		catalog.WithLanguage(config.SearchLanguage),
	)
}

// openShelf opens the local store and loads the reading list from it. The
// returned closer releases the underlying database.
func openShelf() (*shelf.Store, func(), error) {
	st, err := storage.Open(config.StoragePath)
	if err != nil {
		return nil, nil, err
	}

	books, err := shelf.NewStore(st)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return books, func() { _ = st.Close() }, nil
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
