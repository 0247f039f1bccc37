// Package main provides the radiola entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/infra/config"
	"github.com/osa030/radiola/internal/infra/logger"
)

var (
	app           = kingpin.New("radiola", "radiola music catalog player")
	configPath    = app.Flag("config", "Path to config file").Envar("RADIOLA_CONFIG").String()
	catalogSource = app.Flag("catalog", "Catalog document path or URL (overrides config)").Short('c').String()
	verbose       = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile       = app.Flag("logfile", "Path to log file").String()

	// play command (default)
	playCmd  = app.Command("play", "Play in the terminal (default)").Default()
	playLink = playCmd.Flag("link", "Deep link to open once the catalog is loaded").String()

	// serve command
	serveCmd  = app.Command("serve", "Play on this host and serve the HTTP control API")
	serveAddr = serveCmd.Flag("addr", "Listen address (overrides config)").String()
	serveLink = serveCmd.Flag("link", "Deep link to open once the catalog is loaded").String()

	// list command
	listCmd    = app.Command("list", "List the catalog")
	listSearch = listCmd.Arg("search", "Search: genre:, tag:, playlist: and title words").String()

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available filters and exit")

	// share command
	shareCmd    = app.Command("share", "Print the share link for a track or view")
	shareIndex  = shareCmd.Flag("index", "Catalog index of the track (-1 for the view)").Default("-1").Int()
	shareSearch = shareCmd.Flag("search", "View search carried by the link").String()
	shareQR     = shareCmd.Flag("qr", "Print a QR code").Bool()
	shareSend   = shareCmd.Flag("send", "Hand the link to the share command or clipboard").Bool()

	// download command
	downloadCmd   = app.Command("download", "Save a track file locally")
	downloadIndex = downloadCmd.Arg("index", "Catalog index of the track").Required().Int()
	downloadDir   = downloadCmd.Flag("dir", "Target directory (overrides config)").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Handle list-filters command
	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	// Load config
	cfg, err := config.Load(*configPath,
		config.WithCatalogSource(*catalogSource),
		config.WithServerAddr(*serveAddr),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(loggerConfig(cfg, command)); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	if *configPath != "" {
		zlog.Info().Msgf("Loaded config from %s", *configPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case playCmd.FullCommand():
		err = runPlay(ctx, cfg, *playLink)
	case serveCmd.FullCommand():
		err = runServe(ctx, cfg, *serveLink)
	case listCmd.FullCommand():
		err = runList(ctx, cfg, *listSearch)
	case shareCmd.FullCommand():
		err = runShare(ctx, cfg, *shareIndex, *shareSearch, *shareQR, *shareSend)
	case downloadCmd.FullCommand():
		err = runDownload(ctx, cfg, *downloadIndex, *downloadDir)
	}

	if err != nil {
		zlog.Error().Msgf("%s failed: %v", command, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loggerConfig picks the log destination. The terminal player owns the
// terminal, so it always logs to a file.
func loggerConfig(cfg *config.Config, command string) logger.Config {
	lc := logger.Config{
		Output: "stderr",
		Level:  cfg.Logging.Level,
	}
	if command == playCmd.FullCommand() {
		lc.Output = cfg.Logging.File
		lc.File = cfg.Logging.File
	}
	if command == serveCmd.FullCommand() {
		lc.Output = "stdout"
	}

	// Override with command-line flags if specified
	if *verbose {
		lc.Level = "debug"
	}
	if *logfile != "" {
		lc.Output = *logfile
		lc.File = *logfile
	}
	return lc
}

// printFilters prints available filters.
func printFilters() {
	registry := filter.GetRegistered()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available Filters:")
	for _, name := range names {
		f := registry[name]()
		fmt.Printf("  %-14s - %s\n", f.Name(), f.Description())
	}
}

// joinArgs renders argv for logs.
func joinArgs(argv []string) string {
	return strings.Join(argv, " ")
}
