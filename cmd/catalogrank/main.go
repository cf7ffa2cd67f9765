// Package main is the catalogrank CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/catalogrank/internal/catalog"
	"github.com/hyperjump/catalogrank/internal/cli"
	"github.com/hyperjump/catalogrank/internal/config"
	"github.com/hyperjump/catalogrank/internal/keyword"
	"github.com/hyperjump/catalogrank/internal/metrics"
	"github.com/hyperjump/catalogrank/internal/models"
	"github.com/hyperjump/catalogrank/internal/search"
	"github.com/hyperjump/catalogrank/internal/server"
	"github.com/hyperjump/catalogrank/internal/watcher"
	"github.com/hyperjump/catalogrank/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/catalogrank/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in the
// current directory wins if present; a missing default file yields the built-in defaults.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			var cfg config.Config
			config.ApplyDefaults(&cfg)
			return &cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "suggest":
		runSuggest()
	case "keywords":
		runKeywords()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("catalogrank version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds the catalog and engine built from config.
type Components struct {
	Source catalog.Source
	Store  *catalog.Store
	Engine *search.Engine
}

// Close releases the engine index and any database behind the source.
func (c *Components) Close() {
	if c.Engine != nil {
		_ = c.Engine.Close()
	}
	if closer, ok := c.Source.(io.Closer); ok {
		_ = closer.Close()
	}
}

// initializeComponents opens the configured catalog source, loads it, and builds the engine.
func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	source, err := catalog.NewSource(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	store := catalog.NewStore(source, catalog.WithLogger(logger))
	engine := search.NewEngine(store, &cfg.Search, cfg.Ranking, search.WithLogger(logger))
	components := &Components{Source: source, Store: store, Engine: engine}

	n, err := engine.Reload(ctx)
	metrics.ObserveReload(n, err)
	if err != nil {
		components.Close()
		return nil, err
	}
	return components, nil
}

// applyCatalogFlags overrides the configured catalog with command line values.
func applyCatalogFlags(cfg *config.Config, path, format string) {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		cfg.Catalog.Path = path
		cfg.Catalog.Format = format
	} else if format != "" {
		cfg.Catalog.Format = format
	}
}

func mustSetup(configPath, catalogPath, format string, debug bool) (*config.Config, *zap.Logger) {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyCatalogFlags(cfg, catalogPath, format)
	debugMode := cfg.Debug || debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded",
		zap.String("config_path", resolved),
		zap.String("catalog", cfg.Catalog.Path),
		zap.Bool("debug", debugMode),
	)
	return cfg, logger
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	catalogPath := fs.String("catalog", "", "catalog file (overrides config)")
	format := fs.String("format", "", "catalog format: json, yaml, xlsx or sqlite (default: from extension)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := mustSetup(*configPath, *catalogPath, *format, *debug)
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Catalog.WatchOrDefault() {
		engine := components.Engine
		w := watcher.NewWatcher([]string{cfg.Catalog.Path}, func(path string) {
			n, err := engine.Reload(watchCtx)
			metrics.ObserveReload(n, err)
			if err != nil {
				logger.Warn("catalog reload after change failed", zap.String("path", path), zap.Error(err))
			}
		}, watcher.WithLogger(logger))
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	srv := server.NewServer(components.Engine, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: catalogrank search [flags] [query]\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. An empty query ranks by popularity.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  catalogrank search leather sofa
  catalogrank search --catalog products.xlsx --max-price 500 sofa
  catalogrank search --category Lighting --limit 5
  catalogrank search --server http://localhost:8080 --output json lamp
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// priceFlag is an optional float flag; it stays nil unless given.
type priceFlag struct {
	value *float64
}

func (p *priceFlag) String() string {
	if p.value == nil {
		return ""
	}
	return strconv.FormatFloat(*p.value, 'f', -1, 64)
}

func (p *priceFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", s)
	}
	p.value = &v
	return nil
}

func parseOutputFormat(s string) (cli.SearchOutputFormat, error) {
	switch s {
	case "text":
		return cli.OutputText, nil
	case "json":
		return cli.OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	catalogPath := fs.String("catalog", "", "catalog file (overrides config)")
	format := fs.String("format", "", "catalog format (default: from extension)")
	serverURL := fs.String("server", "", "server URL; empty ranks the catalog locally")
	limit := fs.Int("limit", 0, "number of results (default from config)")
	offset := fs.Int("offset", 0, "results to skip")
	minScore := fs.Float64("min-score", 0, "drop results scoring below this")
	category := fs.String("category", "", "only items in this category")
	outputFormat := fs.String("output", "text", "output format: text or json")
	var minPrice, maxPrice priceFlag
	fs.Var(&minPrice, "min-price", "lower price bound")
	fs.Var(&maxPrice, "max-price", "upper price bound")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	out, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	req := &models.SearchRequest{
		Query:    buildSearchQuery(fs.Args()),
		MinPrice: minPrice.value,
		MaxPrice: maxPrice.value,
		Category: *category,
		Limit:    *limit,
		Offset:   *offset,
		MinScore: *minScore,
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		response, err = searchViaHTTP(*serverURL, req)
	} else {
		cfg, logger := mustSetup(*configPath, *catalogPath, *format, false)
		defer logger.Sync()
		components, initErr := initializeComponents(context.Background(), cfg, logger)
		if initErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", initErr)
			os.Exit(1)
		}
		defer components.Close()
		response, err = components.Engine.Search(context.Background(), req)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, out); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, req *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(strings.TrimRight(serverURL, "/")+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	catalogPath := fs.String("catalog", "", "catalog file (overrides config)")
	format := fs.String("format", "", "catalog format (default: from extension)")
	serverURL := fs.String("server", "", "server URL; empty checks against the local catalog")
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	query := buildSearchQuery(fs.Args())
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: catalogrank suggest [flags] <query>")
		os.Exit(1)
	}

	if *serverURL != "" {
		var resp map[string]interface{}
		if err := getJSON(*serverURL+"/api/v1/suggest?q="+url.QueryEscape(query), &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Suggest failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteJSON(os.Stdout, resp)
		return
	}

	cfg, logger := mustSetup(*configPath, *catalogPath, *format, false)
	defer logger.Sync()
	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	result, err := components.Engine.SpellCheck(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Suggest failed: %v\n", err)
		os.Exit(1)
	}
	if !result.HasCorrections {
		fmt.Println("No suggestion")
		return
	}
	fmt.Printf("Did you mean: %s\n", result.CorrectedQuery)
}

func runKeywords() {
	query := buildSearchQuery(os.Args[2:])
	for _, kw := range keyword.ExtractKeywords(query) {
		fmt.Println(kw)
	}
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	format := fs.String("format", "", "source catalog format (default: from extension)")
	sheet := fs.String("sheet", "", "spreadsheet sheet to read")
	sourceTable := fs.String("source-table", "products", "table to read when the source is SQLite")
	table := fs.String("table", "products", "destination table")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: catalogrank import [flags] <source> <dest.db>")
		os.Exit(1)
	}
	logger := utils.MustLogger(false)
	defer logger.Sync()

	n, err := importCatalog(context.Background(), config.CatalogConfig{
		Path:   fs.Arg(0),
		Format: *format,
		Sheet:  *sheet,
		Table:  *sourceTable,
	}, fs.Arg(1), *table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}
	logger.Info("catalog imported", zap.String("dest", fs.Arg(1)), zap.Int("items", n))
	fmt.Printf("Imported %d items into %s\n", n, fs.Arg(1))
}

// importCatalog copies every item of the source described by src into a SQLite table.
func importCatalog(ctx context.Context, src config.CatalogConfig, dbPath, table string) (int, error) {
	source, err := catalog.NewSource(src)
	if err != nil {
		return 0, err
	}
	if closer, ok := source.(io.Closer); ok {
		defer closer.Close()
	}
	items, err := source.Items(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog: %w", err)
	}

	store := catalog.NewStore(nil)
	store.Replace(items)
	items = store.Items()

	dest, err := catalog.NewSQLiteSource(dbPath, table)
	if err != nil {
		return 0, err
	}
	defer dest.Close()
	if err := dest.SaveItems(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	catalogPath := fs.String("catalog", "", "catalog file (overrides config)")
	format := fs.String("format", "", "catalog format (default: from extension)")
	serverURL := fs.String("server", "", "server URL; empty loads the local catalog")
	_ = fs.Parse(os.Args[2:])

	if *serverURL != "" {
		var status search.Status
		if err := getJSON(*serverURL+"/api/v1/status", &status); err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteJSON(os.Stdout, status)
		return
	}

	cfg, logger := mustSetup(*configPath, *catalogPath, *format, false)
	defer logger.Sync()
	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()
	_ = cli.WriteJSON(os.Stdout, components.Engine.Status())
}

func getJSON(target string, v interface{}) error {
	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func printUsage() {
	fmt.Println(`catalogrank - Relevance ranking for product catalogs

Usage:
  catalogrank server [flags]                  Start the HTTP server
  catalogrank search [flags] [query]          Rank catalog items for a query
  catalogrank suggest [flags] <query>         Suggest a spelling correction
  catalogrank keywords <query>                Show the informative terms of a query
  catalogrank import [flags] <source> <db>    Copy a catalog file into SQLite
  catalogrank status [flags]                  Show catalog status
  catalogrank version                         Show version
  catalogrank help                            Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/catalogrank/config.yaml)
  --catalog string   Catalog file (json, yaml, xlsx or sqlite), overrides config
  --format string    Catalog format when the extension is ambiguous
  --server string    Talk to a running server instead of loading the catalog

Search Flags:
  --limit int          Number of results (default from config)
  --offset int         Results to skip
  --min-score float    Drop results scoring below this
  --category string    Only items in this category
  --min-price float    Lower price bound
  --max-price float    Upper price bound
  --output string      Output format: text or json (default: text)

Import Flags:
  --table string          Destination table (default: products)
  --source-table string   Table to read when the source is SQLite (default: products)
  --sheet string          Spreadsheet sheet to read

Examples:
  catalogrank server --catalog products.json
  catalogrank search leather sofa
  catalogrank search --max-price 500 --output json sofa
  catalogrank suggest leathr sofa
  catalogrank import products.xlsx catalog.db`)
}
