package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/immo/catalog/config"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/run"
	"github.com/Kush-Singh-26/immo/internal/logging"
	"github.com/Kush-Singh-26/immo/internal/scaffold"
	"github.com/Kush-Singh-26/immo/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "search":
		err = runSearch(args)
	case "suggest":
		err = runSuggest(args)
	case "bounds":
		err = runBounds(args)
	case "serve":
		err = runServe(args)
	case "cache":
		err = handleCacheCommand(args)
	case "init":
		err = runInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: immo <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  search <query>     Print the listings matching a query")
	fmt.Println("  suggest <query>    Print ranked suggestions for a partial query")
	fmt.Println("  bounds             Print the observed price range")
	fmt.Println("  serve              Start the HTTP host")
	fmt.Println("  cache <sub>        Snapshot cache maintenance (stats, prune, clear)")
	fmt.Println("  init [dir]         Write a starter immo.yaml and listings.yaml")
	fmt.Println("  help               Show this help message")
	fmt.Println("\nCommon flags:")
	fmt.Println("  -config <file>     Configuration file (default immo.yaml)")
	fmt.Println("  -env <file>        Dotenv file (default .env)")
	fmt.Println("  -catalog <source>  Catalog file or URL, overrides the config")
}

// common holds the flags every subcommand accepts.
type common struct {
	configPath string
	envPath    string
	catalog    string
}

func newFlagSet(name string) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	c := &common{}
	fs.StringVar(&c.configPath, "config", config.DefaultFile, "configuration file")
	fs.StringVar(&c.envPath, "env", ".env", "dotenv file")
	fs.StringVar(&c.catalog, "catalog", "", "catalog file or URL")
	return fs, c
}

// setup loads the configuration and the logger.
func (c *common) setup() (*config.Config, *slog.Logger) {
	cfg, err := config.Load(afero.NewOsFs(), c.configPath, c.envPath)
	logger := logging.Setup(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	if err != nil {
		logger.Warn("Using default configuration", "error", err)
	}
	if c.catalog != "" {
		cfg.Catalog = c.catalog
	}
	return cfg, logger
}

// openHost loads the catalog into a fresh host.
func (c *common) openHost(ctx context.Context) (*run.Host, error) {
	cfg, logger := c.setup()
	host := run.NewHost(cfg, afero.NewOsFs(), logger)
	if _, err := host.Reload(ctx); err != nil {
		_ = host.Close()
		return nil, err
	}
	return host, nil
}

func runSearch(args []string) error {
	fs, c := newFlagSet("search")
	deal := fs.String("deal", "", "deal type (Vente, Location, ...)")
	commune := fs.String("commune", "", "commune")
	room := fs.String("room", "", "room code (Studio, F1 ... F6+)")
	priceMin := fs.String("price-min", "", "minimum price")
	priceMax := fs.String("price-max", "", "maximum price")
	amenities := fs.String("amenities", "", "comma separated amenity keys")
	sortMode := fs.String("sort", "relevance", "relevance, price_asc, price_desc, area_desc, recent")
	noExtract := fs.Bool("no-extract", false, "do not derive facets from the query text")
	_ = fs.Parse(args)

	ctx := context.Background()
	host, err := c.openHost(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = host.Close() }()
	sess := host.Session()

	state := models.NewFilterState().
		WithDealType(*deal).
		WithCommune(*commune).
		WithRoom(*room).
		WithPrice(*priceMin, *priceMax)
	for _, key := range strings.Split(*amenities, ",") {
		if key = strings.TrimSpace(key); key != "" {
			state = state.WithAmenity(key)
		}
	}
	state.Sort = models.ParseSortMode(*sortMode)

	text := strings.Join(fs.Args(), " ")
	if *noExtract {
		state = state.WithQuery(text)
	} else {
		state = sess.OnQueryChange(state, text)
	}

	view, err := host.Recompute(state)
	if err != nil {
		return err
	}

	f := server.NewFormatter()
	fmt.Printf("🔎 %d / %d listings\n", view.Count, view.Total)
	printState(view.State)
	for _, l := range view.Results {
		fmt.Printf("  %-14s %-40s %-22s %s\n", l.Ref, truncate(l.Title, 40), truncate(l.Location, 22), l.Price)
	}
	fmt.Printf("Price: %s – %s\n", f.Format(view.PriceMin), f.Format(view.PriceMax))
	return nil
}

func printState(s models.FilterState) {
	var parts []string
	add := func(name, v string) {
		if v != "" {
			parts = append(parts, name+"="+v)
		}
	}
	add("deal", s.DealType)
	add("commune", s.Commune)
	add("district", s.District)
	add("room", s.Room)
	add("price_min", s.PriceMin)
	add("price_max", s.PriceMax)
	add("area_min", s.AreaMin)
	add("area_max", s.AreaMax)
	add("amenities", strings.Join(s.Amenities, ","))
	if len(parts) > 0 {
		fmt.Printf("   facets: %s\n", strings.Join(parts, " "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func runSuggest(args []string) error {
	fs, c := newFlagSet("suggest")
	limit := fs.Int("limit", 0, "maximum number of suggestions (default from config)")
	_ = fs.Parse(args)

	host, err := c.openHost(context.Background())
	if err != nil {
		return err
	}
	defer func() { _ = host.Close() }()

	sugs, err := host.Suggest(strings.Join(fs.Args(), " "), *limit)
	if err != nil {
		return err
	}
	if len(sugs) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}
	for _, s := range sugs {
		fmt.Printf("  [%d] %-12s %s\n", s.Score, s.Kind, highlight(s))
	}
	return nil
}

// highlight renders matched blocks in brackets.
func highlight(s models.Suggestion) string {
	if len(s.Blocks) == 0 {
		return s.Label
	}
	var b strings.Builder
	for _, blk := range s.Blocks {
		if blk.Highlight {
			b.WriteString("[" + blk.Text + "]")
		} else {
			b.WriteString(blk.Text)
		}
	}
	return b.String()
}

func runBounds(args []string) error {
	fs, c := newFlagSet("bounds")
	_ = fs.Parse(args)

	host, err := c.openHost(context.Background())
	if err != nil {
		return err
	}
	defer func() { _ = host.Close() }()

	b := host.Session().Bounds()
	f := server.NewFormatter()
	fmt.Println("💰 Price range")
	fmt.Printf("Min:  %s\n", f.Format(models.DisplayValue{Value: b.Min, Intent: models.IntentCurrency}))
	fmt.Printf("Max:  %s\n", f.Format(models.DisplayValue{Value: b.Max, Intent: models.IntentCurrency}))
	fmt.Printf("Step: %s\n", f.Format(models.DisplayValue{Value: b.Step, Intent: models.IntentCurrency}))
	return nil
}

func runServe(args []string) error {
	fs, c := newFlagSet("serve")
	host := fs.String("host", "", "the host/IP to bind to (overrides config)")
	port := fs.Int("port", 0, "the port to listen on (overrides config)")
	noWatch := fs.Bool("no-watch", false, "disable catalog hot reload")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger := c.setup()
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *noWatch {
		cfg.Server.Watch = false
	}

	h := run.NewHost(cfg, afero.NewOsFs(), logger)
	defer func() { _ = h.Close() }()
	if _, err := h.Reload(ctx); err != nil {
		return err
	}

	if err := server.New(h, logger).Run(ctx); err != nil {
		return err
	}
	h.Metrics().Print()
	fmt.Println("✅ Server stopped.")
	return nil
}

func runInit(args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	_, err := scaffold.Run(afero.NewOsFs(), dir, os.Stdout)
	return err
}
