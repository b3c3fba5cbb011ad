// Command cardfilter evaluates a filter file against a Scryfall card file and
// prints the names of the matching cards.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ramonehamilton/mtg-cardfilter/internal/config"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards/catalog"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
	"github.com/ramonehamilton/mtg-cardfilter/internal/version"
	"github.com/ramonehamilton/mtg-cardfilter/internal/watch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "cardfilter: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath string
	cardsPath  string
	filterPath string
	cost       string
	limit      int
	watch      bool
	debug      bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("cardfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to config.toml (default: ~/.mtga-cardfilter/config.toml)")
	fs.StringVar(&opts.cardsPath, "cards", "", "Scryfall bulk card file (overrides catalog.path)")
	fs.StringVar(&opts.filterPath, "filter", "", "Filter file (.json, .yaml or .yml)")
	fs.StringVar(&opts.cost, "cost", "", "Parse a mana cost and print its breakdown instead of searching")
	fs.IntVar(&opts.limit, "limit", 0, "Maximum number of cards to print (0 = all)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run the search whenever the filter file changes")
	fs.BoolVar(&opts.debug, "debug-mode", false, "Enable verbose debug logging")
	fs.BoolVar(&opts.debug, "d", false, "Enable debug logging (shorthand for -debug-mode)")
	fs.BoolVar(&opts.version, "version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.version {
		fmt.Fprintln(stdout, "mtg-cardfilter", version.GetVersion())
		return nil
	}
	if opts.cost != "" {
		return printCost(stdout, opts.cost)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.debug || cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.cardsPath != "" {
		cfg.Catalog.Path = opts.cardsPath
	}
	if cfg.Catalog.Path == "" {
		return errors.New("no card file: pass -cards or set catalog.path")
	}
	if opts.filterPath == "" {
		return errors.New("no filter file: pass -filter")
	}

	cat, err := catalog.Load(cfg.Catalog.Path, catalog.Config{
		Workers: cfg.Catalog.Workers,
		Strict:  cfg.Catalog.Strict,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	logger.Info("Catalog loaded", "path", cfg.Catalog.Path, "cards", cat.Count())

	decodeOpts := cfg.DecodeOptions()
	if !opts.watch {
		f, err := decodeOpts.ReadFile(opts.filterPath)
		if err != nil {
			return err
		}
		return search(ctx, stdout, cat, f, opts.limit)
	}

	interval, err := cfg.GetWatchPollInterval()
	if err != nil {
		return err
	}
	w, err := watch.New(watch.Config{
		Path:         opts.filterPath,
		Options:      decodeOpts,
		PollInterval: interval,
		UseFsnotify:  cfg.Watch.UseFsnotify,
		Logger:       logger,
		OnChange: func(u watch.Update) {
			if u.Err != nil {
				fmt.Fprintf(stdout, "filter error: %v\n", u.Err)
				return
			}
			fmt.Fprintf(stdout, "--- %s\n", u.Filter)
			if err := search(ctx, stdout, cat, u.Filter, opts.limit); err != nil {
				logger.Warn("Search failed", "error", err)
			}
		},
	})
	if err != nil {
		return err
	}
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(path)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func search(ctx context.Context, w io.Writer, cat *catalog.Catalog, f filter.Filter, limit int) error {
	found, err := cat.Search(ctx, f, limit)
	if err != nil {
		return err
	}
	for _, c := range found {
		fmt.Fprintln(w, c.Name)
	}
	fmt.Fprintf(w, "%d card(s)\n", len(found))
	return nil
}

func printCost(w io.Writer, text string) error {
	cost, err := mana.ParseCost(text)
	if err != nil {
		return err
	}

	cmc := fmt.Sprintf("%g", cost.CMC())
	if math.IsInf(cost.CMC(), 1) {
		cmc = "∞"
	}
	colors := make([]string, 0, len(cost.Colors()))
	for _, c := range cost.Colors() {
		colors = append(colors, c.String())
	}

	fmt.Fprintf(w, "Cost:    %s\n", cost)
	fmt.Fprintf(w, "CMC:     %s\n", cmc)
	fmt.Fprintf(w, "Colors:  %s\n", strings.Join(colors, ", "))
	fmt.Fprintln(w, "Symbols:")
	for _, s := range cost.Symbols() {
		fmt.Fprintf(w, "  %-8s %s\n", s, s.Kind())
	}
	return nil
}
