package main

import (
	"fmt"
	"os"

	"github.com/Kush-Singh-26/immo/catalog/cache"
	"github.com/Kush-Singh-26/immo/internal/clean"
)

// handleCacheCommand processes cache-related subcommands
func handleCacheCommand(args []string) error {
	if len(args) < 1 {
		printCacheUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	subArgs := args[1:]

	switch subcommand {
	case "stats":
		return cacheStats(subArgs)
	case "prune":
		return cachePrune(subArgs)
	case "clear":
		return cacheClear(subArgs)
	default:
		fmt.Printf("Unknown cache subcommand: %s\n", subcommand)
		printCacheUsage()
		os.Exit(1)
	}
	return nil
}

func printCacheUsage() {
	fmt.Println("Usage: immo cache <subcommand> [arguments]")
	fmt.Println("\nSubcommands:")
	fmt.Println("  stats          Show cache statistics")
	fmt.Println("  prune          Delete all but the newest snapshots")
	fmt.Println("  clear          Delete the whole cache directory")
	fmt.Println("\nFlags for prune:")
	fmt.Println("  -keep N        Snapshots to keep (default 3)")
}

func openCache(c *common) (*cache.Manager, error) {
	cfg, _ := c.setup()
	cm, err := cache.Open(cfg.CacheDir, cfg.CacheDBTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return cm, nil
}

func cacheStats(args []string) error {
	fs, c := newFlagSet("cache stats")
	_ = fs.Parse(args)

	cm, err := openCache(c)
	if err != nil {
		return err
	}
	defer func() { _ = cm.Close() }()

	stats, err := cm.Stats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	fmt.Println("📊 Cache Statistics")
	fmt.Println("════════════════════════════════════════")
	fmt.Printf("Location:        %s\n", cm.Path())
	fmt.Printf("Schema Version:  %d\n", stats.SchemaVersion)
	fmt.Printf("Snapshots:       %d\n", stats.Snapshots)
	fmt.Printf("Store Size:      %.2f KB\n", float64(stats.Bytes)/1024)
	if stats.LastChecksum != "" {
		fmt.Printf("Last Checksum:   %s\n", stats.LastChecksum)
	} else {
		fmt.Printf("Last Checksum:   none\n")
	}
	return nil
}

func cachePrune(args []string) error {
	fs, c := newFlagSet("cache prune")
	keep := fs.Int("keep", 3, "snapshots to keep")
	_ = fs.Parse(args)

	cm, err := openCache(c)
	if err != nil {
		return err
	}
	defer func() { _ = cm.Close() }()

	deleted, err := cm.Prune(*keep)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	fmt.Printf("🗑️  Deleted %d snapshot(s), kept up to %d\n", deleted, *keep)
	return nil
}

func cacheClear(args []string) error {
	fs, c := newFlagSet("cache clear")
	_ = fs.Parse(args)

	cfg, _ := c.setup()
	return clean.Run(cfg.CacheDir, os.Stdout)
}
