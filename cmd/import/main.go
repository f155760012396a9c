package main

import (
	"fmt"
	"os"

	"stocksync/internal/config"
	"stocksync/internal/database"
	"stocksync/internal/events"
	"stocksync/internal/importer"
	"stocksync/internal/logger"
	"stocksync/internal/store"

	"github.com/spf13/cobra"
)

var (
	importChannel string
	importNoHead  bool
)

var rootCmd = &cobra.Command{
	Use:   "stocksync-import --channel <wc|ebay> <file>...",
	Short: "Import marketplace CSV exports into the catalog and order store",
	Long: `Reads one or more marketplace export files, reconciles every row into
the product catalog (simple products, variable products and their
variations, deduplicated by channel item number) and then assembles
rows sharing an order number into orders. Re-running the same file is
a no-op. A file that cannot be processed is logged and skipped; the
remaining files still run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := importer.Channel(importChannel)
		if !channel.Valid() {
			return fmt.Errorf("unknown channel %q", importChannel)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log := logger.New(cfg.LogLevel)

		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		var publisher importer.Publisher
		if cfg.KafkaBrokers != "" {
			kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}

		catalog := store.New(db.DB)
		run := importer.New(catalog, channel, publisher, log)

		// One bad file never stops the remaining ones.
		failed := 0
		for _, path := range args {
			report, err := run.Run(path, !importNoHead)
			if err != nil {
				log.Error("failed to import %s: %v", path, err)
				failed++
				continue
			}
			fmt.Printf("%s: %s\n", path, report)
		}

		if failed == len(args) {
			return fmt.Errorf("all %d file(s) failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&importChannel, "channel", "", "source channel of the export files (wc or ebay)")
	rootCmd.Flags().BoolVar(&importNoHead, "no-header", false, "files have no header row")
	rootCmd.MarkFlagRequired("channel")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
