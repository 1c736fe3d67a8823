package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillsift/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample industry skills and market data",
	Long:  "Seed upserts the bundled industry skill sets, salary ranges, demand figures, career paths and trends. Running it twice is safe.",
	RunE:  runSeed,
}

var seedTimeout time.Duration

func init() {
	seedCmd.Flags().DurationVar(&seedTimeout, "timeout", time.Minute, "Overall seeding timeout")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
	defer cancel()

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	seeders := seeder.Defaults()
	if err := (seeder.Runner{Seeders: seeders}).Run(ctx, db); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("[Seed] done | seeders=%d", len(seeders))
	return nil
}
