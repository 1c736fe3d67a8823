package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skillsift/internal/app"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete stored analyses past the retention window",
	Long:  "Purge removes analyses created before now minus --older-than. Without the flag ANALYSIS_RETENTION is used (30 days by default).",
	RunE:  runPurge,
}

var (
	purgeOlderThan time.Duration
	purgeTimeout   time.Duration
)

func init() {
	purgeCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 0, "Retention window, e.g. 720h")
	purgeCmd.Flags().DurationVar(&purgeTimeout, "timeout", time.Minute, "Overall purge timeout")

	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), purgeTimeout)
	defer cancel()

	cfg := loadConfig()
	if !cfg.Database.Enabled() {
		return errors.New("database is not configured (set DB_HOST and DB_NAME)")
	}
	olderThan := purgeOlderThan
	if olderThan <= 0 {
		olderThan = cfg.Analysis.Retention
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := c.Analysis.Purge(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d analyses created before %s\n", res.Deleted, res.Before.Format(time.RFC3339))
	return nil
}
