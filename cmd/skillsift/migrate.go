package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"skillsift/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	Long: "Migrate applies migrations/V<n>__<name>.sql files that are not yet recorded in schema_migrations. " +
		"Without --dir the folder comes from $" + migration.EnvDir + ", ./" + migration.DefaultDir + ", or the folder next to the binary.",
	RunE: runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE:  runMigrateStatus,
}

var (
	migrateDir     string
	migrateTimeout time.Duration
)

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrateDir, "dir", "", "Directory holding V<n>__<name>.sql files")
	migrateCmd.PersistentFlags().DurationVar(&migrateTimeout, "timeout", 2*time.Minute, "Overall migration timeout")

	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func migrationRunner() migration.Runner {
	return migration.Runner{Dir: migrateDir, Logger: log.Default()}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := migrationRunner().Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Printf("[Migrate] done | applied=%d", n)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := migrationRunner().Status(ctx, db.SQLDB())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED AT")
	for _, st := range list {
		at := "pending"
		if st.Applied {
			at = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", st.Version, st.Name, at)
	}
	return w.Flush()
}
