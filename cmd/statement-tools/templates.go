// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statement-tools/internal/templates"
)

// defaultDBPaths are purged when no --db is given.
var defaultDBPaths = []string{"db/custom.db", "prisma/db/custom.db"}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and maintain the bank template database",
	Long: `Templates manages the SQLite database where learned bank templates and
recorded statements are kept. Use subcommands to inspect it or to purge
statement data while keeping templates.`,
}

var templatesInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List tables with row counts and every saved template",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := setting(cmd, "db", "templates.db_path")
		store, err := templates.OpenExisting(path)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Inspect(context.Background(), os.Stdout)
	},
}

var templatesPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all statement data, keeping bank templates",
	Long: `Purge deletes every row from the statement tables (BankStatement,
Transaction, StatementGroup, GroupedStatement) in one transaction per
database. BankTemplate rows are kept. Databases that do not exist are
skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, _ := cmd.Flags().GetStringSlice("db")
		if len(paths) == 0 {
			paths = defaultDBPaths
		}
		return templates.PurgePaths(context.Background(), paths, os.Stdout)
	},
}

func init() {
	templatesInspectCmd.Flags().String("db", "db/custom.db", "template database path")
	templatesPurgeCmd.Flags().StringSlice("db", nil, "database paths to purge (default: db/custom.db, prisma/db/custom.db)")

	templatesCmd.AddCommand(templatesInspectCmd)
	templatesCmd.AddCommand(templatesPurgeCmd)
	rootCmd.AddCommand(templatesCmd)
}
