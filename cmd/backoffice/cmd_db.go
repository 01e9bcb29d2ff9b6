package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sheshine/backoffice/config"
	"github.com/sheshine/backoffice/database/seeders"
	"github.com/sheshine/backoffice/pkg/database"
	"github.com/sheshine/backoffice/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}

func report(verb string, names []string) {
	if len(names) == 0 {
		fmt.Println("Nothing to " + verb + ".")
		return
	}
	for _, n := range names {
		fmt.Printf("%-12s %s\n", verb, n)
	}
}

// backoffice migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		applied, err := migration.New(database.DB).Run()
		report("migrate", applied)
		return err
	},
}

// backoffice migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		reverted, err := migration.New(database.DB).Rollback()
		report("roll back", reverted)
		return err
	},
}

// backoffice migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		rows, err := migration.New(database.DB).Status()
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Migration", "Ran", "Batch", "Run at"})
		for _, s := range rows {
			ran, batch, at := "no", "", ""
			if s.Ran {
				ran, batch, at = "yes", fmt.Sprint(s.Batch), s.RunAt.Format("2006-01-02 15:04:05")
			}
			t.AppendRow(table.Row{s.Name, ran, batch, at})
		}
		t.Render()
		return nil
	},
}

// backoffice seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ran, err := seeders.RunAll(cmd.Context(), database.DB)
		report("seed", ran)
		return err
	},
}
