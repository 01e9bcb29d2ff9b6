package main

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sheshine/backoffice/internal/kernel"
	"github.com/sheshine/backoffice/internal/server"
)

var serveOpts server.Options

// backoffice serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start(cmd.Context(), serveOpts)
	},
}

// backoffice route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List every API route with its access level",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Method", "Path", "Name", "Access"})
		for _, ri := range kernel.RouteTable() {
			t.AppendRow(table.Row{ri.Method, ri.Path, ri.Name, ri.Access})
		}
		t.Render()
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveOpts.Migrate, "migrate", true, "run pending migrations before serving")
	serveCmd.Flags().BoolVar(&serveOpts.Seed, "seed", true, "run seeders before serving")
}
