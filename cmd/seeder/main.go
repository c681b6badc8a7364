package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlefSillva/projeto-empresa-db/internal/bootstrap"
	"github.com/AlefSillva/projeto-empresa-db/internal/database"
	"github.com/AlefSillva/projeto-empresa-db/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Rebuild the company database from its CSV sources",
	Long: `seeder manages the relational store behind the report server without
starting it. Connection and source settings come from the same environment
variables (and optional .env file) the server reads.`,
	SilenceUsage: true,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Reset the schema and bulk load every source",
	Example: `  seeder load --data-dir ./data
  seeder load --sources ./data/sources.yaml`,
	RunE: runLoad,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate every table, leaving them empty",
	RunE:  runReset,
}

func init() {
	loadCmd.Flags().String("data-dir", "", "Directory holding <table>.csv files (overrides DATA_DIR)")
	loadCmd.Flags().String("sources", "", "YAML manifest mapping tables to files (overrides SOURCES_FILE)")
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(loadCmd, resetCmd)
}

func setup(ctx context.Context) (*bootstrap.App, error) {
	app := bootstrap.NewApp()
	if err := app.Setup(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func runLoad(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		app.Config.DATA_DIR = dir
	}
	if sources, _ := cmd.Flags().GetString("sources"); sources != "" {
		app.Config.SOURCES_FILE = sources
	}

	counts, err := app.LoadData(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %s store:\n", app.Dialect)
	fmt.Fprintln(out, strings.Repeat("=", 40))
	for _, name := range database.TableNames() {
		fmt.Fprintf(out, "%-20s %8d rows\n", name, counts[name])
	}
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		fmt.Fprint(cmd.OutOrStdout(), "This will delete all loaded data. Continue? (yes/no): ")
		var response string
		fmt.Fscanln(cmd.InOrStdin(), &response)
		if response != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := database.NewSchema(app.DB, app.Dialect).Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema reset (%d tables)\n", len(database.Tables))
	return nil
}

func main() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.ErrorLog(ctx, "seeder failed: %v", err)
		os.Exit(1)
	}
}
