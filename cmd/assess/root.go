package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"founder-assessment/internal/catalog"
)

var rootCmd = &cobra.Command{
	Use:   "assess",
	Short: "Founder Dependency Assessment",
	Long:  "Terminal version of the Founder Dependency Assessment: answer the questionnaire, score answer files and inspect the catalog.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("lang", "", "Language for texts and report (nl, en)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a catalog YAML file (overrides CATALOG_FILE env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadCatalog resuelve el catalogo: flag --catalog, luego CATALOG_FILE, luego el embebido.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = os.Getenv("CATALOG_FILE")
	}
	return catalog.Load(path, os.Getenv("DEFAULT_LANGUAGE"))
}

func newLogger(cmd *cobra.Command) *zap.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return zap.NewExample()
	}
	return zap.NewNop()
}
