package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/domain"
	"founder-assessment/internal/report"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List categories and questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetString("lang")
		printCatalog(cmd.OutOrStdout(), cat, cat.ResolveLanguage(raw))
		return nil
	},
}

func printCatalog(out io.Writer, cat *catalog.Catalog, lang domain.Language) {
	fmt.Fprintf(out, "Catalog %s (%s)\n", cat.Version(), lang)
	fmt.Fprintf(out, "%s\n", report.ScaleLegend(lang))
	for _, c := range cat.Categories(lang) {
		fmt.Fprintf(out, "\n%s [%s] %d%%\n", c.Name, c.ID, c.Weight)
		for i, q := range c.Questions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, q.Text)
		}
	}
}
