package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"founder-assessment/internal/config"
	"founder-assessment/internal/db"
	"founder-assessment/internal/domain"
	"founder-assessment/internal/repository"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List recently recorded submissions (requires DATABASE_URL)",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}

		ctx := cmd.Context()
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		subs, err := repository.NewPgSubmissionRepository(pool).ListRecent(ctx, limit)
		if err != nil {
			return fmt.Errorf("list submissions: %w", err)
		}
		printSubmissions(cmd.OutOrStdout(), subs)
		return nil
	},
}

func init() {
	submissionsCmd.Flags().Int("limit", 20, "Maximum number of submissions to show")
	rootCmd.AddCommand(submissionsCmd)
}

func printSubmissions(out io.Writer, subs []domain.Submission) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tCOMPANY\tEMAIL\tSCORE\tTIER\tDELIVERED")
	for _, s := range subs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%t\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Contact.CompanyName,
			s.Contact.Email,
			s.TotalScore,
			s.Tier,
			s.Delivered,
		)
	}
	w.Flush()
}
