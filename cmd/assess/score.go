package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/domain"
	"founder-assessment/internal/report"
	"founder-assessment/internal/scoring"
	"founder-assessment/internal/service"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answers file and print the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		asJSON, _ := cmd.Flags().GetBool("json")

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		answers, fileLang, err := readAnswers(path)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetString("lang")
		if raw == "" {
			raw = fileLang
		}
		lang := cat.ResolveLanguage(raw)

		eval, err := scoreAnswers(cat, lang, answers)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(eval)
		}
		rep := report.Build(cat, lang, domain.ContactInfo{}, eval, report.Options{})
		fmt.Fprint(out, rep.Text())
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringP("file", "f", "", "JSON file with the answers")
	scoreCmd.Flags().Bool("json", false, "Print the evaluation as JSON")
	_ = scoreCmd.MarkFlagRequired("file")
}

// readAnswers acepta tanto un AnswerSet plano como el payload de envio
// ({"scores": {...}, "language": "en"}).
func readAnswers(path string) (domain.AnswerSet, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read answers %s: %w", path, err)
	}
	var payload struct {
		Scores   domain.AnswerSet `json:"scores"`
		Language string           `json:"language"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Scores != nil {
		return payload.Scores, payload.Language, nil
	}
	var answers domain.AnswerSet
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, "", fmt.Errorf("decode answers %s: %w", path, err)
	}
	return answers, "", nil
}

func scoreAnswers(cat *catalog.Catalog, lang domain.Language, answers domain.AnswerSet) (domain.Evaluation, error) {
	if err := service.ValidateScores(cat.Categories(lang), cat.Scale(), answers, lang); err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return domain.Evaluation{}, fmt.Errorf("%s (%s)", vErr.Message, vErr.Field)
		}
		return domain.Evaluation{}, err
	}
	return scoring.EvaluateCatalog(cat, lang, answers), nil
}
