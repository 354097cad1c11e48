package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/config"
	"founder-assessment/internal/domain"
	"founder-assessment/internal/email"
	"founder-assessment/internal/report"
	"founder-assessment/internal/scoring"
	"founder-assessment/internal/service"
)

var errAborted = errors.New("assessment aborted")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer the questionnaire interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetString("lang")
		lang := cat.ResolveLanguage(raw)
		send, _ := cmd.Flags().GetBool("send")

		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		answers, err := runQuestionnaire(in, out, cat, lang)
		if err != nil {
			return err
		}
		eval := scoring.EvaluateCatalog(cat, lang, answers)
		rep := report.Build(cat, lang, domain.ContactInfo{}, eval, report.Options{})
		fmt.Fprintf(out, "\n%s", rep.Text())

		if !send && !confirm(in, out, "Send the report by email? [y/N]: ") {
			return nil
		}
		return sendReport(cmd.Context(), in, out, newLogger(cmd), cat, lang, answers, eval)
	},
}

func init() {
	runCmd.Flags().Bool("send", false, "Ask for contact details and email the report without confirmation")
}

// runQuestionnaire pregunta cada item del catalogo. "r" reinicia, "q" aborta.
func runQuestionnaire(in *bufio.Reader, out io.Writer, cat *catalog.Catalog, lang domain.Language) (domain.AnswerSet, error) {
	col := service.NewCollector(cat)
	scale := cat.Scale()
	categories := cat.Categories(lang)

	fmt.Fprintf(out, "%s\n", report.ScaleLegend(lang))
questions:
	for {
		for _, c := range categories {
			fmt.Fprintf(out, "\n== %s (%d%%) ==\n", c.Name, c.Weight)
			for i, q := range c.Questions {
				for {
					answered, total := col.Progress()
					fmt.Fprintf(out, "[%d/%d] %s\n[%d-%d, r=restart, q=quit]: ", answered+1, total, q.Text, scale.Min, scale.Max)
					line, err := readLine(in)
					if err != nil {
						return nil, err
					}
					switch strings.ToLower(line) {
					case "q":
						return nil, errAborted
					case "r":
						col.Reset()
						continue questions
					}
					score, err := strconv.Atoi(line)
					if err != nil {
						fmt.Fprintf(out, "Please enter a number between %d and %d.\n", scale.Min, scale.Max)
						continue
					}
					if err := col.Record(c.ID, i, score); err != nil {
						fmt.Fprintf(out, "%v\n", err)
						continue
					}
					break
				}
			}
		}
		break
	}
	if !col.Complete() {
		return nil, fmt.Errorf("assessment incomplete")
	}
	return col.Answers(), nil
}

func sendReport(
	ctx context.Context,
	in *bufio.Reader,
	out io.Writer,
	logger *zap.Logger,
	cat *catalog.Catalog,
	lang domain.Language,
	answers domain.AnswerSet,
	eval domain.Evaluation,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	contact, err := promptContact(in, out)
	if err != nil {
		return err
	}

	svc := service.NewSubmissionService(logger, cat, email.FromConfig(ctx, cfg, logger), nil, nil, nil, service.SubmissionOptions{
		Inbox:           cfg.ReportInbox,
		Report:          report.Options{ContactURL: cfg.ReportContact, LogoURL: cfg.ReportLogoURL},
		DeliveryTimeout: cfg.DeliveryTimeout,
	})
	total := eval.RoundedTotal
	_, err = svc.Submit(ctx, service.SubmissionInput{
		Contact:    &contact,
		Scores:     answers,
		TotalScore: &total,
		Language:   string(lang),
	}, "cli")
	return reportSubmitOutcome(out, lang, err)
}

// reportSubmitOutcome imprime el resultado del envio. Un fallo de entrega no
// es fatal: los resultados ya se mostraron.
func reportSubmitOutcome(out io.Writer, lang domain.Language, err error) error {
	var vErr *service.ValidationError
	switch {
	case err == nil:
		fmt.Fprintln(out, "Report sent.")
		return nil
	case errors.As(err, &vErr):
		fmt.Fprintln(out, vErr.Message)
		return nil
	case errors.Is(err, service.ErrDeliveryFailed):
		fmt.Fprintln(out, service.GeneralErrorMessage(lang))
		return nil
	default:
		return err
	}
}

func promptContact(in *bufio.Reader, out io.Writer) (domain.ContactInfo, error) {
	var c domain.ContactInfo
	fields := []struct {
		label string
		dst   *string
	}{
		{"First name", &c.FirstName},
		{"Last name", &c.LastName},
		{"Company name", &c.CompanyName},
		{"Email", &c.Email},
	}
	for _, f := range fields {
		fmt.Fprintf(out, "%s: ", f.label)
		line, err := readLine(in)
		if err != nil {
			return c, err
		}
		*f.dst = line
	}
	return c, nil
}

func confirm(in *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := readLine(in)
	if err != nil {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes", "j", "ja":
		return true
	default:
		return false
	}
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", errAborted
		}
	}
	return strings.TrimSpace(line), nil
}
