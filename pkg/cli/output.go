package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
)

const (
	outputJSON = "json"
	outputText = "text"
)

func validateOutput(format string) error {
	switch format {
	case outputJSON, outputText:
		return nil
	default:
		return goerr.New("invalid output format", goerr.V("output", format))
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write JSON output")
	}
	return nil
}

// tierColor maps the color name of a risk tier to a terminal color
func tierColor(name string) *color.Color {
	switch name {
	case "green":
		return color.New(color.FgGreen, color.Bold)
	case "yellow":
		return color.New(color.FgYellow, color.Bold)
	case "orange":
		return color.New(color.FgHiYellow, color.Bold)
	case "red":
		return color.New(color.FgRed, color.Bold)
	case "darkred":
		return color.New(color.FgHiRed, color.Bold, color.ReverseVideo)
	default:
		return color.New(color.Bold)
	}
}

func printResult(w io.Writer, c *config.Catalog, result *model.AssessmentResult) {
	_, _ = fmt.Fprintf(w, "Score: %d/%d ", result.TotalScore, c.Scheme.ScoreMax)
	_, _ = tierColor(result.RiskColor).Fprint(w, result.RiskLevel)
	_, _ = fmt.Fprintf(w, "\n%s\n\n", result.Urgency)

	_, _ = fmt.Fprintln(w, "Categories:")
	for _, cs := range result.CategoryScores {
		_, _ = fmt.Fprintf(w, "  %-32s %6.1f  (%d/%d answered)\n", cs.Name, cs.Score, cs.Answered, cs.Total)
	}

	_, _ = fmt.Fprintln(w, "\nWeakest areas:")
	for i, area := range result.WeakestAreas {
		text := string(area.QuestionID)
		if area.Question != nil {
			text = area.Question.Text
		}
		_, _ = fmt.Fprintf(w, "  %d. [%s] %s (%d)\n", i+1, area.Category, text, area.Points)
	}

	if defaulted := result.DefaultedQuestions(); len(defaulted) > 0 {
		_, _ = color.New(color.FgYellow).Fprintf(w, "\nDefaulted answers: %v\n", defaulted)
	}
}

func printFaults(w io.Writer, faults []model.Fault) {
	warn := color.New(color.FgRed)
	for _, f := range faults {
		_, _ = warn.Fprintf(w, "  - %s\n", f)
	}
}
