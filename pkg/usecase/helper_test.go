package usecase_test

import (
	"slices"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qrisk/pkg/catalog"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func loadCatalog(t *testing.T, name string) *config.Catalog {
	t.Helper()
	c, err := catalog.Default(name)
	gt.NoError(t, err).Required()
	return c
}

func loadProfile(t *testing.T) *config.ReportProfile {
	t.Helper()
	p, err := catalog.DefaultReportProfile()
	gt.NoError(t, err).Required()
	return p
}

// withVersion returns a copy of the catalog under a new version. The copy owns its question
// and option slices so they can be changed freely.
func withVersion(c *config.Catalog, version string) *config.Catalog {
	cloned := *c
	cloned.Version = version
	cloned.Questions = slices.Clone(c.Questions)
	for i := range cloned.Questions {
		cloned.Questions[i].Options = slices.Clone(c.Questions[i].Options)
	}
	return &cloned
}

func question(t *testing.T, c *config.Catalog, id types.QuestionID) *config.Question {
	t.Helper()
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i]
		}
	}
	t.Fatalf("question %s not found", id)
	return nil
}

func shortMixed() map[string]any {
	return map[string]any{
		"q1":  "250k_1m",
		"q2":  "20_30_years",
		"q3":  "25_40",
		"q4":  []any{"hipaa", "hitech", "soc2", "pci_dss", "gdpr"},
		"q5":  "26_50",
		"q6":  "moderate",
		"q7":  "regional",
		"q8":  "moderate",
		"q9":  "one_breach",
		"q10": "it_aware",
		"q11": "planned",
	}
}

func shortAllMin() map[string]any {
	return map[string]any{
		"q1":  "under_50k",
		"q2":  "7_10_years",
		"q3":  "under_10",
		"q4":  []any{"hipaa"},
		"q5":  "1_10",
		"q6":  "none",
		"q7":  "none",
		"q8":  "minimal",
		"q9":  "none",
		"q10": "active",
		"q11": "complete",
	}
}

// deepAllWorst answers every deep question with its least prepared option
func deepAllWorst(c *config.Catalog) map[string]any {
	rs := map[string]any{}
	for _, q := range c.Questions {
		switch q.Rule {
		case types.ScoringRuleMultiFewerIsSafer:
			selected := make([]any, 0, len(q.Options))
			for _, opt := range q.Options {
				selected = append(selected, string(opt.ID))
			}
			rs[string(q.ID)] = selected
		case types.ScoringRuleBinary:
			if q.Binary.YesIsBetter {
				rs[string(q.ID)] = string(q.Binary.No)
			} else {
				rs[string(q.ID)] = string(q.Binary.Yes)
			}
		default:
			rs[string(q.ID)] = string(q.Options[0].ID)
		}
	}
	return rs
}
