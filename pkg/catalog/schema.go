package catalog

import (
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// catalogFile is the TOML representation of a question catalog
type catalogFile struct {
	Name       string         `toml:"name"`
	Version    string         `toml:"version"`
	Title      string         `toml:"title"`
	Scheme     schemeFile     `toml:"scheme"`
	Report     reportFile     `toml:"report"`
	Categories []categoryFile `toml:"category"`
	Questions  []questionFile `toml:"question"`
	Tiers      []tierFile     `toml:"tier"`
	Benchmark  *benchmarkFile `toml:"benchmark"`
}

type schemeFile struct {
	Kind               string `toml:"kind"`
	Polarity           string `toml:"polarity"`
	ScoreMin           int    `toml:"score_min"`
	ScoreMax           int    `toml:"score_max"`
	QuestionMin        int    `toml:"question_min"`
	QuestionMax        int    `toml:"question_max"`
	RankOrder          string `toml:"rank_order"`
	WeakAreaCount      int    `toml:"weak_area_count"`
	RenormalizeMissing bool   `toml:"renormalize_missing"`
}

type reportFile struct {
	OrgSizeQuestion    string   `toml:"org_size_question"`
	FallbackCategories []string `toml:"fallback_categories"`
}

type recommendationFile struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Actions     []string `toml:"actions"`
	Priority    string   `toml:"priority"`
}

type categoryFile struct {
	ID             string              `toml:"id"`
	Name           string              `toml:"name"`
	Weight         float64             `toml:"weight"`
	Recommendation *recommendationFile `toml:"recommendation"`
}

type optionFile struct {
	ID     string `toml:"id"`
	Label  string `toml:"label"`
	Points int    `toml:"points"`
}

type bucketFile struct {
	Min    int `toml:"min"`
	Max    int `toml:"max"`
	Points int `toml:"points"`
}

type binaryFile struct {
	Yes         string `toml:"yes"`
	No          string `toml:"no"`
	Unsure      string `toml:"unsure"`
	YesIsBetter bool   `toml:"yes_is_better"`
}

type questionFile struct {
	ID       string  `toml:"id"`
	Category string  `toml:"category"`
	Text     string  `toml:"text"`
	Shape    string  `toml:"shape"`
	Rule     string  `toml:"rule"`
	Scored   *bool   `toml:"scored"`
	Required *bool   `toml:"required"`
	Weight   float64 `toml:"weight"`

	// Options carry explicit identifiers. Choices are bare labels that double as identifiers.
	Options []optionFile `toml:"options"`
	Choices []string     `toml:"choices"`

	Buckets    []bucketFile `toml:"buckets"`
	EmptyScore int          `toml:"empty_score"`
	Inverted   bool         `toml:"inverted"`
	Binary     *binaryFile  `toml:"binary"`
}

type tierFile struct {
	Min            int     `toml:"min"`
	Max            int     `toml:"max"`
	Label          string  `toml:"label"`
	Color          string  `toml:"color"`
	Urgency        string  `toml:"urgency"`
	CostMultiplier float64 `toml:"cost_multiplier"`
	Summary        string  `toml:"summary"`
}

type percentileFile struct {
	Percentile int `toml:"percentile"`
	Score      int `toml:"score"`
}

type benchmarkFile struct {
	Overall        int              `toml:"overall"`
	DefaultAverage int              `toml:"default_average"`
	Averages       map[string]int   `toml:"averages"`
	Percentiles    []percentileFile `toml:"percentiles"`
}

const defaultWeakAreaCount = 3

// toDomain converts the file representation into the domain catalog
func (f *catalogFile) toDomain() *config.Catalog {
	weakAreas := f.Scheme.WeakAreaCount
	if weakAreas == 0 {
		weakAreas = defaultWeakAreaCount
	}

	c := &config.Catalog{
		Name:    f.Name,
		Version: f.Version,
		Title:   f.Title,
		Scheme: config.Scheme{
			Kind:               types.SchemeKind(f.Scheme.Kind),
			Polarity:           types.Polarity(f.Scheme.Polarity),
			ScoreMin:           f.Scheme.ScoreMin,
			ScoreMax:           f.Scheme.ScoreMax,
			QuestionMin:        f.Scheme.QuestionMin,
			QuestionMax:        f.Scheme.QuestionMax,
			RankOrder:          types.RankOrder(f.Scheme.RankOrder),
			WeakAreaCount:      weakAreas,
			RenormalizeMissing: f.Scheme.RenormalizeMissing,
		},
		Report: config.ReportSettings{
			OrgSizeQuestion: types.QuestionID(f.Report.OrgSizeQuestion),
		},
	}

	for _, id := range f.Report.FallbackCategories {
		c.Report.FallbackCategories = append(c.Report.FallbackCategories, types.CategoryID(id))
	}

	for _, cat := range f.Categories {
		c.Categories = append(c.Categories, cat.toDomain())
	}
	for _, q := range f.Questions {
		c.Questions = append(c.Questions, q.toDomain())
	}
	for _, t := range f.Tiers {
		c.Tiers = append(c.Tiers, config.RiskTier{
			Min:            t.Min,
			Max:            t.Max,
			Label:          t.Label,
			Color:          t.Color,
			Urgency:        t.Urgency,
			CostMultiplier: t.CostMultiplier,
			Summary:        t.Summary,
		})
	}

	if b := f.Benchmark; b != nil {
		bench := &config.Benchmark{
			Overall:        b.Overall,
			DefaultAverage: b.DefaultAverage,
			Averages:       make(map[types.CategoryID]int, len(b.Averages)),
		}
		for id, avg := range b.Averages {
			bench.Averages[types.CategoryID(id)] = avg
		}
		for _, p := range b.Percentiles {
			bench.Percentiles = append(bench.Percentiles, config.PercentilePoint{
				Percentile: p.Percentile,
				Score:      p.Score,
			})
		}
		c.Benchmark = bench
	}

	return c
}

func (f *categoryFile) toDomain() config.Category {
	cat := config.Category{
		ID:     types.CategoryID(f.ID),
		Name:   f.Name,
		Weight: f.Weight,
	}
	if r := f.Recommendation; r != nil {
		cat.Recommendation = &config.Recommendation{
			Title:       r.Title,
			Description: r.Description,
			Actions:     r.Actions,
			Priority:    r.Priority,
		}
	}
	return cat
}

func (f *questionFile) toDomain() config.Question {
	scored := true
	if f.Scored != nil {
		scored = *f.Scored
	}
	required := scored
	if f.Required != nil {
		required = *f.Required
	}

	rule := types.ScoringRule(f.Rule)
	if rule == "" && !scored {
		rule = types.ScoringRuleNone
	}

	shape := types.AnswerShape(f.Shape)
	if shape == "" {
		shape = rule.Shape()
	}
	if shape == "" {
		shape = types.AnswerShapeSingleChoice
	}

	q := config.Question{
		ID:         types.QuestionID(f.ID),
		Category:   types.CategoryID(f.Category),
		Text:       f.Text,
		Shape:      shape,
		Rule:       rule,
		Scored:     scored,
		Required:   required,
		Weight:     f.Weight,
		EmptyScore: f.EmptyScore,
		Inverted:   f.Inverted,
	}

	for _, opt := range f.Options {
		id := opt.ID
		if id == "" {
			id = opt.Label
		}
		q.Options = append(q.Options, config.Option{
			ID:     types.OptionID(id),
			Label:  opt.Label,
			Points: opt.Points,
		})
	}
	for _, label := range f.Choices {
		q.Options = append(q.Options, config.Option{
			ID:    types.OptionID(label),
			Label: label,
		})
	}

	for _, b := range f.Buckets {
		q.Buckets = append(q.Buckets, config.Bucket{Min: b.Min, Max: b.Max, Points: b.Points})
	}

	if rule == types.ScoringRuleBinary {
		answers := &config.BinaryAnswers{Yes: "Yes", No: "No", Unsure: "Unsure"}
		if b := f.Binary; b != nil {
			answers.YesIsBetter = b.YesIsBetter
			if b.Yes != "" {
				answers.Yes = types.OptionID(b.Yes)
			}
			if b.No != "" {
				answers.No = types.OptionID(b.No)
			}
			if b.Unsure != "" {
				answers.Unsure = types.OptionID(b.Unsure)
			}
		}
		q.Binary = answers
	}

	return q
}
