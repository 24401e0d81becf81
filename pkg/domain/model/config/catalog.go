package config

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// Option represents one answer choice of a question
type Option struct {
	ID     types.OptionID
	Label  string
	Points int // Used by the ordinal-points rule only
}

// Bucket maps a range of selection counts to fixed points.
// Max of zero means the bucket has no upper bound.
type Bucket struct {
	Min    int
	Max    int
	Points int
}

// Contains reports whether k selections fall into the bucket
func (b Bucket) Contains(k int) bool {
	return k >= b.Min && (b.Max == 0 || k <= b.Max)
}

// BinaryAnswers holds the option identifiers of a yes/no/unsure question
type BinaryAnswers struct {
	Yes         types.OptionID
	No          types.OptionID
	Unsure      types.OptionID
	YesIsBetter bool
}

// Question is an immutable catalog entry
type Question struct {
	ID       types.QuestionID
	Category types.CategoryID
	Text     string
	Shape    types.AnswerShape
	Rule     types.ScoringRule
	Options  []Option
	Scored   bool
	Required bool
	Weight   float64 // Multiplier used by the raw-points scheme, zero means 1

	// Multi-choice rules
	Buckets    []Bucket
	EmptyScore int  // Score for zero selections
	Inverted   bool // multi-fewer-is-safer only: more selections score higher

	Binary *BinaryAnswers
}

// OptionIndex returns the position of the option, or -1 if the question has no such option
func (q *Question) OptionIndex(id types.OptionID) int {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return i
		}
	}
	return -1
}

// OptionLabel returns the label of the option, or the identifier itself when it is unknown
func (q *Question) OptionLabel(id types.OptionID) string {
	if i := q.OptionIndex(id); i >= 0 {
		return q.Options[i].Label
	}
	return string(id)
}

// EffectiveWeight returns the raw-points multiplier of the question
func (q *Question) EffectiveWeight() float64 {
	if q.Weight == 0 {
		return 1
	}
	return q.Weight
}

// Recommendation is the remediation content associated with a category
type Recommendation struct {
	Title       string
	Description string
	Actions     []string
	Priority    string
}

// Category groups questions sharing a security theme
type Category struct {
	ID             types.CategoryID
	Name           string
	Weight         float64 // Used by the weighted-category scheme only
	Recommendation *Recommendation
}

// RiskTier is an inclusive band of overall scores
type RiskTier struct {
	Min            int
	Max            int
	Label          string
	Color          string
	Urgency        string
	CostMultiplier float64
	Summary        string // text/template source rendered with .Organization and .Score
}

// Contains reports whether the score is inside the tier
func (t RiskTier) Contains(score int) bool {
	return score >= t.Min && score <= t.Max
}

// Scheme is the scoring scheme variant and its declared domains
type Scheme struct {
	Kind               types.SchemeKind
	Polarity           types.Polarity
	ScoreMin           int
	ScoreMax           int
	QuestionMin        int
	QuestionMax        int
	RankOrder          types.RankOrder
	WeakAreaCount      int
	RenormalizeMissing bool
}

// Scale maps a fraction in [0,1] linearly onto the question domain and rounds once
func (s Scheme) Scale(frac float64) int {
	frac = math.Max(0, math.Min(1, frac))
	return int(math.Round(float64(s.QuestionMin) + frac*float64(s.QuestionMax-s.QuestionMin)))
}

// OrdinalIndex maps the zero-based index i of n ordered options onto the question domain
func (s Scheme) OrdinalIndex(i, n int) int {
	if n <= 1 {
		return s.QuestionMax
	}
	return s.Scale(float64(i) / float64(n-1))
}

// FewerIsSafer scores k selections out of m options by the share left unselected.
// Inverted mirrors the rounded score so that more selections score higher.
func (s Scheme) FewerIsSafer(k, m int, inverted bool) int {
	if m <= 0 {
		return s.QuestionMin
	}
	v := s.Scale(1 - float64(k)/float64(m))
	if inverted {
		v = s.QuestionMax + s.QuestionMin - v
	}
	return v
}

// Midpoint returns the middle of the question domain
func (s Scheme) Midpoint() int {
	return s.Scale(0.5)
}

// ClampQuestion bounds a question score into the question domain
func (s Scheme) ClampQuestion(points int) int {
	return min(max(points, s.QuestionMin), s.QuestionMax)
}

// ClampScore bounds an overall score into the score domain
func (s Scheme) ClampScore(score int) int {
	return min(max(score, s.ScoreMin), s.ScoreMax)
}

// PercentilePoint is the minimum score needed to reach a percentile
type PercentilePoint struct {
	Percentile int
	Score      int
}

// Benchmark holds industry reference data for comparison
type Benchmark struct {
	Overall        int
	DefaultAverage int
	Averages       map[types.CategoryID]int
	Percentiles    []PercentilePoint // Ascending
}

// Average returns the category average, or the default when the category has none
func (b *Benchmark) Average(id types.CategoryID) int {
	if v, ok := b.Averages[id]; ok {
		return v
	}
	return b.DefaultAverage
}

// ReportSettings configures report content derived from a catalog
type ReportSettings struct {
	OrgSizeQuestion    types.QuestionID
	FallbackCategories []types.CategoryID
}

// Catalog is the versioned, read-only question set with its scoring configuration
type Catalog struct {
	Name       string
	Version    string
	Title      string
	Scheme     Scheme
	Categories []Category
	Questions  []Question
	Tiers      []RiskTier
	Benchmark  *Benchmark
	Report     ReportSettings
}

// ByID returns the question with the given identifier
func (c *Catalog) ByID(id types.QuestionID) (*Question, error) {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i], nil
		}
	}
	return nil, goerr.Wrap(ErrQuestionNotFound, "question not found", goerr.V(QuestionIDKey, id))
}

// Category returns the category with the given identifier
func (c *Catalog) Category(id types.CategoryID) (*Category, error) {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i], nil
		}
	}
	return nil, goerr.Wrap(ErrCategoryNotFound, "category not found", goerr.V(CategoryIDKey, id))
}

// InCategory returns the questions of a category in catalog order
func (c *Catalog) InCategory(id types.CategoryID) []*Question {
	var result []*Question
	for i := range c.Questions {
		if c.Questions[i].Category == id {
			result = append(result, &c.Questions[i])
		}
	}
	return result
}

// AllScoredQuestions returns every scored question in catalog order
func (c *Catalog) AllScoredQuestions() []*Question {
	var result []*Question
	for i := range c.Questions {
		if c.Questions[i].Scored {
			result = append(result, &c.Questions[i])
		}
	}
	return result
}

// MaxScoreFor returns the highest points an answer to the question can produce
func (c *Catalog) MaxScoreFor(q *Question) int {
	values := c.possibleScores(q)
	result := values[0]
	for _, v := range values[1:] {
		result = max(result, v)
	}
	return result
}

// MinScoreFor returns the lowest points an answer to the question can produce
func (c *Catalog) MinScoreFor(q *Question) int {
	values := c.possibleScores(q)
	result := values[0]
	for _, v := range values[1:] {
		result = min(result, v)
	}
	return result
}

// possibleScores enumerates every score a valid answer can produce.
// The zero-selection score of multi-choice rules is part of the domain.
func (c *Catalog) possibleScores(q *Question) []int {
	s := c.Scheme
	if !q.Scored {
		return []int{0}
	}

	switch q.Rule {
	case types.ScoringRuleOrdinalIndex:
		n := len(q.Options)
		if n <= 1 {
			return []int{s.OrdinalIndex(0, n)}
		}
		values := make([]int, n)
		for i := range n {
			values[i] = s.OrdinalIndex(i, n)
		}
		return values

	case types.ScoringRuleOrdinalPoints:
		values := make([]int, 0, len(q.Options))
		for _, opt := range q.Options {
			values = append(values, s.ClampQuestion(opt.Points))
		}
		if len(values) == 0 {
			return []int{0}
		}
		return values

	case types.ScoringRuleMultiFewerIsSafer:
		values := []int{s.ClampQuestion(q.EmptyScore)}
		m := len(q.Options)
		for k := 1; k <= m; k++ {
			values = append(values, s.FewerIsSafer(k, m, q.Inverted))
		}
		return values

	case types.ScoringRuleMultiBucket:
		values := []int{s.ClampQuestion(q.EmptyScore)}
		for _, b := range q.Buckets {
			values = append(values, s.ClampQuestion(b.Points))
		}
		return values

	case types.ScoringRuleBinary:
		return []int{s.QuestionMin, s.QuestionMax, s.Midpoint()}

	default:
		return []int{0}
	}
}
