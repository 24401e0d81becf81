package config

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// Validate checks the static invariants of the catalog. It is run once at load time and any
// error it returns is a configuration error that must stop startup.
func (c *Catalog) Validate() error {
	if c.Name == "" || c.Version == "" {
		return goerr.Wrap(ErrMissingName, "catalog name and version are required",
			goerr.V(CatalogNameKey, c.Name))
	}

	if err := c.Scheme.validate(); err != nil {
		return goerr.Wrap(err, "invalid scheme", goerr.V(CatalogNameKey, c.Name))
	}
	if err := c.validateCategories(); err != nil {
		return goerr.Wrap(err, "invalid categories", goerr.V(CatalogNameKey, c.Name))
	}
	if err := c.validateQuestions(); err != nil {
		return goerr.Wrap(err, "invalid questions", goerr.V(CatalogNameKey, c.Name))
	}
	if err := c.validateTiers(); err != nil {
		return goerr.Wrap(err, "invalid risk tiers", goerr.V(CatalogNameKey, c.Name))
	}
	if err := c.validateBenchmark(); err != nil {
		return goerr.Wrap(err, "invalid benchmark", goerr.V(CatalogNameKey, c.Name))
	}
	if err := c.validateReport(); err != nil {
		return goerr.Wrap(err, "invalid report settings", goerr.V(CatalogNameKey, c.Name))
	}

	return nil
}

func (s Scheme) validate() error {
	if !s.Kind.IsValid() {
		return goerr.Wrap(ErrInvalidScheme, "unknown scheme kind", goerr.V("kind", s.Kind))
	}
	if !s.Polarity.IsValid() {
		return goerr.Wrap(ErrInvalidScheme, "unknown polarity", goerr.V("polarity", s.Polarity))
	}
	if !s.RankOrder.IsValid() {
		return goerr.Wrap(ErrInvalidScheme, "unknown rank order", goerr.V("rank_order", s.RankOrder))
	}
	if s.ScoreMin >= s.ScoreMax {
		return goerr.Wrap(ErrInvalidScheme, "score domain is empty",
			goerr.V("score_min", s.ScoreMin), goerr.V("score_max", s.ScoreMax))
	}
	if s.QuestionMin >= s.QuestionMax {
		return goerr.Wrap(ErrInvalidScheme, "question domain is empty",
			goerr.V("question_min", s.QuestionMin), goerr.V("question_max", s.QuestionMax))
	}
	if s.WeakAreaCount < 0 {
		return goerr.Wrap(ErrInvalidScheme, "weak area count must not be negative",
			goerr.V("weak_area_count", s.WeakAreaCount))
	}
	return nil
}

func (c *Catalog) validateCategories() error {
	seen := make(map[types.CategoryID]bool)
	var sum float64
	for _, cat := range c.Categories {
		if err := cat.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category ID")
		}
		if seen[cat.ID] {
			return goerr.Wrap(ErrDuplicateCategoryID, "category defined twice", goerr.V(CategoryIDKey, cat.ID))
		}
		seen[cat.ID] = true

		if cat.Weight < 0 || cat.Weight > 1 {
			return goerr.Wrap(ErrWeightSum, "category weight must be between 0 and 1",
				goerr.V(CategoryIDKey, cat.ID), goerr.V("weight", cat.Weight))
		}
		sum += cat.Weight
	}

	if c.Scheme.Kind == types.SchemeWeightedCategory && math.Abs(sum-1) > WeightTolerance {
		return goerr.Wrap(ErrWeightSum, "category weights do not sum to 1", goerr.V(WeightSumKey, sum))
	}
	return nil
}

func (c *Catalog) validateQuestions() error {
	if len(c.AllScoredQuestions()) == 0 {
		return goerr.Wrap(ErrMissingOptions, "catalog has no scored question")
	}

	categories := make(map[types.CategoryID]bool)
	for _, cat := range c.Categories {
		categories[cat.ID] = true
	}

	seen := make(map[types.QuestionID]bool)
	for i := range c.Questions {
		q := &c.Questions[i]
		if err := q.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid question ID")
		}
		if seen[q.ID] {
			return goerr.Wrap(ErrDuplicateQuestionID, "question defined twice", goerr.V(QuestionIDKey, q.ID))
		}
		seen[q.ID] = true

		if !categories[q.Category] {
			return goerr.Wrap(ErrUnknownCategory, "category is not declared",
				goerr.V(QuestionIDKey, q.ID), goerr.V(CategoryIDKey, q.Category))
		}
		if err := c.validateQuestion(q); err != nil {
			return goerr.Wrap(err, "invalid question", goerr.V(QuestionIDKey, q.ID))
		}
	}
	return nil
}

func (c *Catalog) validateQuestion(q *Question) error {
	if !q.Shape.IsValid() {
		return goerr.Wrap(ErrInvalidRule, "unknown answer shape", goerr.V("shape", q.Shape))
	}
	if !q.Rule.IsValid() {
		return goerr.Wrap(ErrInvalidRule, "unknown scoring rule", goerr.V("rule", q.Rule))
	}
	if q.Scored && q.Rule == types.ScoringRuleNone {
		return goerr.Wrap(ErrInvalidRule, "scored question requires a scoring rule")
	}
	if !q.Scored && q.Rule != types.ScoringRuleNone {
		return goerr.Wrap(ErrInvalidRule, "unscored question must not have a scoring rule", goerr.V("rule", q.Rule))
	}
	if shape := q.Rule.Shape(); shape != "" && shape != q.Shape {
		return goerr.Wrap(ErrInvalidRule, "scoring rule does not match answer shape",
			goerr.V("rule", q.Rule), goerr.V("shape", q.Shape))
	}
	if q.Weight < 0 {
		return goerr.Wrap(ErrInvalidRule, "question weight must not be negative", goerr.V("weight", q.Weight))
	}

	if len(q.Options) == 0 {
		return goerr.Wrap(ErrMissingOptions, "question has no options")
	}
	optionIDs := make(map[types.OptionID]bool)
	for _, opt := range q.Options {
		if opt.ID == "" {
			return goerr.Wrap(ErrMissingOptions, "option ID is required")
		}
		if optionIDs[opt.ID] {
			return goerr.Wrap(ErrDuplicateOptionID, "option defined twice", goerr.V(OptionIDKey, opt.ID))
		}
		optionIDs[opt.ID] = true
	}

	s := c.Scheme
	inRange := func(points int) bool {
		return points >= s.QuestionMin && points <= s.QuestionMax
	}

	switch q.Rule {
	case types.ScoringRuleOrdinalPoints:
		for _, opt := range q.Options {
			if !inRange(opt.Points) {
				return goerr.Wrap(ErrPointsOutOfRange, "option points out of range",
					goerr.V(OptionIDKey, opt.ID), goerr.V("points", opt.Points))
			}
		}

	case types.ScoringRuleMultiFewerIsSafer:
		if !inRange(q.EmptyScore) {
			return goerr.Wrap(ErrPointsOutOfRange, "empty selection score out of range",
				goerr.V("empty_score", q.EmptyScore))
		}

	case types.ScoringRuleMultiBucket:
		if !inRange(q.EmptyScore) {
			return goerr.Wrap(ErrPointsOutOfRange, "empty selection score out of range",
				goerr.V("empty_score", q.EmptyScore))
		}
		if err := validateBuckets(q.Buckets, inRange); err != nil {
			return err
		}

	case types.ScoringRuleBinary:
		if err := validateBinary(q); err != nil {
			return err
		}
	}

	return nil
}

// validateBuckets requires contiguous buckets starting at one selection and ending with an
// open-ended catch-all, so that every count from 1 upward matches exactly one bucket.
func validateBuckets(buckets []Bucket, inRange func(int) bool) error {
	if len(buckets) == 0 {
		return goerr.Wrap(ErrBucketCoverage, "multi-bucket question has no buckets")
	}

	next := 1
	for i, b := range buckets {
		last := i == len(buckets)-1
		if b.Min != next {
			return goerr.Wrap(ErrBucketCoverage, "bucket does not start where the previous one ended",
				goerr.V(BucketIndexKey, i), goerr.V("expected_min", next), goerr.V("min", b.Min))
		}
		if last && b.Max != 0 {
			return goerr.Wrap(ErrBucketCoverage, "last bucket must be open-ended", goerr.V(BucketIndexKey, i))
		}
		if !last && b.Max < b.Min {
			return goerr.Wrap(ErrBucketCoverage, "bucket range is empty or open-ended before the last bucket",
				goerr.V(BucketIndexKey, i), goerr.V("min", b.Min), goerr.V("max", b.Max))
		}
		if !inRange(b.Points) {
			return goerr.Wrap(ErrPointsOutOfRange, "bucket points out of range",
				goerr.V(BucketIndexKey, i), goerr.V("points", b.Points))
		}
		next = b.Max + 1
	}
	return nil
}

func validateBinary(q *Question) error {
	if q.Binary == nil {
		return goerr.Wrap(ErrBinaryOptions, "binary answers are not configured")
	}
	if len(q.Options) != 3 {
		return goerr.Wrap(ErrBinaryOptions, "binary question needs three options", goerr.V("count", len(q.Options)))
	}
	for _, id := range []types.OptionID{q.Binary.Yes, q.Binary.No, q.Binary.Unsure} {
		if q.OptionIndex(id) < 0 {
			return goerr.Wrap(ErrBinaryOptions, "binary answer is not an option", goerr.V(OptionIDKey, id))
		}
	}
	if q.Binary.Yes == q.Binary.No || q.Binary.Yes == q.Binary.Unsure || q.Binary.No == q.Binary.Unsure {
		return goerr.Wrap(ErrBinaryOptions, "binary answers must be distinct")
	}
	return nil
}

// validateTiers requires tiers ordered by score with no gap and no overlap, spanning exactly
// the declared score domain.
func (c *Catalog) validateTiers() error {
	if len(c.Tiers) == 0 {
		return goerr.Wrap(ErrTierCoverage, "no risk tier is defined")
	}

	next := c.Scheme.ScoreMin
	for i, tier := range c.Tiers {
		if tier.Label == "" {
			return goerr.Wrap(ErrMissingName, "risk tier label is required", goerr.V(TierIndexKey, i))
		}
		if tier.Min != next {
			return goerr.Wrap(ErrTierCoverage, "risk tier leaves a gap or overlaps the previous one",
				goerr.V(TierIndexKey, i), goerr.V("expected_min", next), goerr.V("min", tier.Min))
		}
		if tier.Max < tier.Min {
			return goerr.Wrap(ErrTierCoverage, "risk tier range is empty",
				goerr.V(TierIndexKey, i), goerr.V("min", tier.Min), goerr.V("max", tier.Max))
		}
		if tier.CostMultiplier < 0 {
			return goerr.Wrap(ErrTierCoverage, "cost multiplier must not be negative", goerr.V(TierIndexKey, i))
		}
		next = tier.Max + 1
	}

	if last := c.Tiers[len(c.Tiers)-1]; last.Max != c.Scheme.ScoreMax {
		return goerr.Wrap(ErrTierCoverage, "risk tiers do not reach the top of the score domain",
			goerr.V("max", last.Max), goerr.V("score_max", c.Scheme.ScoreMax))
	}
	return nil
}

func (c *Catalog) validateBenchmark() error {
	b := c.Benchmark
	if b == nil {
		return nil
	}
	for id := range b.Averages {
		if _, err := c.Category(id); err != nil {
			return goerr.Wrap(ErrInvalidBenchmark, "benchmark refers to unknown category", goerr.V(CategoryIDKey, id))
		}
	}

	prev := PercentilePoint{Percentile: 0, Score: c.Scheme.ScoreMin}
	for _, p := range b.Percentiles {
		if p.Percentile <= prev.Percentile || p.Percentile >= 100 {
			return goerr.Wrap(ErrInvalidBenchmark, "percentiles must ascend within (0, 100)",
				goerr.V("percentile", p.Percentile))
		}
		if p.Score <= prev.Score || p.Score >= c.Scheme.ScoreMax {
			return goerr.Wrap(ErrInvalidBenchmark, "percentile scores must ascend within the score domain",
				goerr.V("percentile", p.Percentile), goerr.V("score", p.Score))
		}
		prev = p
	}
	return nil
}

func (c *Catalog) validateReport() error {
	if id := c.Report.OrgSizeQuestion; id != "" {
		if _, err := c.ByID(id); err != nil {
			return goerr.Wrap(ErrInvalidReport, "organization size question is not in the catalog",
				goerr.V(QuestionIDKey, id))
		}
	}
	for _, id := range c.Report.FallbackCategories {
		if _, err := c.Category(id); err != nil {
			return goerr.Wrap(ErrInvalidReport, "fallback recommendation refers to unknown category",
				goerr.V(CategoryIDKey, id))
		}
	}
	return nil
}
