package types

// AnswerShape represents how a question accepts answers
type AnswerShape string

const (
	AnswerShapeSingleChoice AnswerShape = "single-choice"
	AnswerShapeMultiChoice  AnswerShape = "multi-choice"
)

// AllAnswerShapes returns all valid answer shapes
func AllAnswerShapes() []AnswerShape {
	return []AnswerShape{
		AnswerShapeSingleChoice,
		AnswerShapeMultiChoice,
	}
}

// IsValid checks if the answer shape is valid
func (s AnswerShape) IsValid() bool {
	switch s {
	case AnswerShapeSingleChoice, AnswerShapeMultiChoice:
		return true
	default:
		return false
	}
}

// String returns the string representation of the answer shape
func (s AnswerShape) String() string {
	return string(s)
}

// ScoringRule selects how a question's answer is converted into points
type ScoringRule string

const (
	// ScoringRuleOrdinalIndex maps the selected option index linearly onto the question range
	ScoringRuleOrdinalIndex ScoringRule = "ordinal-index"
	// ScoringRuleOrdinalPoints returns the explicit points stored on the selected option
	ScoringRuleOrdinalPoints ScoringRule = "ordinal-points"
	// ScoringRuleMultiFewerIsSafer scores by the share of options NOT selected
	ScoringRuleMultiFewerIsSafer ScoringRule = "multi-fewer-is-safer"
	// ScoringRuleMultiBucket scores by a table of selection count ranges
	ScoringRuleMultiBucket ScoringRule = "multi-bucket"
	// ScoringRuleBinary scores yes/no/unsure answers by polarity
	ScoringRuleBinary ScoringRule = "binary"
	// ScoringRuleNone is used for contextual questions that never enter the score
	ScoringRuleNone ScoringRule = "none"
)

// AllScoringRules returns all valid scoring rules
func AllScoringRules() []ScoringRule {
	return []ScoringRule{
		ScoringRuleOrdinalIndex,
		ScoringRuleOrdinalPoints,
		ScoringRuleMultiFewerIsSafer,
		ScoringRuleMultiBucket,
		ScoringRuleBinary,
		ScoringRuleNone,
	}
}

// IsValid checks if the scoring rule is valid
func (r ScoringRule) IsValid() bool {
	switch r {
	case ScoringRuleOrdinalIndex,
		ScoringRuleOrdinalPoints,
		ScoringRuleMultiFewerIsSafer,
		ScoringRuleMultiBucket,
		ScoringRuleBinary,
		ScoringRuleNone:
		return true
	default:
		return false
	}
}

// Shape returns the answer shape the rule applies to.
// ScoringRuleNone returns an empty shape because it accepts either.
func (r ScoringRule) Shape() AnswerShape {
	switch r {
	case ScoringRuleOrdinalIndex, ScoringRuleOrdinalPoints, ScoringRuleBinary:
		return AnswerShapeSingleChoice
	case ScoringRuleMultiFewerIsSafer, ScoringRuleMultiBucket:
		return AnswerShapeMultiChoice
	default:
		return ""
	}
}

// String returns the string representation of the scoring rule
func (r ScoringRule) String() string {
	return string(r)
}
