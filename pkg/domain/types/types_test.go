package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

func TestCategoryID_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      types.CategoryID
		wantErr bool
	}{
		{"valid lowercase", "data_sensitivity", false},
		{"valid single word", "encryption", false},
		{"valid with numbers", "vendor_2", false},
		{"empty", "", true},
		{"uppercase", "Data_Sensitivity", true},
		{"spaces", "data sensitivity", true},
		{"hyphen", "data-sensitivity", true},
		{"starting with underscore", "_data", true},
		{"ending with underscore", "data_", true},
		{"double underscore", "data__sensitivity", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("CategoryID.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestionID_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      types.QuestionID
		wantErr bool
	}{
		{"prefixed", "q11", false},
		{"numeric", "48", false},
		{"empty", "", true},
		{"uppercase", "Q1", true},
		{"space", "q 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("QuestionID.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScoringRule_Shape(t *testing.T) {
	tests := []struct {
		rule types.ScoringRule
		want types.AnswerShape
	}{
		{types.ScoringRuleOrdinalIndex, types.AnswerShapeSingleChoice},
		{types.ScoringRuleOrdinalPoints, types.AnswerShapeSingleChoice},
		{types.ScoringRuleBinary, types.AnswerShapeSingleChoice},
		{types.ScoringRuleMultiFewerIsSafer, types.AnswerShapeMultiChoice},
		{types.ScoringRuleMultiBucket, types.AnswerShapeMultiChoice},
		{types.ScoringRuleNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			gt.Value(t, tt.rule.Shape()).Equal(tt.want)
		})
	}
}

func TestScoringRule_IsValid(t *testing.T) {
	for _, r := range types.AllScoringRules() {
		gt.Bool(t, r.IsValid()).True()
	}
	gt.Bool(t, types.ScoringRule("weighted").IsValid()).False()
	gt.Bool(t, types.ScoringRule("").IsValid()).False()
}

func TestAnswerShape_IsValid(t *testing.T) {
	for _, s := range types.AllAnswerShapes() {
		gt.Bool(t, s.IsValid()).True()
	}
	gt.Bool(t, types.AnswerShape("select").IsValid()).False()
}

func TestSchemeKind_IsValid(t *testing.T) {
	gt.Bool(t, types.SchemeRawPoints.IsValid()).True()
	gt.Bool(t, types.SchemeWeightedCategory.IsValid()).True()
	gt.Bool(t, types.SchemeKind("hybrid").IsValid()).False()
}

func TestPolarityAndRankOrder_IsValid(t *testing.T) {
	gt.Bool(t, types.PolarityRisk.IsValid()).True()
	gt.Bool(t, types.PolarityReadiness.IsValid()).True()
	gt.Bool(t, types.Polarity("neutral").IsValid()).False()

	gt.Bool(t, types.RankHighestFirst.IsValid()).True()
	gt.Bool(t, types.RankLowestFirst.IsValid()).True()
	gt.Bool(t, types.RankOrder("random").IsValid()).False()
}
