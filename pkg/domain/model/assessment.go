package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// AssessmentID identifies a submitted assessment
type AssessmentID string

// NewAssessmentID generates a random assessment ID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New().String())
}

func (id AssessmentID) String() string {
	return string(id)
}

// Assessment is a submitted response set together with the result it produced.
// Responses are stored verbatim so the result can be re-derived later.
type Assessment struct {
	ID             AssessmentID      `json:"id"`
	Organization   string            `json:"organization"`
	CatalogName    string            `json:"catalog_name"`
	CatalogVersion string            `json:"catalog_version"`
	Responses      ResponseSet       `json:"responses"`
	Result         *AssessmentResult `json:"result"`
	History        []RescoreRecord   `json:"history,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// QuestionScore is the scorer output for one question
type QuestionScore struct {
	QuestionID   types.QuestionID `json:"question_id"`
	Category     types.CategoryID `json:"category"`
	Scored       bool             `json:"scored"`
	Answered     bool             `json:"answered"`
	Points       int              `json:"points"`
	Contribution float64          `json:"contribution"`
	Defaulted    bool             `json:"defaulted,omitempty"`
}

// CategoryScore is the aggregate of the answered scored questions of a category
type CategoryScore struct {
	Category types.CategoryID `json:"category"`
	Name     string           `json:"name"`
	Score    float64          `json:"score"`
	Weight   float64          `json:"weight,omitempty"`
	Answered int              `json:"answered"`
	Total    int              `json:"total"`
}

// WeakArea is a question that hurts the posture the most
type WeakArea struct {
	QuestionID   types.QuestionID `json:"question_id"`
	Category     types.CategoryID `json:"category"`
	Points       int              `json:"points"`
	Contribution float64          `json:"contribution"`

	// Question is resolved from the catalog at scoring time and is not persisted
	Question *config.Question `json:"-" firestore:"-"`
}

// AssessmentResult is the deterministic output of the scoring engine
type AssessmentResult struct {
	Scheme         types.SchemeKind `json:"scheme"`
	CatalogName    string           `json:"catalog_name"`
	CatalogVersion string           `json:"catalog_version"`
	TotalScore     int              `json:"total_score"`
	RiskLevel      string           `json:"risk_level"`
	RiskColor      string           `json:"risk_color"`
	Urgency        string           `json:"urgency"`
	CategoryScores []CategoryScore  `json:"category_scores"`
	QuestionScores []QuestionScore  `json:"question_scores"`
	WeakestAreas   []WeakArea       `json:"weakest_areas"`
}

// DefaultedQuestions returns the questions whose answers could not be interpreted and fell back to the minimum
func (r *AssessmentResult) DefaultedQuestions() []types.QuestionID {
	var ids []types.QuestionID
	for _, qs := range r.QuestionScores {
		if qs.Defaulted {
			ids = append(ids, qs.QuestionID)
		}
	}
	return ids
}

// RescoreRecord is the audit entry written when an assessment is re-scored
type RescoreRecord struct {
	FromVersion   string    `json:"from_version"`
	ToVersion     string    `json:"to_version"`
	PreviousScore int       `json:"previous_score"`
	PreviousLevel string    `json:"previous_level"`
	NewScore      int       `json:"new_score"`
	NewLevel      string    `json:"new_level"`
	Reason        string    `json:"reason"`
	At            time.Time `json:"at"`
}

// Clone returns a copy that shares no slices or maps with the original
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	cloned := *a
	cloned.Responses = a.Responses.Clone()
	cloned.Result = a.Result.Clone()
	cloned.History = slices.Clone(a.History)
	return &cloned
}

// Clone returns a copy that shares no slices with the original
func (r *AssessmentResult) Clone() *AssessmentResult {
	if r == nil {
		return nil
	}
	cloned := *r
	cloned.CategoryScores = slices.Clone(r.CategoryScores)
	cloned.QuestionScores = slices.Clone(r.QuestionScores)
	cloned.WeakestAreas = slices.Clone(r.WeakestAreas)
	return &cloned
}

// Latest returns the most recent rescore record, or nil if the assessment was never re-scored
func (a *Assessment) Latest() *RescoreRecord {
	if len(a.History) == 0 {
		return nil
	}
	return &a.History[len(a.History)-1]
}
