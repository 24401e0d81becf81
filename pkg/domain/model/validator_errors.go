package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	// ErrValidation is returned when a response set has one or more faults
	ErrValidation = goerr.New("response set is invalid")
	// ErrMalformedResponseSet means the caller passed something that is not a response set at all
	ErrMalformedResponseSet = goerr.New("malformed response set")
)

// Context keys for error values
const (
	QuestionIDKey   = "question_id"
	ActualTypeKey   = "actual_type"
	OptionIDKey     = "option_id"
	FaultsKey       = "faults"
	FaultCountKey   = "fault_count"
	AssessmentIDKey = "assessment_id"
)
