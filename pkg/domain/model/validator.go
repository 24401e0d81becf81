package model

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// FaultKind classifies a validation fault
type FaultKind string

const (
	FaultMissingRequired FaultKind = "missing_required"
	FaultInvalidOption   FaultKind = "invalid_option"
	FaultEmptySelection  FaultKind = "empty_selection"
)

// Fault is one problem found in a response set
type Fault struct {
	QuestionID types.QuestionID `json:"question_id"`
	Kind       FaultKind        `json:"kind"`
	Value      any              `json:"value,omitempty"`
	Message    string           `json:"message"`
}

func (f Fault) String() string {
	if f.Value != nil {
		return fmt.Sprintf("%s: %s (%v)", f.QuestionID, f.Message, f.Value)
	}
	return fmt.Sprintf("%s: %s", f.QuestionID, f.Message)
}

// ValidationResult holds every fault of a response set in catalog order
type ValidationResult struct {
	Faults []Fault `json:"faults"`
}

// Valid reports whether no fault was found
func (r *ValidationResult) Valid() bool {
	return len(r.Faults) == 0
}

// Err returns ErrValidation carrying the faults, or nil when the result is valid
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return goerr.Wrap(ErrValidation, "response set has faults",
		goerr.V(FaultsKey, r.Faults),
		goerr.V(FaultCountKey, len(r.Faults)))
}

// FaultsOf extracts the faults carried by an ErrValidation error
func FaultsOf(err error) []Fault {
	if !errors.Is(err, ErrValidation) {
		return nil
	}
	var ge *goerr.Error
	if !errors.As(err, &ge) {
		return nil
	}
	faults, _ := ge.Values()[FaultsKey].([]Fault)
	return faults
}

// ResponseValidator checks response sets against a question catalog
type ResponseValidator struct {
	catalog *config.Catalog
}

// NewResponseValidator creates a new ResponseValidator for the catalog
func NewResponseValidator(catalog *config.Catalog) *ResponseValidator {
	return &ResponseValidator{catalog: catalog}
}

// Validate collects all faults of the response set. It never stops at the first one.
func (v *ResponseValidator) Validate(rs ResponseSet) *ValidationResult {
	result := &ValidationResult{}

	for i := range v.catalog.Questions {
		q := &v.catalog.Questions[i]
		value, ok := rs.Get(q.ID)
		if !ok {
			if q.Scored || q.Required {
				result.Faults = append(result.Faults, Fault{
					QuestionID: q.ID,
					Kind:       FaultMissingRequired,
					Message:    "answer is required",
				})
			}
			continue
		}

		switch q.Shape {
		case types.AnswerShapeSingleChoice:
			result.Faults = append(result.Faults, validateSingle(q, value)...)
		case types.AnswerShapeMultiChoice:
			result.Faults = append(result.Faults, validateMulti(q, value)...)
		}
	}

	return result
}

func validateSingle(q *config.Question, value any) []Fault {
	id, ok := AsSingle(value)
	if !ok {
		return []Fault{{
			QuestionID: q.ID,
			Kind:       FaultInvalidOption,
			Value:      value,
			Message:    fmt.Sprintf("answer must be a single option, got %T", value),
		}}
	}
	if q.OptionIndex(id) < 0 {
		return []Fault{{
			QuestionID: q.ID,
			Kind:       FaultInvalidOption,
			Value:      value,
			Message:    "unknown option",
		}}
	}
	return nil
}

func validateMulti(q *config.Question, value any) []Fault {
	ids, ok := AsMulti(value)
	if !ok {
		return []Fault{{
			QuestionID: q.ID,
			Kind:       FaultInvalidOption,
			Value:      value,
			Message:    fmt.Sprintf("answer must be a list of options, got %T", value),
		}}
	}
	if len(ids) == 0 {
		return []Fault{{
			QuestionID: q.ID,
			Kind:       FaultEmptySelection,
			Message:    "at least one option must be selected",
		}}
	}

	var faults []Fault
	for _, id := range ids {
		if q.OptionIndex(id) < 0 {
			faults = append(faults, Fault{
				QuestionID: q.ID,
				Kind:       FaultInvalidOption,
				Value:      string(id),
				Message:    "unknown option",
			})
		}
	}
	return faults
}
