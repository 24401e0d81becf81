package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// ResponseSet maps question identifiers to raw answers.
// A single-choice answer is a string and a multi-choice answer is a sequence of strings.
type ResponseSet map[string]any

// NewResponseSet converts a decoded document into a ResponseSet.
// Anything other than a mapping with string keys is a programming error.
func NewResponseSet(raw any) (ResponseSet, error) {
	switch v := raw.(type) {
	case ResponseSet:
		return v, nil

	case map[string]any:
		return ResponseSet(v), nil

	case map[string]string:
		rs := make(ResponseSet, len(v))
		for k, s := range v {
			rs[k] = s
		}
		return rs, nil

	case map[string][]string:
		rs := make(ResponseSet, len(v))
		for k, s := range v {
			rs[k] = s
		}
		return rs, nil

	case map[any]any:
		rs := make(ResponseSet, len(v))
		for k, val := range v {
			key, ok := k.(string)
			if !ok {
				return nil, goerr.Wrap(ErrMalformedResponseSet, "response key is not a string",
					goerr.V(ActualTypeKey, fmt.Sprintf("%T", k)))
			}
			rs[key] = val
		}
		return rs, nil

	default:
		return nil, goerr.Wrap(ErrMalformedResponseSet, "response set must be a mapping",
			goerr.V(ActualTypeKey, fmt.Sprintf("%T", raw)))
	}
}

// Get returns the answer to a question. Nil and empty string answers are absent.
func (rs ResponseSet) Get(id types.QuestionID) (any, bool) {
	v, ok := rs[string(id)]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && s == "" {
		return nil, false
	}
	return v, true
}

// Clone returns a shallow copy with sequences copied
func (rs ResponseSet) Clone() ResponseSet {
	if rs == nil {
		return nil
	}
	cloned := make(ResponseSet, len(rs))
	for k, v := range rs {
		switch s := v.(type) {
		case []string:
			cloned[k] = append([]string(nil), s...)
		case []any:
			cloned[k] = append([]any(nil), s...)
		default:
			cloned[k] = v
		}
	}
	return cloned
}

// AsSingle returns the option identifier of a single-choice answer
func AsSingle(v any) (types.OptionID, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return types.OptionID(s), true
}

// AsMulti returns the option identifiers of a multi-choice answer.
// A bare scalar is not a multi-choice answer.
func AsMulti(v any) ([]types.OptionID, bool) {
	switch s := v.(type) {
	case []string:
		ids := make([]types.OptionID, len(s))
		for i, id := range s {
			ids[i] = types.OptionID(id)
		}
		return ids, true

	case []types.OptionID:
		return s, true

	case []any:
		ids := make([]types.OptionID, len(s))
		for i, elem := range s {
			id, ok := elem.(string)
			if !ok {
				return nil, false
			}
			ids[i] = types.OptionID(id)
		}
		return ids, true

	default:
		return nil, false
	}
}
