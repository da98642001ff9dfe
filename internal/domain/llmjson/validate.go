package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
)

const (
	shapePreviewRunes = 1000
	parsePreviewRunes = 2000
)

// Shape describes the list a generated document must carry under Field.
// Lists longer than Max are truncated when Max is positive. Lists shorter than Min
// are rejected.
type Shape struct {
	Field string
	Min   int
	Max   int
}

var (
	// Itinerary requires a non-empty "itinerary" list.
	Itinerary = Shape{Field: "itinerary", Min: 1}
	// Suggestions requires exactly five "suggestions" after capping.
	Suggestions = Shape{Field: "suggestions", Min: 5, Max: 5}
)

// ParseError reports where decoding of the repaired text failed.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Validator decodes generated text after running it through a repair chain.
type Validator struct {
	chain []Strategy
}

// NewValidator builds a validator. Without strategies DefaultChain is used.
func NewValidator(chain ...Strategy) Validator {
	if len(chain) == 0 {
		chain = DefaultChain
	}
	return Validator{chain: chain}
}

// Decode repairs raw and decodes it as a JSON object.
func (v Validator) Decode(raw string) (map[string]json.RawMessage, error) {
	text := Repair(raw, v.chain)

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			parseErr := &ParseError{Offset: syntaxErr.Offset, Err: err}
			return nil, i18n.Error(apperrors.CodeMalformedOutput, i18n.KeyParseFailed, parseErr, err.Error()).
				WithDetail("parse_error_position", syntaxErr.Offset).
				WithDetail("raw_response_preview", Preview(raw, parsePreviewRunes))
		}
		// Valid JSON that is not an object has none of the required fields.
		return map[string]json.RawMessage{}, nil
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}

// List decodes raw and returns the elements of the list named by shape, verbatim.
func (v Validator) List(raw string, shape Shape) ([]json.RawMessage, error) {
	doc, err := v.Decode(raw)
	if err != nil {
		return nil, err
	}

	field, ok := doc[shape.Field]
	if !ok {
		return nil, shapeError(raw, i18n.KeyMissingField, shape.Field)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(field, &items); err != nil {
		return nil, shapeError(raw, i18n.KeyNotAList, shape.Field)
	}

	if shape.Max > 0 && len(items) > shape.Max {
		items = items[:shape.Max]
	}
	if len(items) < shape.Min {
		if len(items) == 0 && shape.Min <= 1 {
			return nil, shapeError(raw, i18n.KeyNotAList, shape.Field)
		}
		return nil, shapeError(raw, i18n.KeyTooFewItems, len(items)).
			WithDetail("received_count", len(items))
	}
	return items, nil
}

// Preview bounds raw to limit runes.
func Preview(raw string, limit int) string {
	runes := []rune(raw)
	if len(runes) <= limit {
		return raw
	}
	return string(runes[:limit])
}

func shapeError(raw string, key i18n.Key, args ...any) *apperrors.AppError {
	return i18n.Error(apperrors.CodeMalformedOutput, key, nil, args...).
		WithDetail("raw_response_preview", Preview(raw, shapePreviewRunes))
}
