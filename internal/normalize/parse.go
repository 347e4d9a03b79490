package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

type valueKind int

const (
	arrayValue valueKind = iota
	otherValue
)

// parsedValue is the decoded candidate: either an array of raw elements
// or some other JSON value that cannot hold questions.
type parsedValue struct {
	kind     valueKind
	elements []any
	raw      any
}

// decodeStrict parses exactly one JSON value. Numbers stay json.Number
// so integer literals can be told apart from floats.
func decodeStrict(s string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

// parse decodes the candidate, trying one repair pass on failure.
func parse(candidate string) (parsedValue, error) {
	text := candidate
	v, err := decodeStrict(text)
	if err != nil {
		text = repair(candidate)
		repaired, rerr := decodeStrict(text)
		if rerr != nil {
			return parsedValue{}, &NormalizationError{
				Kind:   MalformedJSON,
				Detail: err.Error(),
				Err:    rerr,
			}
		}
		v = repaired
	}

	if arr, ok := v.([]any); ok {
		return parsedValue{kind: arrayValue, elements: arr, raw: v}, nil
	}
	return parsedValue{kind: otherValue, raw: v}, nil
}
