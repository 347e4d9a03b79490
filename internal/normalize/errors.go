package normalize

import "fmt"

// ErrorKind classifies why a response could not be turned into questions.
type ErrorKind int

const (
	// NoArrayFound means the text contains no '['.
	NoArrayFound ErrorKind = iota
	// NoArrayEnd means an array starts but never closes.
	NoArrayEnd
	// MalformedJSON means the array failed to parse even after repair.
	MalformedJSON
	// NotAList means the parsed value is not a JSON array.
	NotAList
	// EmptyList means the array has no elements.
	EmptyList
)

func (k ErrorKind) String() string {
	switch k {
	case NoArrayFound:
		return "no array found"
	case NoArrayEnd:
		return "no array end"
	case MalformedJSON:
		return "malformed json"
	case NotAList:
		return "not a list"
	case EmptyList:
		return "empty list"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// NormalizationError is returned when the raw text cannot yield any
// question.
type NormalizationError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *NormalizationError) Error() string {
	msg := "normalize questions: " + e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NormalizationError) Unwrap() error { return e.Err }

// WarningKind classifies a non-fatal normalization finding.
type WarningKind int

const (
	// PartialResult means fewer questions came back than were requested.
	PartialResult WarningKind = iota
	// FieldCoerced means a field was missing or invalid and got a default.
	FieldCoerced
)

func (k WarningKind) String() string {
	switch k {
	case PartialResult:
		return "partial result"
	case FieldCoerced:
		return "field coerced"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a non-fatal finding. Index is the 0-based question position,
// or -1 for warnings about the whole list.
type Warning struct {
	Kind   WarningKind
	Index  int
	Field  string
	Detail string
}

func (w Warning) String() string {
	if w.Index < 0 {
		return w.Detail
	}
	if w.Field == "" {
		return fmt.Sprintf("question %d: %s", w.Index+1, w.Detail)
	}
	return fmt.Sprintf("question %d: %s: %s", w.Index+1, w.Field, w.Detail)
}
