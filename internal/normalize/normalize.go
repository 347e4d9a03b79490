// Package normalize turns the raw text of a questions request into a
// list of well-formed multiple-choice questions.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OptionCount is the number of options every question carries at least.
const OptionCount = 4

// fallbackType is used when no question types were selected.
const fallbackType = "General"

// Question is one multiple-choice question. Options has at least
// OptionCount entries and Correct is in [0, OptionCount-1].
type Question struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	return q.Options[q.Correct]
}

// Result is a normalized question list plus what had to be fixed.
type Result struct {
	Questions []Question
	Warnings  []Warning
}

// Partial reports whether fewer questions came back than were requested.
func (r *Result) Partial() bool {
	for _, w := range r.Warnings {
		if w.Kind == PartialResult {
			return true
		}
	}
	return false
}

// Questions extracts, repairs and validates a question array from raw
// model output. allowedTypes restricts the type field; requested is the
// count that was asked for. The list is never truncated or padded.
func Questions(raw string, allowedTypes []string, requested int) (*Result, error) {
	candidate, err := extractArray(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}

	pv, err := parse(candidate)
	if err != nil {
		return nil, err
	}
	if err := checkList(pv); err != nil {
		return nil, err
	}

	res := &Result{}
	if n := len(pv.elements); n < requested {
		res.Warnings = append(res.Warnings, Warning{
			Kind:   PartialResult,
			Index:  -1,
			Detail: fmt.Sprintf("only %d questions generated (expected %d)", n, requested),
		})
	}

	sch, err := compiledSchema(allowedTypes)
	if err != nil {
		return nil, fmt.Errorf("normalize questions: %w", err)
	}

	res.Questions = make([]Question, len(pv.elements))
	for i, el := range pv.elements {
		b := elementBuilder{index: i, allowed: allowedTypes, issues: elementIssues(sch, el)}
		res.Questions[i] = b.build(el)
		res.Warnings = append(res.Warnings, b.warnings...)
	}
	return res, nil
}

func checkList(pv parsedValue) error {
	if pv.kind != arrayValue {
		return &NormalizationError{Kind: NotAList, Detail: "got " + jsonKind(pv.raw)}
	}
	if len(pv.elements) == 0 {
		return &NormalizationError{Kind: EmptyList}
	}
	return nil
}

// elementBuilder fills in one question. Only fields the schema flagged
// in issues are repaired; every repair is recorded as a warning.
type elementBuilder struct {
	index    int
	allowed  []string
	issues   map[string]string
	warnings []Warning
}

func (b *elementBuilder) coerce(field, format string, args ...any) {
	b.warnings = append(b.warnings, Warning{
		Kind:   FieldCoerced,
		Index:  b.index,
		Field:  field,
		Detail: fmt.Sprintf(format, args...),
	})
}

// repair records a coercion of field, prefixed with the schema violation
// that triggered it.
func (b *elementBuilder) repair(field, format string, args ...any) {
	issue := b.issues[field]
	sep := "; "
	if issue == issueMissing {
		sep = ", "
	}
	b.coerce(field, "%s", issue+sep+fmt.Sprintf(format, args...))
}

func (b *elementBuilder) build(el any) Question {
	obj, ok := el.(map[string]any)
	if !ok {
		issue := b.issues[""]
		if issue == "" {
			issue = "element is " + jsonKind(el)
		}
		b.coerce("", "%s, using defaults", issue)
		obj = map[string]any{}
		b.issues = map[string]string{
			"type":     issueMissing,
			"question": issueMissing,
			"options":  issueMissing,
			"correct":  issueMissing,
		}
	}
	return Question{
		Type:     b.questionType(obj["type"]),
		Question: b.questionText(obj["question"]),
		Options:  b.options(obj["options"]),
		Correct:  b.correct(obj["correct"]),
	}
}

func (b *elementBuilder) defaultType() string {
	if len(b.allowed) > 0 {
		return b.allowed[0]
	}
	return fallbackType
}

func (b *elementBuilder) questionType(v any) string {
	s, isString := v.(string)
	if _, bad := b.issues["type"]; !bad {
		return s
	}

	def := b.defaultType()
	if !isString {
		b.repair("type", "using %q", def)
		return def
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		b.coerce("type", "empty, using %q", def)
		return def
	}
	if len(b.allowed) == 0 {
		return s
	}
	for _, a := range b.allowed {
		if strings.EqualFold(trimmed, a) {
			b.coerce("type", "%q normalized to %q", s, a)
			return a
		}
	}
	b.coerce("type", "%q is not a selected type, using %q", s, def)
	return def
}

func (b *elementBuilder) questionText(v any) string {
	s, _ := v.(string)
	if _, bad := b.issues["question"]; !bad {
		return s
	}
	if v == nil {
		placeholder := fmt.Sprintf("Question %d", b.index+1)
		b.repair("question", "using %q", placeholder)
		return placeholder
	}
	b.repair("question", "converted to text")
	return stringify(v)
}

func (b *elementBuilder) options(v any) []string {
	list, isList := v.([]any)
	if _, bad := b.issues["options"]; !bad {
		opts := make([]string, len(list))
		for j, o := range list {
			opts[j], _ = o.(string)
		}
		return opts
	}
	if !isList {
		b.repair("options", "using placeholders")
		return defaultOptions()
	}

	opts := make([]string, 0, max(len(list), OptionCount))
	for j, o := range list {
		s, ok := o.(string)
		if !ok {
			b.coerce("options", "option %d is %s, converted to text", j+1, jsonKind(o))
			s = stringify(o)
		}
		opts = append(opts, s)
	}

	if len(opts) < OptionCount {
		b.coerce("options", "only %d options, padded to %d", len(opts), OptionCount)
		for k := 0; len(opts) < OptionCount; k++ {
			opts = append(opts, fmt.Sprintf("Option %c", 'E'+k))
		}
	}
	return opts
}

func (b *elementBuilder) correct(v any) int {
	if _, bad := b.issues["correct"]; bad {
		b.repair("correct", "using 0")
		return 0
	}
	// The schema accepts 2.0 as an integer; only plain literals index.
	n, _ := v.(json.Number)
	i, err := strconv.Atoi(n.String())
	if err != nil {
		b.coerce("correct", "%s is not an integer literal, using 0", n)
		return 0
	}
	return i
}

func defaultOptions() []string {
	return []string{"Option A", "Option B", "Option C", "Option D"}
}

// stringify renders a non-string JSON value as option or question text.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case json.Number, float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
