package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

const questionSchemaURL = "schema://question.json"

// issueMissing marks a required field that is absent.
const issueMissing = "missing"

// questionSchema returns the schema one question element must satisfy.
// With allowed types the "type" field is an enum of them, otherwise any
// non-blank string.
func questionSchema(allowed []string) map[string]any {
	typeSchema := map[string]any{"type": "string", "pattern": `\S`}
	if len(allowed) > 0 {
		typeSchema = map[string]any{"type": "string", "enum": allowed}
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"type", "question", "options", "correct"},
		"properties": map[string]any{
			"type":     typeSchema,
			"question": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "array",
				"minItems": OptionCount,
				"items":    map[string]any{"type": "string"},
			},
			"correct": map[string]any{"type": "integer", "minimum": 0, "maximum": OptionCount - 1},
		},
	}
}

// compiled schemas keyed by the allowed-type list.
var schemaCache sync.Map

func compiledSchema(allowed []string) (*jsonschema.Schema, error) {
	key := strings.Join(allowed, "\x00")
	if sch, ok := schemaCache.Load(key); ok {
		return sch.(*jsonschema.Schema), nil
	}

	b, err := json.Marshal(questionSchema(allowed))
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(questionSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(questionSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	actual, _ := schemaCache.LoadOrStore(key, sch)
	return actual.(*jsonschema.Schema), nil
}

// elementIssues validates one element and returns the first schema
// violation per top-level field. The key "" holds a violation of the
// element itself, e.g. not being an object. A nil map means the element
// is valid.
func elementIssues(sch *jsonschema.Schema, el any) map[string]string {
	err := sch.Validate(el)
	if err == nil {
		return nil
	}
	issues := make(map[string]string)
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		issues[""] = err.Error()
		return issues
	}
	collectIssues(verr, issues)
	return issues
}

func collectIssues(e *jsonschema.ValidationError, issues map[string]string) {
	if len(e.Causes) > 0 {
		for _, c := range e.Causes {
			collectIssues(c, issues)
		}
		return
	}

	if req, ok := e.ErrorKind.(*kind.Required); ok && len(e.InstanceLocation) == 0 {
		for _, field := range req.Missing {
			issues[field] = issueMissing
		}
		return
	}

	field := ""
	if len(e.InstanceLocation) > 0 {
		field = e.InstanceLocation[0]
	}
	if _, seen := issues[field]; seen {
		return
	}
	issues[field] = leafMessage(e)
}

func leafMessage(e *jsonschema.ValidationError) string {
	if out := e.BasicOutput(); out != nil && out.Error != nil {
		return out.Error.String()
	}
	return e.Error()
}
