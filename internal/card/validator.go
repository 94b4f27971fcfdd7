package card

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/card.schema.json
var schemaBytes []byte

var printer = message.NewPrinter(language.English)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/body/0/type")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

const schemaName = "card.schema.json"

// cardSchema compiles the embedded schema on first use.
var cardSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", schemaName, err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaName, doc); err != nil {
		return nil, fmt.Errorf("adding %s: %w", schemaName, err)
	}
	schema, err := c.Compile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", schemaName, err)
	}
	return schema, nil
})

// CheckSchema reports whether the embedded card schema compiles.
func CheckSchema() error {
	_, err := cardSchema()
	return err
}

// Validate checks a JSON or YAML card document against the card schema.
// Decoding and schema compilation failures are returned as errors; schema
// violations are reported in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := cardSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	instance, err := validationInstance(data)
	if err != nil {
		return nil, err
	}

	var ve *jsonschema.ValidationError
	switch err := schema.Validate(instance); {
	case err == nil:
		return &ValidationResult{Valid: true}, nil
	case errors.As(err, &ve):
		return &ValidationResult{Issues: extractIssues(ve)}, nil
	default:
		return nil, fmt.Errorf("validating card: %w", err)
	}
}

// validationInstance converts data into the value shape the validator
// expects. YAML documents are decoded and re-encoded as JSON first.
func validationInstance(data []byte) (any, error) {
	doc := bytes.TrimSpace(data)
	if len(doc) > 0 && doc[0] != '{' {
		root, err := decodeDocument(data)
		if err != nil {
			return nil, err
		}
		if doc, err = json.Marshal(root); err != nil {
			return nil, fmt.Errorf("converting YAML card to JSON: %w", err)
		}
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("decoding card JSON: %w", err)
	}
	return instance, nil
}

// ValidateFile reads a file and validates it against the card schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Validate(data)
}

// extractIssues flattens the ValidationError tree into leaf issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	c := issueCollector{seen: make(map[ValidationIssue]bool)}
	c.walk(ve)
	if len(c.issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return c.issues
}

// combinators only aggregate the results of their subschemas.
var combinators = map[string]bool{"": true, "$ref": true, "allOf": true, "anyOf": true, "oneOf": true}

type issueCollector struct {
	issues []ValidationIssue
	seen   map[ValidationIssue]bool
}

func (c *issueCollector) add(issue ValidationIssue) {
	if !c.seen[issue] {
		c.seen[issue] = true
		c.issues = append(c.issues, issue)
	}
}

func (c *issueCollector) walk(ve *jsonschema.ValidationError) {
	if oneOf, ok := ve.ErrorKind.(*kind.OneOf); ok && oneOf.Subschemas == nil {
		c.walkCollection(ve)
		return
	}
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			c.walk(cause)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}
	keyword := ""
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}
	if combinators[keyword] {
		return
	}
	c.add(ValidationIssue{
		Path:    pointer(ve.InstanceLocation),
		Message: ve.ErrorKind.LocalizedString(printer),
		Keyword: keyword,
	})
}

// walkCollection handles an element collection, which is either an array
// of elements or a single element. Branches that failed only because the
// value has the other shape are dropped; when every branch failed on shape
// the value is reported once as a collection of the wrong type.
func (c *issueCollector) walkCollection(ve *jsonschema.ValidationError) {
	var got string
	var rest []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		if t := shapeMismatch(cause, ve.InstanceLocation); t != nil {
			got = t.Got
			continue
		}
		rest = append(rest, cause)
	}
	if len(rest) == 0 {
		c.add(ValidationIssue{
			Path:    pointer(ve.InstanceLocation),
			Message: printer.Sprintf("got %s, want an array of elements or a single element", got),
			Keyword: "oneOf",
		})
		return
	}
	for _, cause := range rest {
		c.walk(cause)
	}
}

// shapeMismatch returns the type error when ve, through any $ref wrappers,
// only rejects the JSON type of the value at loc.
func shapeMismatch(ve *jsonschema.ValidationError, loc []string) *kind.Type {
	for {
		if !slices.Equal(ve.InstanceLocation, loc) {
			return nil
		}
		if t, ok := ve.ErrorKind.(*kind.Type); ok && len(ve.Causes) == 0 {
			return t
		}
		if len(ve.Causes) != 1 {
			return nil
		}
		ve = ve.Causes[0]
	}
}

func pointer(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	return "/" + strings.Join(loc, "/")
}
