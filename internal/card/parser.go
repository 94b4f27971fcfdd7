package card

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cardkit-labs/cardkit/internal/logging"
	"github.com/cardkit-labs/cardkit/internal/registry"
	"github.com/cardkit-labs/cardkit/internal/schemaver"
)

// Parser builds Cards from documents, resolving every node's type through
// its registries.
type Parser struct {
	Elements *registry.TypeRegistry[Element]
	Actions  *registry.TypeRegistry[Action]

	// DefaultVersion is used for documents without a version field.
	DefaultVersion schemaver.Version
	// MaxVersion caps the document version. The zero value means no cap.
	MaxVersion schemaver.Version
	// Strict turns the first skipped or replaced node into a *ParseError.
	Strict bool
}

// NewParser returns a lenient Parser over the registries of s.
func NewParser(s *Session) *Parser {
	return &Parser{
		Elements:       s.Elements,
		Actions:        s.Actions,
		DefaultVersion: schemaver.Oldest,
	}
}

// Result is the outcome of a successful parse.
type Result struct {
	Card *Card
	// Version is the version the document was parsed at.
	Version schemaver.Version
	Events  []ParseEvent
}

// ParseFile reads and parses the card at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	res, err := p.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("parsing card %s: %w", path, err)
	}
	return res, nil
}

// Parse parses a JSON or YAML card document.
//
// Unknown types and types newer than the document version are replaced by
// UnknownElement/UnknownAction stand-ins and reported as events. In strict
// mode the first such event is returned as a *ParseError instead.
func (p *Parser) Parse(ctx context.Context, data []byte) (*Result, error) {
	root, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if t, _ := root["type"].(string); t != TypeAdaptiveCard {
		return nil, fmt.Errorf("%w: type is %q", ErrNotACard, t)
	}

	s := &parseState{
		parser: p,
		logger: logging.FromContext(ctx),
	}
	s.version = s.documentVersion(root)

	c := s.parseCardBody(root, "")
	c.Version = s.version

	if s.err != nil {
		return nil, s.err
	}
	s.logger.Debug("Parsed card.", "version", s.version.String(), "elements", len(c.Body), "events", len(s.events))
	return &Result{Card: c, Version: s.version, Events: s.events}, nil
}

// parseState carries per-document state through one Parse call.
type parseState struct {
	parser  *Parser
	logger  *slog.Logger
	version schemaver.Version
	events  []ParseEvent
	err     error
}

func (s *parseState) report(kind EventKind, path, typeName, msg string) {
	ev := ParseEvent{Path: path, Kind: kind, TypeName: typeName, Message: msg}
	s.events = append(s.events, ev)
	s.logger.Debug("Card parse event.", "kind", string(kind), "path", path, "type", typeName, "message", msg)

	if sentinel, ok := kindErrors[kind]; ok && s.parser.Strict && s.err == nil {
		s.err = &ParseError{Event: ev, Err: sentinel}
	}
}

func (s *parseState) documentVersion(root map[string]any) schemaver.Version {
	v := s.parser.DefaultVersion
	switch raw := root["version"].(type) {
	case nil:
	case string:
		parsed, err := schemaver.Parse(raw)
		if err != nil {
			s.report(InvalidProperty, "/version", TypeAdaptiveCard, err.Error())
			break
		}
		v = parsed
	default:
		s.report(InvalidProperty, "/version", TypeAdaptiveCard, fmt.Sprintf("version must be a string, got %T", raw))
	}

	if maxV := s.parser.MaxVersion; !maxV.IsZero() && v.CompareTo(maxV) > 0 {
		s.report(VersionClamped, "/version", TypeAdaptiveCard,
			fmt.Sprintf("document version %s is newer than supported version %s", v, maxV))
		v = maxV
	}
	return v
}

func (s *parseState) parseCardBody(node map[string]any, path string) *Card {
	c := &Card{}
	if err := decodeProperties(node, c); err != nil {
		s.report(InvalidProperty, path, TypeAdaptiveCard, err.Error())
	}
	c.Body = s.parseElements(node["body"], path+"/body")
	c.Actions = s.parseActions(node["actions"], path+"/actions")
	return c
}

// childParser is implemented by types that own nested collections.
type childParser interface {
	parseChildren(s *parseState, node map[string]any, path string)
}

func (s *parseState) parseElements(value any, path string) []Element {
	return parseCollection(s, s.parser.Elements, value, path, newUnknownElement)
}

func (s *parseState) parseActions(value any, path string) []Action {
	return parseCollection(s, s.parser.Actions, value, path, newUnknownAction)
}

// parseSingleAction parses a selectAction-style property holding one action.
func (s *parseState) parseSingleAction(value any, path string) Action {
	if value == nil {
		return nil
	}
	node, ok := value.(map[string]any)
	if !ok {
		s.report(InvalidProperty, path, "", "action must be an object")
		return nil
	}
	a, ok := parseNode(s, s.parser.Actions, node, path, false, newUnknownAction)
	if !ok {
		return nil
	}
	return a
}

func newUnknownElement(typeName string, node map[string]any) Element {
	return &UnknownElement{TypeName: typeName, Properties: node}
}

func newUnknownAction(typeName string, node map[string]any) Action {
	return &UnknownAction{TypeName: typeName, Properties: node}
}

// parseCollection parses a property that holds an array of typed nodes or,
// for types that allow it, a single node.
func parseCollection[T registry.Typed](
	s *parseState,
	reg *registry.TypeRegistry[T],
	value any,
	path string,
	unknown func(string, map[string]any) T,
) []T {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		if item, ok := parseNode(s, reg, v, path, true, unknown); ok {
			return []T{item}
		}
		return nil
	case []any:
		out := make([]T, 0, len(v))
		for i, raw := range v {
			itemPath := indexPath(path, i)
			node, ok := raw.(map[string]any)
			if !ok {
				s.report(InvalidProperty, itemPath, "", fmt.Sprintf("expected an object, got %T", raw))
				continue
			}
			if item, ok := parseNode(s, reg, node, itemPath, false, unknown); ok {
				out = append(out, item)
			}
		}
		return out
	default:
		s.report(InvalidProperty, path, "", fmt.Sprintf("expected an array or an object, got %T", value))
		return nil
	}
}

// parseNode resolves one node through reg. singleton reports whether the
// node appeared alone where an array was expected.
func parseNode[T registry.Typed](
	s *parseState,
	reg *registry.TypeRegistry[T],
	node map[string]any,
	path string,
	singleton bool,
	unknown func(string, map[string]any) T,
) (T, bool) {
	var zero T

	typeName, _ := node["type"].(string)
	if typeName == "" {
		s.report(InvalidProperty, path, "", "missing type")
		return zero, false
	}

	registration, known := reg.FindByName(typeName)
	if known {
		behavior := registration.SingletonBehavior
		if singleton && !behavior.AllowsSingleton() {
			s.report(SingletonNotAllowed, path, typeName,
				fmt.Sprintf("%s cannot be used as a singleton", typeName))
			return zero, false
		}
		if !singleton && !behavior.AllowsCollection() {
			s.report(SingletonRequired, path, typeName,
				fmt.Sprintf("%s is only valid as a singleton", typeName))
			return zero, false
		}
	}

	item, ok := reg.CreateInstance(typeName, s.version)
	if !ok {
		if known {
			s.report(VersionTooNew, path, typeName,
				fmt.Sprintf("%s requires schema version %s, document is %s", typeName, registration.SchemaVersion, s.version))
		} else {
			s.report(UnknownType, path, typeName, fmt.Sprintf("unknown type %s", typeName))
		}
		if s.parser.Strict {
			return zero, false
		}
		item = unknown(typeName, node)
	}

	populate(s, item, node, path, typeName)
	return item, true
}

// parseOwned parses an array of nodes whose type is fixed by the parent
// (ColumnSet columns, Table rows, Carousel pages, ...).
func parseOwned[T registry.Typed](s *parseState, value any, path string, newItem func() T) []T {
	if value == nil {
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		s.report(InvalidProperty, path, "", fmt.Sprintf("expected an array, got %T", value))
		return nil
	}
	out := make([]T, 0, len(items))
	for i, raw := range items {
		itemPath := indexPath(path, i)
		node, ok := raw.(map[string]any)
		if !ok {
			s.report(InvalidProperty, itemPath, "", fmt.Sprintf("expected an object, got %T", raw))
			continue
		}
		item := newItem()
		populate(s, item, node, itemPath, item.JSONTypeName())
		out = append(out, item)
	}
	return out
}

func populate(s *parseState, item any, node map[string]any, path, typeName string) {
	if err := decodeProperties(node, item); err != nil {
		s.report(InvalidProperty, path, typeName, err.Error())
	}
	if cp, ok := item.(childParser); ok {
		cp.parseChildren(s, node, path)
	}
}
