package card

import "github.com/cardkit-labs/cardkit/internal/registry"

// Element is a body element of a card.
type Element interface {
	registry.Typed
	Base() *ElementBase
}

// Action is an action attached to a card, an ActionSet or a selectAction.
type Action interface {
	registry.Typed
	ActionBase() *ActionProps
}

// ElementBase holds the properties shared by every element.
type ElementBase struct {
	ID        string `yaml:"id,omitempty" json:"id,omitempty"`
	IsVisible *bool  `yaml:"isVisible,omitempty" json:"isVisible,omitempty"`
	Separator bool   `yaml:"separator,omitempty" json:"separator,omitempty"`
	Spacing   string `yaml:"spacing,omitempty" json:"spacing,omitempty"`
	Height    string `yaml:"height,omitempty" json:"height,omitempty"`
}

// Base returns the shared element properties.
func (b *ElementBase) Base() *ElementBase { return b }

// Visible reports whether the element is visible. Elements are visible
// unless isVisible is explicitly false.
func (b *ElementBase) Visible() bool {
	return b.IsVisible == nil || *b.IsVisible
}

// ActionProps holds the properties shared by every action.
type ActionProps struct {
	ID      string `yaml:"id,omitempty" json:"id,omitempty"`
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	IconURL string `yaml:"iconUrl,omitempty" json:"iconUrl,omitempty"`
	Style   string `yaml:"style,omitempty" json:"style,omitempty"`
	Tooltip string `yaml:"tooltip,omitempty" json:"tooltip,omitempty"`
}

// ActionBase returns the shared action properties.
func (a *ActionProps) ActionBase() *ActionProps { return a }

// UnknownElement stands in for a node whose type could not be instantiated,
// either because it is not registered or because it is newer than the
// document version. The raw properties are kept as parsed.
type UnknownElement struct {
	ElementBase `yaml:",inline"`
	TypeName    string         `yaml:"-"`
	Properties  map[string]any `yaml:"-"`
}

func (e *UnknownElement) JSONTypeName() string { return e.TypeName }

// UnknownAction is the action counterpart of UnknownElement.
type UnknownAction struct {
	ActionProps `yaml:",inline"`
	TypeName    string         `yaml:"-"`
	Properties  map[string]any `yaml:"-"`
}

func (a *UnknownAction) JSONTypeName() string { return a.TypeName }

// container is implemented by elements that own child elements.
type container interface {
	Children() []Element
}
