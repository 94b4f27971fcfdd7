package card

import "github.com/cardkit-labs/cardkit/internal/schemaver"

// TypeAdaptiveCard is the type of a card document root.
const TypeAdaptiveCard = "AdaptiveCard"

// Card is a parsed card document or a nested Action.ShowCard card.
type Card struct {
	Version      schemaver.Version `yaml:"-"`
	Schema       string            `yaml:"$schema,omitempty"`
	FallbackText string            `yaml:"fallbackText,omitempty"`
	Lang         string            `yaml:"lang,omitempty"`
	Speak        string            `yaml:"speak,omitempty"`
	Body         []Element         `yaml:"-"`
	Actions      []Action          `yaml:"-"`
}

func (*Card) JSONTypeName() string { return TypeAdaptiveCard }

// Walk calls fn for every element of c depth-first, including the children
// of containers. Nested ShowCard cards are not visited. If fn returns false
// the element's children are skipped.
func Walk(c *Card, fn func(el Element, depth int) bool) {
	if c == nil {
		return
	}
	for _, el := range c.Body {
		walkElement(el, 0, fn)
	}
}

func walkElement(el Element, depth int, fn func(Element, int) bool) {
	if el == nil || !fn(el, depth) {
		return
	}
	if c, ok := el.(container); ok {
		for _, child := range c.Children() {
			walkElement(child, depth+1, fn)
		}
	}
}

// FindElement returns the first element of c with the given id.
func FindElement(c *Card, id string) (Element, bool) {
	var found Element
	Walk(c, func(el Element, _ int) bool {
		if found != nil {
			return false
		}
		if el.Base().ID == id {
			found = el
			return false
		}
		return true
	})
	return found, found != nil
}
