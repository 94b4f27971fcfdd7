package card

// Action type names.
const (
	TypeOpenURL          = "Action.OpenUrl"
	TypeSubmit           = "Action.Submit"
	TypeShowCard         = "Action.ShowCard"
	TypeToggleVisibility = "Action.ToggleVisibility"
	TypeExecute          = "Action.Execute"
)

// OpenURLAction opens URL in the host.
type OpenURLAction struct {
	ActionProps `yaml:",inline"`
	URL         string `yaml:"url"`
}

func (*OpenURLAction) JSONTypeName() string { return TypeOpenURL }

// SubmitAction gathers the card inputs and sends them with Data.
type SubmitAction struct {
	ActionProps      `yaml:",inline"`
	Data             any    `yaml:"data,omitempty"`
	AssociatedInputs string `yaml:"associatedInputs,omitempty"`
}

func (*SubmitAction) JSONTypeName() string { return TypeSubmit }

// ShowCardAction reveals a nested card. The nested card is parsed with the
// same registries and document version as its parent.
type ShowCardAction struct {
	ActionProps `yaml:",inline"`
	Card        *Card `yaml:"-"`
}

func (*ShowCardAction) JSONTypeName() string { return TypeShowCard }

func (a *ShowCardAction) parseChildren(s *parseState, node map[string]any, path string) {
	raw, ok := node["card"]
	if !ok || raw == nil {
		return
	}
	m, ok := raw.(map[string]any)
	if !ok {
		s.report(InvalidProperty, path+"/card", TypeShowCard, "card must be an object")
		return
	}
	a.Card = s.parseCardBody(m, path+"/card")
}

// TargetElement names an element toggled by Action.ToggleVisibility. A nil
// IsVisible toggles the current state.
type TargetElement struct {
	ElementID string `yaml:"elementId"`
	IsVisible *bool  `yaml:"isVisible,omitempty"`
}

// ToggleVisibilityAction shows or hides the targeted elements.
type ToggleVisibilityAction struct {
	ActionProps    `yaml:",inline"`
	TargetElements []TargetElement `yaml:"-"`
}

func (*ToggleVisibilityAction) JSONTypeName() string { return TypeToggleVisibility }

func (a *ToggleVisibilityAction) parseChildren(s *parseState, node map[string]any, path string) {
	targets, ok := node["targetElements"].([]any)
	if !ok {
		return
	}
	for i, t := range targets {
		switch v := t.(type) {
		case string:
			a.TargetElements = append(a.TargetElements, TargetElement{ElementID: v})
		case map[string]any:
			var target TargetElement
			if err := decodeProperties(v, &target); err != nil || target.ElementID == "" {
				s.report(InvalidProperty, indexPath(path+"/targetElements", i), TypeToggleVisibility, "invalid target element")
				continue
			}
			a.TargetElements = append(a.TargetElements, target)
		default:
			s.report(InvalidProperty, indexPath(path+"/targetElements", i), TypeToggleVisibility, "target element must be a string or an object")
		}
	}
}

// ExecuteAction sends Verb and Data to the host, gathering inputs like
// SubmitAction.
type ExecuteAction struct {
	ActionProps      `yaml:",inline"`
	Verb             string `yaml:"verb,omitempty"`
	Data             any    `yaml:"data,omitempty"`
	AssociatedInputs string `yaml:"associatedInputs,omitempty"`
}

func (*ExecuteAction) JSONTypeName() string { return TypeExecute }
