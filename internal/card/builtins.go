package card

import (
	"github.com/cardkit-labs/cardkit/internal/registry"
	"github.com/cardkit-labs/cardkit/internal/schemaver"
)

// Registries is the two-tier element/action registry set of a host.
type Registries = registry.Global[Element, Action]

// Session is a caller-owned pair of element and action registries.
type Session = registry.Session[Element, Action]

// NewRegistries returns a Registries whose defaults hold the built-in
// catalog.
func NewRegistries() *Registries {
	g := registry.NewGlobal[Element, Action]()
	RegisterBuiltins(g)
	return g
}

// RegisterBuiltins registers the standard elements and actions into the
// defaults of g.
func RegisterBuiltins(g *Registries) {
	elements := g.DefaultElements()
	elements.Register(TypeContainer, func() Element { return &Container{} })
	elements.Register(TypeTextBlock, func() Element { return &TextBlock{} })
	elements.Register(TypeRichTextBlock, func() Element { return &RichTextBlock{} },
		registry.WithSchemaVersion(schemaver.V1_2))
	elements.Register(TypeImage, func() Element { return &Image{} })
	elements.Register(TypeImageSet, func() Element { return &ImageSet{} })
	elements.Register(TypeMedia, func() Element { return &Media{} },
		registry.WithSchemaVersion(schemaver.V1_1))
	elements.Register(TypeFactSet, func() Element { return &FactSet{} })
	elements.Register(TypeColumnSet, func() Element { return &ColumnSet{} })
	elements.Register(TypeActionSet, func() Element { return &ActionSet{} },
		registry.WithSchemaVersion(schemaver.V1_2))
	elements.Register(TypeInputText, func() Element { return &InputText{} })
	elements.Register(TypeInputToggle, func() Element { return &InputToggle{} })
	elements.Register(TypeTable, func() Element { return &Table{} },
		registry.WithSchemaVersion(schemaver.V1_5))
	elements.Register(TypeCarousel, func() Element { return &Carousel{} },
		registry.WithSchemaVersion(schemaver.V1_6),
		registry.WithSingletonBehavior(registry.Only))

	actions := g.DefaultActions()
	actions.Register(TypeOpenURL, func() Action { return &OpenURLAction{} })
	actions.Register(TypeSubmit, func() Action { return &SubmitAction{} })
	actions.Register(TypeShowCard, func() Action { return &ShowCardAction{} })
	actions.Register(TypeToggleVisibility, func() Action { return &ToggleVisibilityAction{} },
		registry.WithSchemaVersion(schemaver.V1_2))
	actions.Register(TypeExecute, func() Action { return &ExecuteAction{} },
		registry.WithSchemaVersion(schemaver.V1_4))
}
