package registry

// Global holds the default and active registries for one host application.
//
// The defaults are the catalog that built-in and custom types register into;
// they are never cleared by Global itself. The active registries are cloned
// from the defaults on first access and reused until Reset.
type Global[E Typed, A Typed] struct {
	defaultElements *TypeRegistry[E]
	defaultActions  *TypeRegistry[A]

	elements *TypeRegistry[E]
	actions  *TypeRegistry[A]
}

// NewGlobal returns a Global with empty default registries.
func NewGlobal[E Typed, A Typed]() *Global[E, A] {
	return &Global[E, A]{
		defaultElements: New[E](),
		defaultActions:  New[A](),
	}
}

// DefaultElements returns the default element catalog.
func (g *Global[E, A]) DefaultElements() *TypeRegistry[E] { return g.defaultElements }

// DefaultActions returns the default action catalog.
func (g *Global[E, A]) DefaultActions() *TypeRegistry[A] { return g.defaultActions }

// Elements returns the active element registry, cloning it from the
// defaults if it has not been materialized since the last Reset.
func (g *Global[E, A]) Elements() *TypeRegistry[E] {
	g.ensureElements()
	return g.elements
}

// Actions returns the active action registry, cloning it from the defaults
// if it has not been materialized since the last Reset.
func (g *Global[E, A]) Actions() *TypeRegistry[A] {
	g.ensureActions()
	return g.actions
}

func (g *Global[E, A]) ensureElements() {
	if g.elements == nil {
		g.elements = New[E]()
		g.PopulateWithDefaultElements(g.elements)
	}
}

func (g *Global[E, A]) ensureActions() {
	if g.actions == nil {
		g.actions = New[A]()
		g.PopulateWithDefaultActions(g.actions)
	}
}

// PopulateWithDefaultElements clears r and fills it from the default
// element catalog.
func (g *Global[E, A]) PopulateWithDefaultElements(r *TypeRegistry[E]) {
	r.Clear()
	g.defaultElements.CopyTo(r)
}

// PopulateWithDefaultActions clears r and fills it from the default action
// catalog.
func (g *Global[E, A]) PopulateWithDefaultActions(r *TypeRegistry[A]) {
	r.Clear()
	g.defaultActions.CopyTo(r)
}

// Reset drops the active registries so the next access re-clones them from
// the current defaults.
func (g *Global[E, A]) Reset() {
	g.elements = nil
	g.actions = nil
}

// Session is a caller-owned pair of registries, independent of both the
// defaults and the cached actives.
type Session[E Typed, A Typed] struct {
	Elements *TypeRegistry[E]
	Actions  *TypeRegistry[A]
}

// NewSession returns registries freshly populated from the defaults.
func (g *Global[E, A]) NewSession() *Session[E, A] {
	s := &Session[E, A]{Elements: New[E](), Actions: New[A]()}
	g.PopulateWithDefaultElements(s.Elements)
	g.PopulateWithDefaultActions(s.Actions)
	return s
}
