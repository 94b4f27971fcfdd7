package card_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardkit-labs/cardkit/internal/card"
	"github.com/cardkit-labs/cardkit/internal/logging"
	"github.com/cardkit-labs/cardkit/internal/registry"
	"github.com/cardkit-labs/cardkit/internal/schemaver"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func newParser(t *testing.T) *card.Parser {
	t.Helper()
	return card.NewParser(card.NewRegistries().NewSession())
}

func parseFile(t *testing.T, p *card.Parser, name string) *card.Result {
	t.Helper()
	res, err := p.ParseFile(context.Background(), testPath(name))
	require.NoError(t, err)
	return res
}

func eventKinds(events []card.ParseEvent) []card.EventKind {
	kinds := make([]card.EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func TestParse_FullCard(t *testing.T) {
	res := parseFile(t, newParser(t), "valid-card.json")

	assert.Empty(t, res.Events)
	assert.True(t, res.Version.Equal(schemaver.V1_5), "Version = %s", res.Version)

	c := res.Card
	assert.Equal(t, "Order summary", c.FallbackText)
	assert.True(t, c.Version.Equal(schemaver.V1_5))
	require.Len(t, c.Body, 6)

	title, ok := c.Body[0].(*card.TextBlock)
	require.True(t, ok, "Body[0] is %T", c.Body[0])
	assert.Equal(t, "title", title.ID)
	assert.Equal(t, "Order #1234", title.Text)
	assert.True(t, title.Wrap)
	assert.Equal(t, 2, title.MaxLines)
	assert.Equal(t, "Bolder", title.Weight)

	box, ok := c.Body[1].(*card.Container)
	require.True(t, ok, "Body[1] is %T", c.Body[1])
	assert.Equal(t, "emphasis", box.Style)
	require.Len(t, box.Items, 2)
	open, ok := box.SelectAction.(*card.OpenURLAction)
	require.True(t, ok, "SelectAction is %T", box.SelectAction)
	assert.Equal(t, "https://example.com/orders/1234", open.URL)

	cols, ok := box.Items[1].(*card.ColumnSet)
	require.True(t, ok, "Items[1] is %T", box.Items[1])
	require.Len(t, cols.Columns, 2)
	assert.Equal(t, "auto", cols.Columns[0].Width)
	require.Len(t, cols.Columns[1].Items, 1)
	assert.Equal(t, "3", cols.Columns[1].Items[0].(*card.TextBlock).Text)

	facts, ok := c.Body[2].(*card.FactSet)
	require.True(t, ok)
	assert.Equal(t, []card.Fact{{Title: "Status", Value: "Shipped"}, {Title: "Total", Value: "$42"}}, facts.Facts)

	table, ok := c.Body[3].(*card.Table)
	require.True(t, ok)
	require.Len(t, table.Rows, 1)
	require.Len(t, table.Rows[0].Cells, 2)
	assert.Equal(t, "Widget", table.Rows[0].Cells[0].Items[0].(*card.TextBlock).Text)

	set, ok := c.Body[4].(*card.ActionSet)
	require.True(t, ok)
	require.Len(t, set.Actions, 1)
	assert.Equal(t, "Track", set.Actions[0].ActionBase().Title)

	input, ok := c.Body[5].(*card.InputText)
	require.True(t, ok)
	assert.True(t, input.IsMultiline)
	assert.Equal(t, "Comment", input.Placeholder)

	require.Len(t, c.Actions, 4)

	submit, ok := c.Actions[0].(*card.SubmitAction)
	require.True(t, ok)
	data, ok := submit.Data.(map[string]any)
	require.True(t, ok, "Data is %T", submit.Data)
	assert.EqualValues(t, 1234, data["orderId"])

	show, ok := c.Actions[1].(*card.ShowCardAction)
	require.True(t, ok)
	require.NotNil(t, show.Card)
	require.Len(t, show.Card.Body, 1)
	assert.Equal(t, "Ships in 2 days", show.Card.Body[0].(*card.TextBlock).Text)

	execute, ok := c.Actions[2].(*card.ExecuteAction)
	require.True(t, ok)
	assert.Equal(t, "refresh", execute.Verb)

	toggle, ok := c.Actions[3].(*card.ToggleVisibilityAction)
	require.True(t, ok)
	require.Len(t, toggle.TargetElements, 2)
	assert.Equal(t, "facts", toggle.TargetElements[0].ElementID)
	assert.Nil(t, toggle.TargetElements[0].IsVisible)
	assert.Equal(t, "box", toggle.TargetElements[1].ElementID)
	require.NotNil(t, toggle.TargetElements[1].IsVisible)
	assert.False(t, *toggle.TargetElements[1].IsVisible)
}

func TestParse_YAMLCard(t *testing.T) {
	res := parseFile(t, newParser(t), "valid-card.yaml")

	assert.Empty(t, res.Events)
	assert.True(t, res.Version.Equal(schemaver.V1_2))
	require.Len(t, res.Card.Body, 2)

	header := res.Card.Body[0].(*card.Container)
	rich, ok := header.Items[0].(*card.RichTextBlock)
	require.True(t, ok, "Items[0] is %T", header.Items[0])
	require.Len(t, rich.Inlines, 2)
	assert.Equal(t, "Hello", rich.Inlines[0].Text)
	assert.True(t, rich.Inlines[1].Italic)

	set := res.Card.Body[1].(*card.ActionSet)
	toggle := set.Actions[0].(*card.ToggleVisibilityAction)
	assert.Equal(t, []card.TargetElement{{ElementID: "header"}}, toggle.TargetElements)

	require.Len(t, res.Card.Actions, 1)
	assert.Equal(t, "https://example.com/docs", res.Card.Actions[0].(*card.OpenURLAction).URL)
}

func TestParse_VersionGateLenient(t *testing.T) {
	res := parseFile(t, newParser(t), "versioned-card.json")

	require.Len(t, res.Card.Body, 3)
	assert.IsType(t, &card.TextBlock{}, res.Card.Body[0])

	table, ok := res.Card.Body[1].(*card.UnknownElement)
	require.True(t, ok, "Body[1] is %T", res.Card.Body[1])
	assert.Equal(t, "Table", table.JSONTypeName())
	assert.Equal(t, "t", table.ID)

	widget, ok := res.Card.Body[2].(*card.UnknownElement)
	require.True(t, ok)
	assert.Equal(t, "Fancy.Widget", widget.TypeName)
	assert.Equal(t, "w", widget.Base().ID)
	assert.Equal(t, "red", widget.Properties["color"])

	require.Len(t, res.Card.Actions, 2)
	execute, ok := res.Card.Actions[0].(*card.UnknownAction)
	require.True(t, ok)
	assert.Equal(t, "Action.Execute", execute.TypeName)
	assert.Equal(t, "Go", execute.Title)
	assert.IsType(t, &card.SubmitAction{}, res.Card.Actions[1])

	require.Len(t, res.Events, 3)
	assert.Equal(t, []card.EventKind{card.VersionTooNew, card.UnknownType, card.VersionTooNew}, eventKinds(res.Events))
	assert.Equal(t, "/body/1", res.Events[0].Path)
	assert.Equal(t, "Table", res.Events[0].TypeName)
	assert.Equal(t, "/body/2", res.Events[1].Path)
	assert.Equal(t, "/actions/0", res.Events[2].Path)
}

func TestParse_VersionGateStrict(t *testing.T) {
	p := newParser(t)
	p.Strict = true

	res, err := p.ParseFile(context.Background(), testPath("versioned-card.json"))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, card.ErrVersionTooNew), "err = %v", err)

	var pe *card.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "/body/1", pe.Event.Path)
	assert.Equal(t, card.VersionTooNew, pe.Event.Kind)
}

func TestParse_MaxVersionClamps(t *testing.T) {
	p := newParser(t)
	p.MaxVersion = schemaver.V1_4

	res := parseFile(t, p, "valid-card.json")

	assert.True(t, res.Version.Equal(schemaver.V1_4), "Version = %s", res.Version)
	require.Len(t, res.Events, 2)
	assert.Equal(t, card.VersionClamped, res.Events[0].Kind)
	assert.Equal(t, "/version", res.Events[0].Path)
	assert.Equal(t, card.VersionTooNew, res.Events[1].Kind)
	assert.Equal(t, "/body/3", res.Events[1].Path)
	assert.IsType(t, &card.UnknownElement{}, res.Card.Body[3])
	assert.IsType(t, &card.ExecuteAction{}, res.Card.Actions[2])
}

func TestParse_ClampIsNotAStrictError(t *testing.T) {
	p := newParser(t)
	p.MaxVersion = schemaver.V1_5
	p.Strict = true

	res, err := p.Parse(context.Background(), []byte(`{"type":"AdaptiveCard","version":"1.6","body":[{"type":"TextBlock","text":"x"}]}`))
	require.NoError(t, err)
	assert.True(t, res.Version.Equal(schemaver.V1_5))
	assert.Equal(t, []card.EventKind{card.VersionClamped}, eventKinds(res.Events))
}

func TestParse_DefaultVersion(t *testing.T) {
	doc := []byte(`{"type":"AdaptiveCard","body":[{"type":"RichTextBlock","inlines":[{"text":"x"}]}]}`)

	p := newParser(t)
	res, err := p.Parse(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, res.Version.Equal(schemaver.Oldest))
	assert.IsType(t, &card.UnknownElement{}, res.Card.Body[0])

	p.DefaultVersion = schemaver.V1_2
	res, err = p.Parse(context.Background(), doc)
	require.NoError(t, err)
	assert.IsType(t, &card.RichTextBlock{}, res.Card.Body[0])
	assert.Empty(t, res.Events)
}

func TestParse_NumericYAMLVersion(t *testing.T) {
	doc := []byte("type: AdaptiveCard\nversion: 1.4\nactions:\n  - type: Action.Execute\n    verb: go\n")

	res, err := newParser(t).Parse(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, res.Version.Equal(schemaver.V1_4), "Version = %s", res.Version)
	assert.IsType(t, &card.ExecuteAction{}, res.Card.Actions[0])
}

func TestParse_InvalidVersion(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unparsable string", `{"type":"AdaptiveCard","version":"latest","body":[]}`},
		{"negative YAML integer", "type: AdaptiveCard\nversion: -1\nbody: []\n"},
		{"negative JSON number", `{"type":"AdaptiveCard","version":-2,"body":[]}`},
		{"object", `{"type":"AdaptiveCard","version":{"major":1},"body":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newParser(t).Parse(context.Background(), []byte(tt.doc))
			require.NoError(t, err)
			assert.True(t, res.Version.Equal(schemaver.Oldest), "Version = %s", res.Version)
			require.Len(t, res.Events, 1)
			assert.Equal(t, card.InvalidProperty, res.Events[0].Kind)
			assert.Equal(t, "/version", res.Events[0].Path)

			p := newParser(t)
			p.Strict = true
			_, err = p.Parse(context.Background(), []byte(tt.doc))
			assert.ErrorIs(t, err, card.ErrInvalidProperty)
		})
	}
}

func TestParse_NumericVersionKeepsMinor(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"JSON", `{"type":"AdaptiveCard","version":1.10,"body":[{"type":"Table"}]}`},
		{"YAML", "type: AdaptiveCard\nversion: 1.10\nbody:\n  - type: Table\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newParser(t).Parse(context.Background(), []byte(tt.doc))
			require.NoError(t, err)
			assert.True(t, res.Version.Equal(schemaver.MustParse("1.10")), "Version = %s", res.Version)
			assert.Empty(t, res.Events)
			require.Len(t, res.Card.Body, 1)
			assert.IsType(t, &card.Table{}, res.Card.Body[0])
		})
	}
}

func TestParse_SingletonOnlyBody(t *testing.T) {
	res := parseFile(t, newParser(t), "carousel-card.json")

	assert.Empty(t, res.Events)
	require.Len(t, res.Card.Body, 1)

	carousel, ok := res.Card.Body[0].(*card.Carousel)
	require.True(t, ok, "Body[0] is %T", res.Card.Body[0])
	assert.Equal(t, "c", carousel.ID)
	assert.Equal(t, 5000, carousel.Timer)
	require.Len(t, carousel.Pages, 2)
	assert.Equal(t, "p1", carousel.Pages[0].ID)
	assert.Equal(t, "one", carousel.Pages[0].Items[0].(*card.TextBlock).Text)
	assert.IsType(t, &card.SubmitAction{}, carousel.Pages[1].SelectAction)
}

func TestParse_SingletonOnlyInsideArray(t *testing.T) {
	res := parseFile(t, newParser(t), "carousel-in-array.json")

	require.Len(t, res.Card.Body, 1)
	assert.Equal(t, "after", res.Card.Body[0].(*card.TextBlock).Text)
	require.Len(t, res.Events, 1)
	assert.Equal(t, card.SingletonRequired, res.Events[0].Kind)
	assert.Equal(t, "/body/0", res.Events[0].Path)
	assert.Equal(t, "Carousel", res.Events[0].TypeName)
}

func TestParse_SingletonNotAllowed(t *testing.T) {
	res := parseFile(t, newParser(t), "singleton-textblock.yaml")

	assert.Empty(t, res.Card.Body)
	require.Len(t, res.Events, 1)
	assert.Equal(t, card.SingletonNotAllowed, res.Events[0].Kind)
	assert.Equal(t, "/body", res.Events[0].Path)

	p := newParser(t)
	p.Strict = true
	_, err := p.ParseFile(context.Background(), testPath("singleton-textblock.yaml"))
	assert.ErrorIs(t, err, card.ErrSingletonNotAllowed)
}

func TestParse_SingletonAllowedOverride(t *testing.T) {
	g := card.NewRegistries()
	s := g.NewSession()
	s.Elements.Register(card.TypeTextBlock, func() card.Element { return &card.TextBlock{} },
		registry.WithSingletonBehavior(registry.Allowed))

	res, err := card.NewParser(s).ParseFile(context.Background(), testPath("singleton-textblock.yaml"))
	require.NoError(t, err)
	assert.Empty(t, res.Events)
	require.Len(t, res.Card.Body, 1)
	assert.Equal(t, "alone", res.Card.Body[0].(*card.TextBlock).Text)

	// the override stays in the session
	def, _ := g.DefaultElements().FindByName(card.TypeTextBlock)
	assert.Equal(t, registry.NotAllowed, def.SingletonBehavior)
}

type fancyWidget struct {
	card.ElementBase `yaml:",inline"`
	Color            string `yaml:"color"`
}

func (*fancyWidget) JSONTypeName() string { return "Fancy.Widget" }

func TestParse_HostRegisteredType(t *testing.T) {
	g := card.NewRegistries()
	g.DefaultElements().Register("Fancy.Widget", func() card.Element { return &fancyWidget{} })

	res := parseFile(t, card.NewParser(g.NewSession()), "versioned-card.json")

	widget, ok := res.Card.Body[2].(*fancyWidget)
	require.True(t, ok, "Body[2] is %T", res.Card.Body[2])
	assert.Equal(t, "red", widget.Color)
	assert.Equal(t, []card.EventKind{card.VersionTooNew, card.VersionTooNew}, eventKinds(res.Events))
}

func TestParse_UnregisteredBuiltin(t *testing.T) {
	s := card.NewRegistries().NewSession()
	s.Elements.Unregister(card.TypeImage)

	res, err := card.NewParser(s).Parse(context.Background(),
		[]byte(`{"type":"AdaptiveCard","body":[{"type":"Image","url":"x"}]}`))
	require.NoError(t, err)
	assert.IsType(t, &card.UnknownElement{}, res.Card.Body[0])
	assert.Equal(t, []card.EventKind{card.UnknownType}, eventKinds(res.Events))
}

func TestParse_MalformedNodes(t *testing.T) {
	doc := []byte(`{
		"type": "AdaptiveCard",
		"version": "1.0",
		"body": [
			"just a string",
			{ "text": "no type" },
			{ "type": "TextBlock", "text": "kept", "wrap": "sometimes" }
		],
		"actions": { "type": "Action.Submit" }
	}`)

	res, err := newParser(t).Parse(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, res.Card.Body, 1)
	assert.Equal(t, "kept", res.Card.Body[0].(*card.TextBlock).Text)
	assert.Empty(t, res.Card.Actions)
	assert.Equal(t, []card.EventKind{
		card.InvalidProperty,
		card.InvalidProperty,
		card.InvalidProperty,
		card.SingletonNotAllowed,
	}, eventKinds(res.Events))
}

func TestParse_NotACard(t *testing.T) {
	p := newParser(t)

	_, err := p.ParseFile(context.Background(), testPath("not-a-card.json"))
	assert.ErrorIs(t, err, card.ErrNotACard)

	_, err = p.Parse(context.Background(), []byte(`[1, 2]`))
	assert.ErrorIs(t, err, card.ErrNotACard)

	_, err = p.Parse(context.Background(), []byte("- a\n- b\n"))
	assert.ErrorIs(t, err, card.ErrNotACard)
}

func TestParse_Errors(t *testing.T) {
	p := newParser(t)

	_, err := p.ParseFile(context.Background(), testPath("invalid-syntax.json"))
	assert.Error(t, err)

	_, err = p.ParseFile(context.Background(), testPath("nonexistent.json"))
	assert.Error(t, err)
}

func TestParse_LogsEvents(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New("debug", "text", &buf))

	_, err := newParser(t).ParseFile(ctx, testPath("versioned-card.json"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Card parse event.")
	assert.Contains(t, buf.String(), "Fancy.Widget")
}

func TestWalkAndFindElement(t *testing.T) {
	res := parseFile(t, newParser(t), "valid-card.json")

	count, maxDepth := 0, 0
	card.Walk(res.Card, func(el card.Element, depth int) bool {
		count++
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	assert.Equal(t, 17, count)
	assert.Equal(t, 3, maxDepth)

	el, ok := card.FindElement(res.Card, "right")
	require.True(t, ok)
	assert.Equal(t, "3", el.(*card.TextBlock).Text)

	_, ok = card.FindElement(res.Card, "details")
	assert.False(t, ok, "ShowCard bodies are not walked")

	// returning false prunes children
	top := 0
	card.Walk(res.Card, func(card.Element, int) bool { top++; return false })
	assert.Equal(t, 6, top)
}

func TestElementBase_Visible(t *testing.T) {
	hidden := false
	assert.True(t, (&card.ElementBase{}).Visible())
	assert.False(t, (&card.ElementBase{IsVisible: &hidden}).Visible())
}
