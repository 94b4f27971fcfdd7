package card

// Element type names.
const (
	TypeTextBlock     = "TextBlock"
	TypeRichTextBlock = "RichTextBlock"
	TypeImage         = "Image"
	TypeMedia         = "Media"
	TypeContainer     = "Container"
	TypeColumnSet     = "ColumnSet"
	TypeColumn        = "Column"
	TypeFactSet       = "FactSet"
	TypeImageSet      = "ImageSet"
	TypeActionSet     = "ActionSet"
	TypeInputText     = "Input.Text"
	TypeInputToggle   = "Input.Toggle"
	TypeTable         = "Table"
	TypeTableRow      = "TableRow"
	TypeTableCell     = "TableCell"
	TypeCarousel      = "Carousel"
	TypeCarouselPage  = "CarouselPage"
)

// TextBlock displays a single block of text.
type TextBlock struct {
	ElementBase `yaml:",inline"`
	Text        string `yaml:"text"`
	Wrap        bool   `yaml:"wrap,omitempty"`
	Size        string `yaml:"size,omitempty"`
	Weight      string `yaml:"weight,omitempty"`
	Color       string `yaml:"color,omitempty"`
	IsSubtle    bool   `yaml:"isSubtle,omitempty"`
	MaxLines    int    `yaml:"maxLines,omitempty"`
}

func (*TextBlock) JSONTypeName() string { return TypeTextBlock }

// TextRun is an inline of a RichTextBlock.
type TextRun struct {
	Text          string `yaml:"text"`
	Weight        string `yaml:"weight,omitempty"`
	Italic        bool   `yaml:"italic,omitempty"`
	Strikethrough bool   `yaml:"strikethrough,omitempty"`
	Highlight     bool   `yaml:"highlight,omitempty"`
}

// RichTextBlock displays a paragraph built from TextRun inlines.
type RichTextBlock struct {
	ElementBase `yaml:",inline"`
	Inlines     []TextRun `yaml:"inlines"`
}

func (*RichTextBlock) JSONTypeName() string { return TypeRichTextBlock }

// Image displays an image from a URL.
type Image struct {
	ElementBase `yaml:",inline"`
	URL         string `yaml:"url"`
	AltText     string `yaml:"altText,omitempty"`
	Size        string `yaml:"size,omitempty"`
	Style       string `yaml:"style,omitempty"`
}

func (*Image) JSONTypeName() string { return TypeImage }

// MediaSource is one playable source of a Media element.
type MediaSource struct {
	MimeType string `yaml:"mimeType"`
	URL      string `yaml:"url"`
}

// Media embeds a video or audio player over one or more sources.
type Media struct {
	ElementBase `yaml:",inline"`
	Sources     []MediaSource `yaml:"sources"`
	Poster      string        `yaml:"poster,omitempty"`
	AltText     string        `yaml:"altText,omitempty"`
}

func (*Media) JSONTypeName() string { return TypeMedia }

// Container groups elements, optionally with a shared select action.
type Container struct {
	ElementBase              `yaml:",inline"`
	Style                    string    `yaml:"style,omitempty"`
	VerticalContentAlignment string    `yaml:"verticalContentAlignment,omitempty"`
	Items                    []Element `yaml:"-"`
	SelectAction             Action    `yaml:"-"`
}

func (*Container) JSONTypeName() string { return TypeContainer }

func (c *Container) Children() []Element { return c.Items }

func (c *Container) parseChildren(s *parseState, node map[string]any, path string) {
	c.Items = s.parseElements(node["items"], path+"/items")
	c.SelectAction = s.parseSingleAction(node["selectAction"], path+"/selectAction")
}

// Column is a vertical slice of a ColumnSet. Columns are parsed by their
// ColumnSet and are not registered on their own.
type Column struct {
	ElementBase  `yaml:",inline"`
	Width        any       `yaml:"width,omitempty"`
	Style        string    `yaml:"style,omitempty"`
	Items        []Element `yaml:"-"`
	SelectAction Action    `yaml:"-"`
}

func (*Column) JSONTypeName() string { return TypeColumn }

func (c *Column) Children() []Element { return c.Items }

func (c *Column) parseChildren(s *parseState, node map[string]any, path string) {
	c.Items = s.parseElements(node["items"], path+"/items")
	c.SelectAction = s.parseSingleAction(node["selectAction"], path+"/selectAction")
}

// ColumnSet lays its columns out side by side.
type ColumnSet struct {
	ElementBase `yaml:",inline"`
	Columns     []*Column `yaml:"-"`
	Style       string    `yaml:"style,omitempty"`
}

func (*ColumnSet) JSONTypeName() string { return TypeColumnSet }

func (c *ColumnSet) Children() []Element {
	out := make([]Element, len(c.Columns))
	for i, col := range c.Columns {
		out[i] = col
	}
	return out
}

func (c *ColumnSet) parseChildren(s *parseState, node map[string]any, path string) {
	c.Columns = parseOwned(s, node["columns"], path+"/columns", func() *Column { return &Column{} })
}

// Fact is a title/value pair of a FactSet.
type Fact struct {
	Title string `yaml:"title"`
	Value string `yaml:"value"`
}

// FactSet displays a list of facts as a two-column table.
type FactSet struct {
	ElementBase `yaml:",inline"`
	Facts       []Fact `yaml:"facts"`
}

func (*FactSet) JSONTypeName() string { return TypeFactSet }

// ImageSet displays a collection of images.
type ImageSet struct {
	ElementBase `yaml:",inline"`
	Images      []*Image `yaml:"-"`
	ImageSize   string   `yaml:"imageSize,omitempty"`
}

func (*ImageSet) JSONTypeName() string { return TypeImageSet }

func (c *ImageSet) Children() []Element {
	out := make([]Element, len(c.Images))
	for i, img := range c.Images {
		out[i] = img
	}
	return out
}

func (c *ImageSet) parseChildren(s *parseState, node map[string]any, path string) {
	c.Images = parseOwned(s, node["images"], path+"/images", func() *Image { return &Image{} })
}

// ActionSet places actions inside the card body.
type ActionSet struct {
	ElementBase `yaml:",inline"`
	Actions     []Action `yaml:"-"`
}

func (*ActionSet) JSONTypeName() string { return TypeActionSet }

func (a *ActionSet) parseChildren(s *parseState, node map[string]any, path string) {
	a.Actions = s.parseActions(node["actions"], path+"/actions")
}

// InputText collects free-form text from the user.
type InputText struct {
	ElementBase `yaml:",inline"`
	Label       string `yaml:"label,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Value       string `yaml:"value,omitempty"`
	IsMultiline bool   `yaml:"isMultiline,omitempty"`
	MaxLength   int    `yaml:"maxLength,omitempty"`
	IsRequired  bool   `yaml:"isRequired,omitempty"`
	Style       string `yaml:"style,omitempty"`
}

func (*InputText) JSONTypeName() string { return TypeInputText }

// InputToggle collects a boolean choice from the user.
type InputToggle struct {
	ElementBase `yaml:",inline"`
	Label       string `yaml:"label,omitempty"`
	Title       string `yaml:"title"`
	Value       string `yaml:"value,omitempty"`
	ValueOn     string `yaml:"valueOn,omitempty"`
	ValueOff    string `yaml:"valueOff,omitempty"`
	IsRequired  bool   `yaml:"isRequired,omitempty"`
}

func (*InputToggle) JSONTypeName() string { return TypeInputToggle }

// TableColumn describes the width of one table column.
type TableColumn struct {
	Width any `yaml:"width,omitempty"`
}

// TableCell holds the elements of one table cell. Cells are parsed by
// their TableRow.
type TableCell struct {
	ElementBase `yaml:",inline"`
	Style       string    `yaml:"style,omitempty"`
	Items       []Element `yaml:"-"`
}

func (*TableCell) JSONTypeName() string { return TypeTableCell }

func (c *TableCell) Children() []Element { return c.Items }

func (c *TableCell) parseChildren(s *parseState, node map[string]any, path string) {
	c.Items = s.parseElements(node["items"], path+"/items")
}

// TableRow is one row of a Table. Rows are parsed by their Table.
type TableRow struct {
	ElementBase `yaml:",inline"`
	Style       string       `yaml:"style,omitempty"`
	Cells       []*TableCell `yaml:"-"`
}

func (*TableRow) JSONTypeName() string { return TypeTableRow }

func (r *TableRow) Children() []Element {
	out := make([]Element, len(r.Cells))
	for i, cell := range r.Cells {
		out[i] = cell
	}
	return out
}

func (r *TableRow) parseChildren(s *parseState, node map[string]any, path string) {
	r.Cells = parseOwned(s, node["cells"], path+"/cells", func() *TableCell { return &TableCell{} })
}

// Table displays its rows in a grid sized by Columns.
type Table struct {
	ElementBase      `yaml:",inline"`
	Columns          []TableColumn `yaml:"columns,omitempty"`
	FirstRowAsHeader *bool         `yaml:"firstRowAsHeader,omitempty"`
	ShowGridLines    *bool         `yaml:"showGridLines,omitempty"`
	Rows             []*TableRow   `yaml:"-"`
}

func (*Table) JSONTypeName() string { return TypeTable }

func (t *Table) Children() []Element {
	out := make([]Element, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row
	}
	return out
}

func (t *Table) parseChildren(s *parseState, node map[string]any, path string) {
	t.Rows = parseOwned(s, node["rows"], path+"/rows", func() *TableRow { return &TableRow{} })
}

// CarouselPage is one page of a Carousel. Pages are parsed by their
// Carousel.
type CarouselPage struct {
	ElementBase  `yaml:",inline"`
	Items        []Element `yaml:"-"`
	SelectAction Action    `yaml:"-"`
}

func (*CarouselPage) JSONTypeName() string { return TypeCarouselPage }

func (p *CarouselPage) Children() []Element { return p.Items }

func (p *CarouselPage) parseChildren(s *parseState, node map[string]any, path string) {
	p.Items = s.parseElements(node["items"], path+"/items")
	p.SelectAction = s.parseSingleAction(node["selectAction"], path+"/selectAction")
}

// Carousel pages through its children. It is only valid as a singleton.
type Carousel struct {
	ElementBase `yaml:",inline"`
	Timer       int             `yaml:"timer,omitempty"`
	Pages       []*CarouselPage `yaml:"-"`
}

func (*Carousel) JSONTypeName() string { return TypeCarousel }

func (c *Carousel) Children() []Element {
	out := make([]Element, len(c.Pages))
	for i, page := range c.Pages {
		out[i] = page
	}
	return out
}

func (c *Carousel) parseChildren(s *parseState, node map[string]any, path string) {
	c.Pages = parseOwned(s, node["pages"], path+"/pages", func() *CarouselPage { return &CarouselPage{} })
}
