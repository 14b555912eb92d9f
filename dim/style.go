package dim

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultStyleName is the name of the system default style. Dimensions that
// reference no style or an unknown one are laid out with it.
const DefaultStyleName = "Standard"

// Justify is the horizontal text justification (DIMJUST).
type Justify int

const (
	JustifyCentre      Justify = iota // centred on the dimension line
	JustifyFirst                      // next to the first extension line
	JustifySecond                     // next to the second extension line
	JustifyAboveFirst                 // over the first extension line
	JustifyAboveSecond                // over the second extension line
)

// Vertical is the vertical text placement relative to the dimension line (DIMTAD).
type Vertical int

const (
	VerticalCentre  Vertical = iota // inline, the dimension line is split
	VerticalAbove                   // above the dimension line
	VerticalOutside                 // on the side away from the definition points
	VerticalJIS                     // Japanese Industrial Standards, above
	VerticalBelow                   // below the dimension line
)

// Zero suppression bits of DIMZIN/DIMAZIN.
const (
	SuppressLeadingZeros  = 4
	SuppressTrailingZeros = 8
)

// Style is a named bundle of dimension variables. Layout reads it fresh on
// every call; a style is never cached by a dimension.
type Style struct {
	Name string `yaml:"-"`

	ArrowSize       float64 `yaml:"dimasz"`
	TextHeight      float64 `yaml:"dimtxt"`
	ExtensionExtend float64 `yaml:"dimexe"`
	ExtensionOffset float64 `yaml:"dimexo"`
	TextGap         float64 `yaml:"dimgap"`

	Justify           Justify  `yaml:"dimjust"`
	Vertical          Vertical `yaml:"dimtad"`
	InsideHorizontal  bool     `yaml:"dimtih"`
	OutsideHorizontal bool     `yaml:"dimtoh"`
	ForceLineInside   bool     `yaml:"dimtofl"`

	SuppressExt1 bool `yaml:"dimse1"`
	SuppressExt2 bool `yaml:"dimse2"`
	SuppressDim1 bool `yaml:"dimsd1"`
	SuppressDim2 bool `yaml:"dimsd2"`

	Round                  float64 `yaml:"dimrnd"`
	Decimals               int     `yaml:"dimdec"`
	AngularDecimals        int     `yaml:"dimadec"`
	ZeroSuppression        int     `yaml:"dimzin"`
	AngularZeroSuppression int     `yaml:"dimazin"`
	DecimalSeparator       string  `yaml:"dimdsep"`

	CentreMarkStyle int     `yaml:"dimcenstyl"`
	CentreMarkSize  float64 `yaml:"dimcenvalue"`
}

// Standard returns the system default style.
func Standard() Style {
	return Style{
		Name:              DefaultStyleName,
		ArrowSize:         0.18,
		TextHeight:        0.18,
		ExtensionExtend:   0.18,
		ExtensionOffset:   0.0625,
		TextGap:           0.09,
		InsideHorizontal:  true,
		OutsideHorizontal: true,
		Decimals:          4,
		DecimalSeparator:  ".",
		CentreMarkStyle:   1,
		CentreMarkSize:    0.09,
	}
}

// StyleResolver resolves a style name to the style that is current at the
// time of the call.
type StyleResolver interface {
	ResolveStyle(name string) Style
}

// StyleFunc adapts a function to a StyleResolver.
type StyleFunc func(name string) Style

// ResolveStyle calls f(name).
func (f StyleFunc) ResolveStyle(name string) Style { return f(name) }

// StyleTable is a name keyed set of styles. Names are case insensitive.
// Edits to the table affect every later layout of dimensions that
// reference the edited style. A StyleTable is not safe for concurrent
// modification.
type StyleTable struct {
	styles map[string]Style
}

// NewStyleTable returns a table holding the Standard style.
func NewStyleTable() *StyleTable {
	t := &StyleTable{styles: make(map[string]Style)}
	t.Set(Standard())
	return t
}

func styleKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Set adds or replaces s in the table.
func (t *StyleTable) Set(s Style) {
	if s.Name == "" {
		panic("style name must not be empty")
	}
	t.styles[styleKey(s.Name)] = s
}

// Delete removes the named style. The default style can be edited but not removed.
func (t *StyleTable) Delete(name string) {
	key := styleKey(name)
	if key == styleKey(DefaultStyleName) {
		return
	}
	delete(t.styles, key)
}

// Lookup returns the named style and whether it exists.
func (t *StyleTable) Lookup(name string) (Style, bool) {
	s, ok := t.styles[styleKey(name)]
	return s, ok
}

// ResolveStyle returns the named style, falling back to the default style.
func (t *StyleTable) ResolveStyle(name string) Style {
	if s, ok := t.Lookup(name); ok {
		return s
	}
	if s, ok := t.Lookup(DefaultStyleName); ok {
		return s
	}
	return Standard()
}

// Names returns the style names sorted alphabetically.
func (t *StyleTable) Names() []string {
	names := make([]string, 0, len(t.styles))
	for _, s := range t.styles {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Load reads styles from YAML. The document is a mapping from style name to
// dimension variables; variables left unset inherit the Standard style.
//
//	Metric:
//	  dimasz: 2.5
//	  dimtxt: 2.5
//	  dimdsep: ","
func (t *StyleTable) Load(r io.Reader) error {
	var doc map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decoding styles: %w", err)
	}
	for name, node := range doc {
		s := Standard()
		if err := node.Decode(&s); err != nil {
			return fmt.Errorf("decoding style %q: %w", name, err)
		}
		s.Name = name
		if err := s.Validate(); err != nil {
			return err
		}
		t.Set(s)
	}
	return nil
}

// Validate checks the enumerated variables of s are in range.
func (s Style) Validate() error {
	switch {
	case s.Justify < JustifyCentre || s.Justify > JustifyAboveSecond:
		return fmt.Errorf("style %q: dimjust %d out of range 0-4", s.Name, s.Justify)
	case s.Vertical < VerticalCentre || s.Vertical > VerticalBelow:
		return fmt.Errorf("style %q: dimtad %d out of range 0-4", s.Name, s.Vertical)
	case s.Decimals < 0 || s.AngularDecimals < 0:
		return fmt.Errorf("style %q: negative precision", s.Name)
	case s.ArrowSize < 0 || s.TextHeight < 0 || s.TextGap < 0:
		return fmt.Errorf("style %q: negative size", s.Name)
	}
	return nil
}
