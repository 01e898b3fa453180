package diagram

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const (
	// DefaultFill is the fill of container and decorative shapes.
	DefaultFill = "#FFFFFF"
	// DefaultTextFill is the fill of text leaves.
	DefaultTextFill = "#0A0F25"
	// DefaultLineStroke is the stroke of connectors.
	DefaultLineStroke = "#0A0F25"

	DefaultStrokeWidth = 2.
	DefaultSpacing     = 10.
	DefaultFontSize    = 16.
)

// Align places content within slack along one axis.
type Align string

const (
	AlignLeading  Align = "leading"
	AlignCenter   Align = "center"
	AlignTrailing Align = "trailing"
)

func (a Align) Validate() error {
	switch a {
	case "", AlignLeading, AlignCenter, AlignTrailing:
		return nil
	}
	return fmt.Errorf(`invalid alignment %q: want "leading", "center" or "trailing"`, string(a))
}

// offset is the leading offset that distributes slack per the alignment
// policy. Slack may be negative (overflow); it is distributed, never clipped.
func (a Align) offset(slack float64) float64 {
	switch a {
	case AlignLeading:
		return 0
	case AlignTrailing:
		return slack
	default:
		return slack / 2
	}
}

// Padding is the CSS shorthand form: 1 value for all edges, 2 for
// vertical | horizontal, 3 for top | horizontal | bottom, 4 for
// top | right | bottom | left.
type Padding []float64

type Edges struct {
	Top, Right, Bottom, Left float64
}

// Resolve expands the shorthand into four discrete edge values. A nil padding
// resolves to zero on every edge.
func (p Padding) Resolve() (Edges, error) {
	switch len(p) {
	case 0:
		return Edges{}, nil
	case 1:
		return Edges{Top: p[0], Right: p[0], Bottom: p[0], Left: p[0]}, nil
	case 2:
		return Edges{Top: p[0], Right: p[1], Bottom: p[0], Left: p[1]}, nil
	case 3:
		return Edges{Top: p[0], Right: p[1], Bottom: p[2], Left: p[1]}, nil
	case 4:
		return Edges{Top: p[0], Right: p[1], Bottom: p[2], Left: p[3]}, nil
	}
	return Edges{}, fmt.Errorf("padding: want 1 to 4 values, got %d", len(p))
}

// Style holds the declared attributes of a shape. Zero values mean "use the
// documented default"; pointer fields distinguish "unset" from a literal zero
// where zero is meaningful.
type Style struct {
	Fill   string
	Stroke string
	// StrokeWidth defaults to 2.
	StrokeWidth *float64
	// StrokeDash is the dash gap size; 0 is a solid stroke.
	StrokeDash   float64
	BorderRadius float64

	// HAlign and VAlign default to center.
	HAlign Align
	VAlign Align

	Padding Padding
	// Spacing between consecutive children on the stacking axis; defaults to 10.
	Spacing *float64

	// Width and Height force the shape's size; layout computes them otherwise.
	Width  *float64
	Height *float64

	// FontSize defaults to 16. Bold selects the bold face.
	FontSize float64
	Bold     bool
}

// Validate rejects malformed declared attributes. Unknown description keys
// never reach a Style; the builder refuses them outright.
func (s Style) Validate() error {
	if err := s.HAlign.Validate(); err != nil {
		return err
	}
	if err := s.VAlign.Validate(); err != nil {
		return err
	}
	if _, err := s.Padding.Resolve(); err != nil {
		return err
	}
	for _, c := range []struct{ name, value string }{
		{"fill", s.Fill},
		{"stroke", s.Stroke},
	} {
		if c.value == "" {
			continue
		}
		if _, err := csscolorparser.Parse(c.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", c.name, c.value, err)
		}
	}
	if s.StrokeWidth != nil && *s.StrokeWidth < 0 {
		return fmt.Errorf("invalid stroke width %v", *s.StrokeWidth)
	}
	if s.Spacing != nil && *s.Spacing < 0 {
		return fmt.Errorf("invalid spacing %v", *s.Spacing)
	}
	if s.Width != nil && *s.Width < 0 {
		return fmt.Errorf("invalid width %v", *s.Width)
	}
	if s.Height != nil && *s.Height < 0 {
		return fmt.Errorf("invalid height %v", *s.Height)
	}
	if s.FontSize < 0 {
		return fmt.Errorf("invalid font size %v", s.FontSize)
	}
	return nil
}

func (s Style) fill() string {
	if s.Fill == "" {
		return DefaultFill
	}
	return s.Fill
}

// stroke defaults to the fill darkened in HCL space, the same shade
// derivation the themes use, so unstyled shapes still have a visible border.
func (s Style) stroke() string {
	if s.Stroke != "" {
		return s.Stroke
	}
	parsed, err := csscolorparser.Parse(s.fill())
	if err != nil {
		return DefaultLineStroke
	}
	h, c, l := colorful.Color{R: parsed.R, G: parsed.G, B: parsed.B}.Hcl()
	return colorful.Hcl(h, c, l*0.6).Clamped().Hex()
}

func (s Style) strokeWidth() float64 {
	if s.StrokeWidth == nil {
		return DefaultStrokeWidth
	}
	return *s.StrokeWidth
}

func (s Style) spacing() float64 {
	if s.Spacing == nil {
		return DefaultSpacing
	}
	return *s.Spacing
}

func (s Style) fontSize() float64 {
	if s.FontSize == 0 {
		return DefaultFontSize
	}
	return s.FontSize
}
