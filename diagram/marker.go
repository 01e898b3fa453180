package diagram

import (
	"fmt"

	"oss.terrastruct.com/blockdiag/lib/element"
	"oss.terrastruct.com/blockdiag/lib/geo"
)

// Marker is a named, reusable glyph drawn at a connector endpoint. Glyph
// geometry is canonical: the tip sits at the origin and the body extends
// along the positive x-axis. Placement rotates the glyph so its axis follows
// the endpoint's outward normal.
type Marker struct {
	Name   string
	Width  float64
	Height float64

	// Glyph returns the canonical geometry styled for the connector stroke.
	Glyph func(m Marker, stroke string, strokeWidth float64) *element.Element
}

// Registry maps marker names to definitions. A registry is built once,
// treated as read-only thereafter, and may be shared by any number of
// diagrams concurrently.
type Registry map[string]Marker

// DefaultRegistry is the stock marker catalog.
func DefaultRegistry() Registry {
	r := Registry{}
	for _, m := range []Marker{
		{Name: "arrow", Width: 10, Height: 8, Glyph: arrowGlyph},
		{Name: "triangle", Width: 10, Height: 8, Glyph: triangleGlyph},
		{Name: "unfilled-triangle", Width: 10, Height: 8, Glyph: unfilledTriangleGlyph},
		{Name: "diamond", Width: 11, Height: 9, Glyph: diamondGlyph},
		{Name: "circle", Width: 8, Height: 8, Glyph: circleGlyph},
	} {
		r[m.Name] = m
	}
	return r
}

// Place returns the glyph transformed to position p with its axis aligned to
// the unit normal n. With normal components (nx, ny) the affine transform is
//
//	[ nx  -ny  x ]
//	[ ny   nx  y ]
//
// the 2-D rotation matrix specialized to a unit vector composed with a
// translation.
func (m Marker) Place(p *geo.Point, n geo.Vector, stroke string, strokeWidth float64) *element.Element {
	g := element.New("g")
	g.Set("transform", fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		element.FormatFloat(n[0]), element.FormatFloat(n[1]),
		element.FormatFloat(-n[1]), element.FormatFloat(n[0]),
		element.FormatFloat(p.X), element.FormatFloat(p.Y),
	))
	g.Append(m.Glyph(m, stroke, strokeWidth))
	return g
}

func arrowGlyph(m Marker, stroke string, strokeWidth float64) *element.Element {
	el := element.New("polygon")
	el.Set("points", fmt.Sprintf("%s,%s %s,%s %s,%s %s,%s",
		element.FormatFloat(0), element.FormatFloat(0),
		element.FormatFloat(m.Width), element.FormatFloat(-m.Height/2),
		element.FormatFloat(m.Width*3/4), element.FormatFloat(0),
		element.FormatFloat(m.Width), element.FormatFloat(m.Height/2),
	))
	el.Set("fill", stroke)
	return el
}

func triangleGlyph(m Marker, stroke string, strokeWidth float64) *element.Element {
	el := element.New("polygon")
	el.Set("points", trianglePoints(m))
	el.Set("fill", stroke)
	return el
}

func unfilledTriangleGlyph(m Marker, stroke string, strokeWidth float64) *element.Element {
	el := element.New("polygon")
	el.Set("points", trianglePoints(m))
	el.Set("fill", DefaultFill)
	el.Set("stroke", stroke)
	el.SetFloat("stroke-width", strokeWidth)
	return el
}

func trianglePoints(m Marker) string {
	return fmt.Sprintf("%s,%s %s,%s %s,%s",
		element.FormatFloat(0), element.FormatFloat(0),
		element.FormatFloat(m.Width), element.FormatFloat(-m.Height/2),
		element.FormatFloat(m.Width), element.FormatFloat(m.Height/2),
	)
}

func diamondGlyph(m Marker, stroke string, strokeWidth float64) *element.Element {
	el := element.New("polygon")
	el.Set("points", fmt.Sprintf("%s,%s %s,%s %s,%s %s,%s",
		element.FormatFloat(0), element.FormatFloat(0),
		element.FormatFloat(m.Width/2), element.FormatFloat(-m.Height/2),
		element.FormatFloat(m.Width), element.FormatFloat(0),
		element.FormatFloat(m.Width/2), element.FormatFloat(m.Height/2),
	))
	el.Set("fill", stroke)
	return el
}

func circleGlyph(m Marker, stroke string, strokeWidth float64) *element.Element {
	el := element.New("circle")
	el.SetFloat("cx", m.Width/2)
	el.SetFloat("cy", 0)
	el.SetFloat("r", m.Width/2)
	el.Set("fill", DefaultFill)
	el.Set("stroke", stroke)
	el.SetFloat("stroke-width", strokeWidth)
	return el
}
