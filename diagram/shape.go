// Package diagram is the block-diagram layout and connector-routing engine:
// a tree of shapes per top-level block, a recursive box-model layout that
// sizes containers and offsets their children, and a router that joins two
// independently-placed shapes by their closest boundary points.
package diagram

import (
	"context"
	"fmt"

	"oss.terrastruct.com/blockdiag/lib/element"
	"oss.terrastruct.com/blockdiag/lib/geo"
	"oss.terrastruct.com/blockdiag/lib/svg"
	"oss.terrastruct.com/blockdiag/lib/textmeasure"
)

// Measurer is the text-measurement collaborator. Layout calls it once per
// text leaf; there is no caching in the core.
type Measurer interface {
	Measure(f textmeasure.Font, s string) (width, height float64, err error)
}

// Shape is the capability common to every node of the tree. The set of
// variants is closed: Text, VBox, HBox and the decorative leaves in this
// package.
//
// Layout must complete before Render; Render must complete before
// ConnectionPoints has anything to report.
type Shape interface {
	ID() string

	// Layout computes this shape's size bottom-up and assigns each child's
	// offset from this shape's origin.
	Layout(ctx context.Context, m Measurer) error

	// Render records the absolute position (x, y) of this shape's origin and
	// returns its drawing primitives, this shape's own primitive first,
	// children concatenated in order.
	Render(x, y float64) ([]*element.Element, error)

	// ConnectionPoints returns candidate connector attachment points with
	// outward unit normals. Empty until the shape has been rendered.
	ConnectionPoints() []ConnectionPoint

	// ShapeByID finds the first shape in this subtree with the given id, or
	// nil.
	ShapeByID(id string) Shape

	// Size reports the dimensions computed by Layout.
	Size() (width, height float64)
	// Sized reports whether Layout has defined this shape's size.
	Sized() bool

	base() *baseShape
}

type baseShape struct {
	id    string
	style Style

	// self points back at the variant embedding this base, so base methods
	// can hand out the full Shape. Set by every constructor.
	self Shape

	// derived by Layout
	width, height float64
	sized         bool

	// offset from the parent's origin, assigned by the parent's Layout
	dx, dy float64

	// absolute position, recorded by Render
	x, y   float64
	placed bool

	// declared top-level placement; nested shapes carry neither
	pos  *geo.Point
	near *NearPlacement
}

// NearPlacement positions a top-level shape so that its center lands on the
// named shape's center plus an offset.
type NearPlacement struct {
	ID     string
	Dx, Dy float64
}

func (b *baseShape) base() *baseShape { return b }

func (b *baseShape) ID() string { return b.id }

func (b *baseShape) Style() Style { return b.style }

func (b *baseShape) Size() (width, height float64) { return b.width, b.height }

func (b *baseShape) Sized() bool { return b.sized }

// Offset is this shape's position relative to its parent's origin, assigned
// during the parent's layout.
func (b *baseShape) Offset() (dx, dy float64) { return b.dx, b.dy }

// Position is the absolute origin recorded by Render.
func (b *baseShape) Position() (x, y float64, ok bool) { return b.x, b.y, b.placed }

// SetPos declares an absolute position for a top-level shape.
func (b *baseShape) SetPos(x, y float64) { b.pos = geo.NewPoint(x, y) }

// SetNear declares placement relative to another shape's center.
func (b *baseShape) SetNear(id string, dx, dy float64) {
	b.near = &NearPlacement{ID: id, Dx: dx, Dy: dy}
}

func (b *baseShape) ShapeByID(id string) Shape {
	if id != "" && b.id == id {
		return b.self
	}
	return nil
}

// ConnectionPoints for rectangular shapes: the four side midpoints,
// enumerated top, right, bottom, left, with normals pointing away from the
// shape.
func (b *baseShape) ConnectionPoints() []ConnectionPoint {
	if !b.placed {
		return nil
	}
	return []ConnectionPoint{
		{Pos: geo.NewPoint(b.x+b.width/2, b.y), Normal: geo.NewVector(0, -1)},
		{Pos: geo.NewPoint(b.x+b.width, b.y+b.height/2), Normal: geo.NewVector(1, 0)},
		{Pos: geo.NewPoint(b.x+b.width/2, b.y+b.height), Normal: geo.NewVector(0, 1)},
		{Pos: geo.NewPoint(b.x, b.y+b.height/2), Normal: geo.NewVector(-1, 0)},
	}
}

func (b *baseShape) setSize(width, height float64) {
	b.width = width
	b.height = height
	b.sized = true
}

func (b *baseShape) place(x, y float64) {
	b.x = x
	b.y = y
	b.placed = true
}

// refID names the shape in diagnostics and warnings.
func (b *baseShape) refID() string {
	if b.id != "" {
		return b.id
	}
	return "(anonymous)"
}

func (b *baseShape) renderBeforeLayout() error {
	return fmt.Errorf("shape %s: rendered before layout", b.refID())
}

// strokeAttrs sets the shared stroke presentation attributes.
func (b *baseShape) strokeAttrs(el *element.Element) {
	el.Set("stroke", b.style.stroke())
	el.SetFloat("stroke-width", b.style.strokeWidth())
	if b.style.StrokeDash > 0 {
		dash, gap := svg.GetStrokeDashAttributes(b.style.strokeWidth(), b.style.StrokeDash)
		el.Set("stroke-dasharray", element.FormatFloat(dash)+","+element.FormatFloat(gap))
	}
}
