package diagram

import (
	"context"
	"math"

	"oss.terrastruct.com/blockdiag/lib/element"
	"oss.terrastruct.com/blockdiag/lib/geo"
	"oss.terrastruct.com/blockdiag/lib/svg"
)

// Decorative leaves. Their size is declared or defaulted, never
// content-driven, so Layout needs no measurer.

const (
	defaultCircleDiameter = 40.
	defaultEllipseWidth   = 60.
	defaultEllipseHeight  = 40.
	defaultCylinderWidth  = 60.
	defaultCylinderHeight = 60.

	// canonical drawing space of the person glyph
	personAspectWidth  = 68.3
	personAspectHeight = 77.4

	defaultPersonWidth = 55.
)

// Circle is a fixed 1:1 aspect leaf.
type Circle struct {
	Ellipse
}

func NewCircle(id string, style Style) *Circle {
	c := &Circle{Ellipse{baseShape: baseShape{id: id, style: style}}}
	c.self = c
	return c
}

func (c *Circle) Layout(ctx context.Context, m Measurer) error {
	d := defaultCircleDiameter
	if c.style.Width != nil {
		d = *c.style.Width
	} else if c.style.Height != nil {
		d = *c.style.Height
	}
	c.setSize(d, d)
	return nil
}

// Ellipse is an axis-aligned ellipse leaf.
type Ellipse struct {
	baseShape
}

func NewEllipse(id string, style Style) *Ellipse {
	e := &Ellipse{baseShape{id: id, style: style}}
	e.self = e
	return e
}

func (e *Ellipse) Layout(ctx context.Context, m Measurer) error {
	width, height := defaultEllipseWidth, defaultEllipseHeight
	if e.style.Width != nil {
		width = *e.style.Width
	}
	if e.style.Height != nil {
		height = *e.style.Height
	}
	e.setSize(width, height)
	return nil
}

func (e *Ellipse) Render(x, y float64) ([]*element.Element, error) {
	if !e.sized {
		return nil, e.renderBeforeLayout()
	}
	e.place(x, y)

	el := element.New("ellipse")
	el.SetFloat("cx", x+e.width/2)
	el.SetFloat("cy", y+e.height/2)
	el.SetFloat("rx", e.width/2)
	el.SetFloat("ry", e.height/2)
	el.Set("fill", e.style.fill())
	e.strokeAttrs(el)
	return []*element.Element{el}, nil
}

// ConnectionPoints overrides the rectangular default with eight points around
// the ellipse at 45 degree steps, normals along the true ellipse normal.
func (e *Ellipse) ConnectionPoints() []ConnectionPoint {
	if !e.placed {
		return nil
	}
	cx, cy := e.x+e.width/2, e.y+e.height/2
	rx, ry := e.width/2, e.height/2
	// a zero radius collapses the ellipse to a segment with no defined
	// outward normal
	if rx == 0 || ry == 0 {
		return nil
	}

	points := make([]ConnectionPoint, 0, 8)
	for i := 0; i < 8; i++ {
		theta := float64(i) * math.Pi / 4
		cos, sin := math.Cos(theta), math.Sin(theta)
		points = append(points, ConnectionPoint{
			Pos: geo.NewPoint(cx+rx*cos, cy+ry*sin),
			// gradient of (x/rx)^2 + (y/ry)^2, normalized
			Normal: geo.NewVector(cos/rx, sin/ry).Unit(),
		})
	}
	return points
}

// Cylinder is the "db" icon: a can with an elliptical lid.
type Cylinder struct {
	baseShape
}

func NewCylinder(id string, style Style) *Cylinder {
	c := &Cylinder{baseShape{id: id, style: style}}
	c.self = c
	return c
}

func (c *Cylinder) Layout(ctx context.Context, m Measurer) error {
	width, height := defaultCylinderWidth, defaultCylinderHeight
	if c.style.Width != nil {
		width = *c.style.Width
	}
	if c.style.Height != nil {
		height = *c.style.Height
	}
	c.setSize(width, height)
	return nil
}

func (c *Cylinder) Render(x, y float64) ([]*element.Element, error) {
	if !c.sized {
		return nil, c.renderBeforeLayout()
	}
	c.place(x, y)

	box := geo.NewBox(geo.NewPoint(x, y), c.width, c.height)
	outer := element.New("path")
	outer.Set("d", cylinderOuterPath(box).PathData())
	outer.Set("fill", c.style.fill())
	c.strokeAttrs(outer)

	lid := element.New("path")
	lid.Set("d", cylinderLidPath(box).PathData())
	lid.Set("fill", "none")
	c.strokeAttrs(lid)

	return []*element.Element{outer, lid}, nil
}

func cylinderArcDepth(box *geo.Box) float64 {
	arcDepth := 24.0
	if box.Height < arcDepth*2 {
		arcDepth = box.Height / 2
	}
	return arcDepth
}

func cylinderOuterPath(box *geo.Box) *svg.PathContext {
	arcDepth := cylinderArcDepth(box)
	multiplier := 0.45
	pc := svg.NewPathContext(box.TopLeft, 1, 1)
	pc.StartAt(pc.Absolute(0, arcDepth))
	pc.C(false, 0, 0, box.Width*multiplier, 0, box.Width/2, 0)
	pc.C(false, box.Width-box.Width*multiplier, 0, box.Width, 0, box.Width, arcDepth)
	pc.V(true, box.Height-arcDepth*2)
	pc.C(false, box.Width, box.Height, box.Width-box.Width*multiplier, box.Height, box.Width/2, box.Height)
	pc.C(false, box.Width*multiplier, box.Height, 0, box.Height, 0, box.Height-arcDepth)
	pc.V(true, -(box.Height - arcDepth*2))
	pc.Z()
	return pc
}

func cylinderLidPath(box *geo.Box) *svg.PathContext {
	arcDepth := cylinderArcDepth(box)
	multiplier := 0.45
	pc := svg.NewPathContext(box.TopLeft, 1, 1)
	pc.StartAt(pc.Absolute(0, arcDepth))
	pc.C(false, 0, arcDepth*2, box.Width*multiplier, arcDepth*2, box.Width/2, arcDepth*2)
	pc.C(false, box.Width-box.Width*multiplier, arcDepth*2, box.Width, arcDepth*2, box.Width, arcDepth)
	return pc
}

// Person is the "user" icon.
type Person struct {
	baseShape
}

func NewPerson(id string, style Style) *Person {
	p := &Person{baseShape{id: id, style: style}}
	p.self = p
	return p
}

func (p *Person) Layout(ctx context.Context, m Measurer) error {
	var width, height float64
	switch {
	case p.style.Width != nil && p.style.Height != nil:
		width, height = *p.style.Width, *p.style.Height
	case p.style.Width != nil:
		width = *p.style.Width
		height = width * personAspectHeight / personAspectWidth
	case p.style.Height != nil:
		height = *p.style.Height
		width = height * personAspectWidth / personAspectHeight
	default:
		width = defaultPersonWidth
		height = width * personAspectHeight / personAspectWidth
	}
	p.setSize(width, height)
	return nil
}

func (p *Person) Render(x, y float64) ([]*element.Element, error) {
	if !p.sized {
		return nil, p.renderBeforeLayout()
	}
	p.place(x, y)

	box := geo.NewBox(geo.NewPoint(x, y), p.width, p.height)
	el := element.New("path")
	el.Set("d", personPath(box).PathData())
	el.Set("fill", p.style.fill())
	p.strokeAttrs(el)
	return []*element.Element{el}, nil
}

func personPath(box *geo.Box) *svg.PathContext {
	pc := svg.NewPathContext(box.TopLeft, box.Width/personAspectWidth, box.Height/personAspectHeight)

	// Bottom side
	pc.StartAt(pc.Absolute(personAspectWidth, personAspectHeight))
	pc.H(false, 0)
	pc.V(true, -1.1)
	pc.C(true, 0, -13.2, 7.5, -25.1, 19.3, -30.8)
	pc.C(false, 12.8, 40.9, 8.9, 33.4, 8.9, 25.2)
	pc.C(false, 8.9, 11.3, 20.2, 0, 34.1, 0)
	pc.C(true, 13.9, 0, 25.2, 11.3, 25.2, 25.2)
	pc.C(true, 0, 8.2, -3.8, 15.6, -10.4, 20.4)
	pc.C(true, 11.8, 5.7, 19.3, 17.6, 19.3, 30.8)
	pc.V(true, 1)
	pc.H(false, personAspectWidth)
	pc.Z()
	return pc
}
