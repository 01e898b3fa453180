package diagram

import (
	"context"
	"fmt"
	"math"

	"cdr.dev/slog"
	"go.uber.org/multierr"

	"oss.terrastruct.com/blockdiag/lib/element"
	"oss.terrastruct.com/blockdiag/lib/geo"
	"oss.terrastruct.com/blockdiag/lib/log"
)

// Diagram owns the ordered top-level shapes, the connectors between them,
// and the marker registry connectors resolve against. A diagram instance
// shares no mutable state with any other; the registry is the only shared
// resource and is read-only.
type Diagram struct {
	Shapes     []Shape
	Connectors []*Connector

	markers Registry
}

// NewDiagram constructs a diagram around the given marker registry. A nil
// registry means the stock catalog.
func NewDiagram(markers Registry) *Diagram {
	if markers == nil {
		markers = DefaultRegistry()
	}
	return &Diagram{markers: markers}
}

func (d *Diagram) Markers() Registry { return d.markers }

// ShapeByID searches all top-level shapes and their descendants depth-first
// and returns the first match, or nil.
func (d *Diagram) ShapeByID(id string) Shape {
	for _, s := range d.Shapes {
		if found := s.ShapeByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Rendered is the output of a full render pass.
type Rendered struct {
	Elements []*element.Element

	// Width and Height are the auto-fit canvas size.
	Width  float64
	Height float64
}

// Render runs the full pass: layout every top-level shape, resolve top-level
// placement, render shapes, then connectors, then compute the auto-fit
// canvas size.
//
// Configuration defects (a shape without a position, a connector that does
// not resolve) skip the affected element with a warning. Structural and
// measurement failures skip the affected top-level shape and are combined
// into the returned error; the healthy remainder still renders.
func (d *Diagram) Render(ctx context.Context, m Measurer) (*Rendered, error) {
	var renderErr error

	laidOut := make([]bool, len(d.Shapes))
	for i, s := range d.Shapes {
		if err := s.Layout(ctx, m); err != nil {
			renderErr = multierr.Append(renderErr, fmt.Errorf("layout: %w", err))
			continue
		}
		if !s.Sized() {
			renderErr = multierr.Append(renderErr,
				fmt.Errorf("layout: shape %s: layout finished without a size", s.base().refID()))
			continue
		}
		laidOut[i] = true
	}

	origins := d.resolvePlacement(ctx, laidOut)

	var out []*element.Element
	for i, s := range d.Shapes {
		if origins[i] == nil {
			continue
		}
		els, err := s.Render(origins[i].X, origins[i].Y)
		if err != nil {
			renderErr = multierr.Append(renderErr, fmt.Errorf("render: %w", err))
			origins[i] = nil
			continue
		}
		out = append(out, els...)
	}

	// Connectors route only now: absolute positions exist for every rendered
	// shape, so the identifier index is finally meaningful.
	for _, c := range d.Connectors {
		out = append(out, c.render(ctx, d)...)
	}

	width, height := d.fitSize(origins)
	return &Rendered{Elements: out, Width: width, Height: height}, renderErr
}

// resolvePlacement turns declared top-level placement into absolute origins.
// Relative ("near") placement resolves in declaration order against
// already-placed top-level shapes: the target's center plus the offset
// becomes this shape's center.
func (d *Diagram) resolvePlacement(ctx context.Context, laidOut []bool) []*geo.Point {
	origins := make([]*geo.Point, len(d.Shapes))
	for i, s := range d.Shapes {
		if !laidOut[i] {
			continue
		}
		b := s.base()
		switch {
		case b.pos != nil:
			origins[i] = b.pos.Copy()
		case b.near != nil:
			target := -1
			for j := 0; j < i; j++ {
				if origins[j] != nil && d.Shapes[j].ID() == b.near.ID {
					target = j
					break
				}
			}
			if target == -1 {
				log.Warn(ctx, "near target is not an earlier placed top-level shape, skipping shape",
					slog.F("shape", b.refID()), slog.F("near", b.near.ID))
				continue
			}
			tw, th := d.Shapes[target].Size()
			cx := origins[target].X + tw/2 + b.near.Dx
			cy := origins[target].Y + th/2 + b.near.Dy
			width, height := s.Size()
			origins[i] = geo.NewPoint(cx-width/2, cy-height/2)
		default:
			log.Warn(ctx, "top-level shape has no position, skipping",
				slog.F("shape", b.refID()))
		}
	}
	return origins
}

// fitSize computes the auto-fit canvas from the union of placed top-level
// shapes: left = max(0, min x), top = max(0, min y), and the canvas extends
// to left+right and top+bottom. The origin is not re-based, so shapes at
// negative coordinates simply hang off the canvas.
func (d *Diagram) fitSize(origins []*geo.Point) (width, height float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxRight, maxBottom := math.Inf(-1), math.Inf(-1)

	placed := false
	for i, s := range d.Shapes {
		if origins[i] == nil {
			continue
		}
		placed = true
		w, h := s.Size()
		minX = math.Min(minX, origins[i].X)
		minY = math.Min(minY, origins[i].Y)
		maxRight = math.Max(maxRight, origins[i].X+w)
		maxBottom = math.Max(maxBottom, origins[i].Y+h)
	}
	if !placed {
		return 0, 0
	}

	left := math.Max(0, minX)
	top := math.Max(0, minY)
	return left + maxRight, top + maxBottom
}
