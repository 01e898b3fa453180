package diagram

import (
	"context"

	"cdr.dev/slog"

	"oss.terrastruct.com/blockdiag/lib/element"
	"oss.terrastruct.com/blockdiag/lib/log"
	"oss.terrastruct.com/blockdiag/lib/svg"
)

// Connector joins two shapes by identifier with a straight segment between
// their closest connection points. Either end may carry a named marker.
type Connector struct {
	From string
	To   string

	FromMarker string
	ToMarker   string

	Stroke      string
	StrokeWidth *float64
	StrokeDash  float64
}

func (c *Connector) stroke() string {
	if c.Stroke == "" {
		return DefaultLineStroke
	}
	return c.Stroke
}

func (c *Connector) strokeWidth() float64 {
	if c.StrokeWidth == nil {
		return DefaultStrokeWidth
	}
	return *c.StrokeWidth
}

// render resolves both endpoints and emits the segment plus markers. Every
// failure here is a configuration defect: the connector is skipped with a
// warning and the rest of the diagram renders normally.
func (c *Connector) render(ctx context.Context, d *Diagram) []*element.Element {
	if c.From == "" || c.To == "" {
		log.Warn(ctx, "connector missing an endpoint id, skipping",
			slog.F("from", c.From), slog.F("to", c.To))
		return nil
	}
	src := d.ShapeByID(c.From)
	if src == nil {
		log.Warn(ctx, "connector endpoint not found, skipping", slog.F("id", c.From))
		return nil
	}
	dst := d.ShapeByID(c.To)
	if dst == nil {
		log.Warn(ctx, "connector endpoint not found, skipping", slog.F("id", c.To))
		return nil
	}

	start, end, ok := ClosestPair(src.ConnectionPoints(), dst.ConnectionPoints())
	if !ok {
		log.Warn(ctx, "connector endpoints expose no connection points, skipping",
			slog.F("from", c.From), slog.F("to", c.To))
		return nil
	}

	line := element.New("line")
	line.SetFloat("x1", start.Pos.X)
	line.SetFloat("y1", start.Pos.Y)
	line.SetFloat("x2", end.Pos.X)
	line.SetFloat("y2", end.Pos.Y)
	line.Set("stroke", c.stroke())
	line.SetFloat("stroke-width", c.strokeWidth())
	if c.StrokeDash > 0 {
		dash, gap := svg.GetStrokeDashAttributes(c.strokeWidth(), c.StrokeDash)
		line.Set("stroke-dasharray", element.FormatFloat(dash)+","+element.FormatFloat(gap))
	}

	out := []*element.Element{line}
	out = append(out, c.marker(ctx, d, c.FromMarker, start)...)
	out = append(out, c.marker(ctx, d, c.ToMarker, end)...)
	return out
}

func (c *Connector) marker(ctx context.Context, d *Diagram, name string, at ConnectionPoint) []*element.Element {
	if name == "" {
		return nil
	}
	m, ok := d.markers[name]
	if !ok {
		log.Warn(ctx, "unknown marker, connector line renders without it",
			slog.F("marker", name), slog.F("from", c.From), slog.F("to", c.To))
		return nil
	}
	return []*element.Element{m.Place(at.Pos, at.Normal, c.stroke(), c.strokeWidth())}
}
