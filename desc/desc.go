// Package desc builds diagrams from a declarative JSON description: a tree
// of shape nodes plus a flat list of connectors. It is the caller-side layer
// in front of the core engine; the core never depends on it.
//
// Unknown fields and unknown shape types are rejected rather than silently
// absorbed.
package desc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"oss.terrastruct.com/blockdiag/diagram"
)

type Description struct {
	Shapes     []Shape     `json:"shapes"`
	Connectors []Connector `json:"connectors,omitempty"`
}

type Shape struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`

	// Top-level placement: either absolute coordinates or a near reference.
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Near *Near    `json:"near,omitempty"`

	Width        *float64 `json:"width,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	Fill         string   `json:"fill,omitempty"`
	Stroke       string   `json:"stroke,omitempty"`
	StrokeWidth  *float64 `json:"strokeWidth,omitempty"`
	StrokeDash   float64  `json:"strokeDash,omitempty"`
	BorderRadius float64  `json:"borderRadius,omitempty"`

	HAlign string `json:"halign,omitempty"`
	VAlign string `json:"valign,omitempty"`

	// Padding is a number or an array of 1-4 numbers (CSS shorthand).
	Padding json.RawMessage `json:"padding,omitempty"`
	Spacing *float64        `json:"spacing,omitempty"`

	FontSize float64 `json:"fontSize,omitempty"`
	Bold     bool    `json:"bold,omitempty"`

	Children []Shape `json:"children,omitempty"`
}

type Near struct {
	ID string  `json:"id"`
	Dx float64 `json:"dx,omitempty"`
	Dy float64 `json:"dy,omitempty"`
}

type Connector struct {
	From string `json:"from"`
	To   string `json:"to"`

	FromMarker string `json:"fromMarker,omitempty"`
	ToMarker   string `json:"toMarker,omitempty"`

	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	StrokeDash  float64  `json:"strokeDash,omitempty"`
}

// Parse decodes a JSON description and builds the diagram. The markers
// registry is handed to the diagram as-is; nil means the stock catalog.
func Parse(b []byte, markers diagram.Registry) (*diagram.Diagram, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var description Description
	if err := dec.Decode(&description); err != nil {
		return nil, fmt.Errorf("desc: %w", err)
	}
	return Build(&description, markers)
}

// Build constructs the diagram from an already-decoded description.
func Build(description *Description, markers diagram.Registry) (*diagram.Diagram, error) {
	d := diagram.NewDiagram(markers)
	for i, sd := range description.Shapes {
		s, err := buildShape(sd, true)
		if err != nil {
			return nil, fmt.Errorf("desc: shapes[%d]: %w", i, err)
		}
		d.Shapes = append(d.Shapes, s)
	}
	for i, cd := range description.Connectors {
		if cd.From == "" || cd.To == "" {
			return nil, fmt.Errorf(`desc: connectors[%d]: "from" and "to" are required`, i)
		}
		d.Connectors = append(d.Connectors, &diagram.Connector{
			From:        cd.From,
			To:          cd.To,
			FromMarker:  cd.FromMarker,
			ToMarker:    cd.ToMarker,
			Stroke:      cd.Stroke,
			StrokeWidth: cd.StrokeWidth,
			StrokeDash:  cd.StrokeDash,
		})
	}
	return d, nil
}

func buildShape(sd Shape, topLevel bool) (diagram.Shape, error) {
	style, err := toStyle(sd)
	if err != nil {
		return nil, err
	}

	isContainer := sd.Type == "vbox" || sd.Type == "hbox"
	if !isContainer && len(sd.Children) > 0 {
		return nil, fmt.Errorf("shape type %q cannot have children", sd.Type)
	}
	if !topLevel && (sd.X != nil || sd.Y != nil || sd.Near != nil) {
		return nil, fmt.Errorf("shape %q: only top-level shapes take a position", sd.ID)
	}

	var children []diagram.Shape
	for i, cd := range sd.Children {
		c, err := buildShape(cd, false)
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		children = append(children, c)
	}

	var s diagram.Shape
	switch sd.Type {
	case "vbox":
		s = diagram.NewVBox(sd.ID, style, children...)
	case "hbox":
		s = diagram.NewHBox(sd.ID, style, children...)
	case "text":
		s = diagram.NewText(sd.ID, sd.Label, style)
	case "circle":
		s = diagram.NewCircle(sd.ID, style)
	case "ellipse":
		s = diagram.NewEllipse(sd.ID, style)
	case "db", "cylinder":
		s = diagram.NewCylinder(sd.ID, style)
	case "user", "person":
		s = diagram.NewPerson(sd.ID, style)
	default:
		return nil, fmt.Errorf("unknown shape type %q", sd.Type)
	}

	// A top-level shape lacking a full position stays unplaced here; the
	// render pass reports it.
	if sd.X != nil && sd.Y != nil {
		s.(positioner).SetPos(*sd.X, *sd.Y)
	}
	if sd.Near != nil {
		s.(positioner).SetNear(sd.Near.ID, sd.Near.Dx, sd.Near.Dy)
	}
	return s, nil
}

// positioner is the placement surface every shape variant carries; it is not
// part of the core Shape interface because nested shapes never use it.
type positioner interface {
	SetPos(x, y float64)
	SetNear(id string, dx, dy float64)
}

func toStyle(sd Shape) (diagram.Style, error) {
	padding, err := parsePadding(sd.Padding)
	if err != nil {
		return diagram.Style{}, err
	}
	style := diagram.Style{
		Fill:         sd.Fill,
		Stroke:       sd.Stroke,
		StrokeWidth:  sd.StrokeWidth,
		StrokeDash:   sd.StrokeDash,
		BorderRadius: sd.BorderRadius,
		HAlign:       diagram.Align(sd.HAlign),
		VAlign:       diagram.Align(sd.VAlign),
		Padding:      padding,
		Spacing:      sd.Spacing,
		Width:        sd.Width,
		Height:       sd.Height,
		FontSize:     sd.FontSize,
		Bold:         sd.Bold,
	}
	if err := style.Validate(); err != nil {
		return diagram.Style{}, err
	}
	return style, nil
}

func parsePadding(raw json.RawMessage) (diagram.Padding, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var uniform float64
	if err := json.Unmarshal(raw, &uniform); err == nil {
		return diagram.Padding{uniform}, nil
	}
	var values []float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("padding: want a number or an array of 1-4 numbers: %w", err)
	}
	p := diagram.Padding(values)
	if _, err := p.Resolve(); err != nil {
		return nil, err
	}
	return p, nil
}
