// Package blockdiag renders block diagrams: trees of boxes and labels laid
// out by a box model, joined by straight connectors routed between closest
// boundary points, written out as SVG.
//
// This package is the one-call surface over desc, diagram and
// renderers/diagsvg; embedders wanting to build shape trees programmatically
// should use those packages directly.
package blockdiag

import (
	"context"

	"oss.terrastruct.com/blockdiag/desc"
	"oss.terrastruct.com/blockdiag/diagram"
	"oss.terrastruct.com/blockdiag/lib/textmeasure"
	"oss.terrastruct.com/blockdiag/renderers/diagsvg"
)

type RenderOptions struct {
	// Pad is uniform whitespace in pixels around the diagram.
	Pad int64
	// Ruler measures text. When nil one is built from the bundled fonts.
	Ruler *textmeasure.Ruler
	// Markers overrides the stock marker catalog.
	Markers diagram.Registry
}

// Render renders a JSON diagram description to SVG.
//
// On layout or render defects the healthy remainder of the diagram is still
// rendered: Render returns the SVG for everything that succeeded alongside
// the combined error for everything that did not.
func Render(ctx context.Context, input []byte, opts *RenderOptions) ([]byte, error) {
	if opts == nil {
		opts = &RenderOptions{}
	}

	d, err := desc.Parse(input, opts.Markers)
	if err != nil {
		return nil, err
	}

	ruler := opts.Ruler
	if ruler == nil {
		ruler, err = textmeasure.NewRuler()
		if err != nil {
			return nil, err
		}
	}

	rendered, renderErr := d.Render(ctx, ruler)
	out, err := diagsvg.Render(rendered, &diagsvg.RenderOpts{Pad: opts.Pad})
	if err != nil {
		return nil, err
	}
	return out, renderErr
}
