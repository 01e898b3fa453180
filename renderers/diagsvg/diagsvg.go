// diagsvg materializes a rendered diagram's element tree as an SVG document.
package diagsvg

import (
	"bytes"
	"fmt"

	"oss.terrastruct.com/blockdiag/diagram"
	"oss.terrastruct.com/blockdiag/lib/element"
	"oss.terrastruct.com/blockdiag/lib/svg"
)

type RenderOpts struct {
	// Pad is uniform whitespace added around the diagram. The elements are
	// wrapped in a translate group and the canvas grows by 2*Pad per axis.
	Pad int64
}

// Render serializes the rendered diagram as a standalone SVG document.
func Render(rendered *diagram.Rendered, opts *RenderOpts) ([]byte, error) {
	if opts == nil {
		opts = &RenderOpts{}
	}
	if opts.Pad < 0 {
		return nil, fmt.Errorf("diagsvg: pad must be non-negative, got %d", opts.Pad)
	}
	pad := float64(opts.Pad)

	width := rendered.Width + 2*pad
	height := rendered.Height + 2*pad

	buf := &bytes.Buffer{}
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %[1]s %[2]s">`,
		element.FormatFloat(width), element.FormatFloat(height))
	buf.WriteByte('\n')

	if pad > 0 {
		fmt.Fprintf(buf, `<g transform="translate(%s %s)">`,
			element.FormatFloat(pad), element.FormatFloat(pad))
		buf.WriteByte('\n')
	}
	for _, el := range rendered.Elements {
		writeElement(buf, el)
		buf.WriteByte('\n')
	}
	if pad > 0 {
		buf.WriteString("</g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func writeElement(buf *bytes.Buffer, el *element.Element) {
	buf.WriteByte('<')
	buf.WriteString(el.Tag)
	for _, a := range el.Attrs {
		fmt.Fprintf(buf, ` %s="%s"`, a.Key, svg.EscapeText(a.Value))
	}
	if len(el.Children) == 0 && el.Text == "" {
		buf.WriteString(" />")
		return
	}
	buf.WriteByte('>')
	if el.Text != "" {
		buf.WriteString(svg.EscapeText(el.Text))
	}
	for _, c := range el.Children {
		writeElement(buf, c)
	}
	buf.WriteString("</" + el.Tag + ">")
}
