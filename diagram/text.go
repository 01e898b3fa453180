package diagram

import (
	"context"
	"fmt"

	"oss.terrastruct.com/blockdiag/lib/element"
	"oss.terrastruct.com/blockdiag/lib/textmeasure"
)

// baselineFactor shifts the text origin down by this fraction of the measured
// height when emitting the primitive. It approximates vertical centering
// without access to true font ascent/descent; it is not exact for all fonts.
const baselineFactor = 0.8

// Text is a leaf whose size comes from the text-measurement collaborator.
type Text struct {
	baseShape

	Label string
}

func NewText(id, label string, style Style) *Text {
	t := &Text{
		baseShape: baseShape{id: id, style: style},
		Label:     label,
	}
	t.self = t
	return t
}

func (t *Text) Layout(ctx context.Context, m Measurer) error {
	if m == nil {
		return fmt.Errorf("text %s: no text measurer available", t.refID())
	}
	f := textmeasure.Font{Size: t.style.fontSize(), Bold: t.style.Bold}
	width, height, err := m.Measure(f, t.Label)
	if err != nil {
		return fmt.Errorf("text %s: measure: %w", t.refID(), err)
	}
	t.setSize(width, height)
	return nil
}

func (t *Text) Render(x, y float64) ([]*element.Element, error) {
	if !t.sized {
		return nil, t.renderBeforeLayout()
	}
	t.place(x, y)

	fill := t.style.Fill
	if fill == "" {
		fill = DefaultTextFill
	}

	el := element.New("text")
	el.SetFloat("x", x)
	el.SetFloat("y", y+baselineFactor*t.height)
	el.SetFloat("font-size", t.style.fontSize())
	if t.style.Bold {
		el.Set("font-weight", "bold")
	}
	el.Set("fill", fill)
	el.Text = t.Label
	return []*element.Element{el}, nil
}
