package diagram

import (
	"context"
	"fmt"
	"math"

	"oss.terrastruct.com/blockdiag/lib/element"
)

// Box is a container that stacks its children along one axis: vertically for
// a VBox, horizontally for an HBox. The perpendicular (cross) axis aligns
// each child independently.
type Box struct {
	baseShape

	vertical bool
	children []Shape
}

func NewVBox(id string, style Style, children ...Shape) *Box {
	return newBox(id, style, true, children)
}

func NewHBox(id string, style Style, children ...Shape) *Box {
	return newBox(id, style, false, children)
}

func newBox(id string, style Style, vertical bool, children []Shape) *Box {
	b := &Box{
		baseShape: baseShape{id: id, style: style},
		vertical:  vertical,
		children:  children,
	}
	b.self = b
	return b
}

func (b *Box) Children() []Shape { return b.children }

func (b *Box) ShapeByID(id string) Shape {
	if s := b.baseShape.ShapeByID(id); s != nil {
		return s
	}
	for _, c := range b.children {
		if s := c.ShapeByID(id); s != nil {
			return s
		}
	}
	return nil
}

// extents returns a child's size split by this container's axes.
func (b *Box) extents(c Shape) (main, cross float64) {
	width, height := c.Size()
	if b.vertical {
		return height, width
	}
	return width, height
}

// Layout sizes children bottom-up, then computes this container's size and
// each child's offset.
//
// Stacking axis: children are placed consecutively separated by spacing. A
// forced size on this axis distributes the slack (forced - padding - content)
// as a leading offset per the alignment; otherwise the container sizes to
// content plus padding. Cross axis: each child aligns independently within
// the available extent. Negative slack means the children overflow the
// container's bounds; that is declared client behavior, not corrected here.
func (b *Box) Layout(ctx context.Context, m Measurer) error {
	for _, c := range b.children {
		if err := c.Layout(ctx, m); err != nil {
			return fmt.Errorf("%s: %w", b.refID(), err)
		}
		if !c.Sized() {
			return fmt.Errorf("%s: child %s: layout finished without a size", b.refID(), c.base().refID())
		}
	}

	pad, err := b.style.Padding.Resolve()
	if err != nil {
		return fmt.Errorf("%s: %w", b.refID(), err)
	}
	spacing := b.style.spacing()

	var sumMain, maxCross float64
	for i, c := range b.children {
		mainExt, crossExt := b.extents(c)
		if i > 0 {
			sumMain += spacing
		}
		sumMain += mainExt
		maxCross = math.Max(maxCross, crossExt)
	}

	var padMainStart, padMainEnd, padCrossStart, padCrossEnd float64
	var forcedMain, forcedCross *float64
	var mainAlign, crossAlign Align
	if b.vertical {
		padMainStart, padMainEnd = pad.Top, pad.Bottom
		padCrossStart, padCrossEnd = pad.Left, pad.Right
		forcedMain, forcedCross = b.style.Height, b.style.Width
		mainAlign, crossAlign = b.style.VAlign, b.style.HAlign
	} else {
		padMainStart, padMainEnd = pad.Left, pad.Right
		padCrossStart, padCrossEnd = pad.Top, pad.Bottom
		forcedMain, forcedCross = b.style.Width, b.style.Height
		mainAlign, crossAlign = b.style.HAlign, b.style.VAlign
	}

	lead := padMainStart
	var mainSize float64
	if forcedMain != nil {
		mainSize = *forcedMain
		lead += mainAlign.offset(mainSize - padMainStart - padMainEnd - sumMain)
	} else {
		mainSize = sumMain + padMainStart + padMainEnd
	}

	crossAvail := maxCross
	var crossSize float64
	if forcedCross != nil {
		crossSize = *forcedCross
		crossAvail = crossSize - padCrossStart - padCrossEnd
	} else {
		crossSize = maxCross + padCrossStart + padCrossEnd
	}

	cur := lead
	for i, c := range b.children {
		mainExt, crossExt := b.extents(c)
		if i > 0 {
			cur += spacing
		}
		crossOff := padCrossStart + crossAlign.offset(crossAvail-crossExt)
		if b.vertical {
			c.base().dx, c.base().dy = crossOff, cur
		} else {
			c.base().dx, c.base().dy = cur, crossOff
		}
		cur += mainExt
	}

	if b.vertical {
		b.setSize(crossSize, mainSize)
	} else {
		b.setSize(mainSize, crossSize)
	}
	return nil
}

func (b *Box) Render(x, y float64) ([]*element.Element, error) {
	if !b.sized {
		return nil, b.renderBeforeLayout()
	}
	b.place(x, y)

	rect := element.New("rect")
	rect.SetFloat("x", x)
	rect.SetFloat("y", y)
	rect.SetFloat("width", b.width)
	rect.SetFloat("height", b.height)
	if b.style.BorderRadius > 0 {
		rect.SetFloat("rx", b.style.BorderRadius)
	}
	rect.Set("fill", b.style.fill())
	b.strokeAttrs(rect)

	out := []*element.Element{rect}
	for _, c := range b.children {
		dx, dy := c.base().Offset()
		els, err := c.Render(x+dx, y+dy)
		if err != nil {
			// the whole subtree drops from the output, so none of it may
			// keep advertising connection points
			b.unplace()
			return nil, err
		}
		out = append(out, els...)
	}
	return out, nil
}

func (b *Box) unplace() {
	b.placed = false
	for _, c := range b.children {
		if cb, ok := c.(*Box); ok {
			cb.unplace()
		} else {
			c.base().placed = false
		}
	}
}
