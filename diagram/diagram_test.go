package diagram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizedBox(id string, width, height float64) *Box {
	return NewVBox(id, Style{Width: float64Ptr(width), Height: float64Ptr(height)})
}

func TestRenderAutoFit(t *testing.T) {
	t.Parallel()

	a := sizedBox("a", 40, 20)
	a.SetPos(10, 10)
	b := sizedBox("b", 20, 20)
	b.SetPos(-5, 30)

	d := NewDiagram(nil)
	d.Shapes = []Shape{a, b}
	rendered, err := d.Render(context.Background(), nil)
	require.NoError(t, err)

	// left = max(0, -5) = 0, right = max(50, 15) = 50
	// top = max(0, 10) = 0, bottom = max(30, 50) = 50
	assert.Equal(t, 50., rendered.Width)
	assert.Equal(t, 50., rendered.Height)
	assert.Len(t, rendered.Elements, 2)
}

func TestRenderFitKeepsMargin(t *testing.T) {
	t.Parallel()

	a := sizedBox("a", 30, 30)
	a.SetPos(100, 40)

	d := NewDiagram(nil)
	d.Shapes = []Shape{a}
	rendered, err := d.Render(context.Background(), nil)
	require.NoError(t, err)

	// The origin is not re-based: canvas is min edge plus far edge per axis.
	assert.Equal(t, 230., rendered.Width)
	assert.Equal(t, 110., rendered.Height)
}

func TestRenderEmptyDiagram(t *testing.T) {
	t.Parallel()

	rendered, err := NewDiagram(nil).Render(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rendered.Elements)
	assert.Equal(t, 0., rendered.Width)
	assert.Equal(t, 0., rendered.Height)
}

func TestRenderSkipsUnplacedShape(t *testing.T) {
	t.Parallel()

	placed := sizedBox("placed", 40, 40)
	placed.SetPos(0, 0)
	unplaced := sizedBox("unplaced", 40, 40)

	d := NewDiagram(nil)
	d.Shapes = []Shape{placed, unplaced}
	rendered, err := d.Render(context.Background(), nil)
	require.NoError(t, err)

	// The unplaced shape drops with a warning; the rest still renders.
	assert.Len(t, rendered.Elements, 1)
	assert.Equal(t, 40., rendered.Width)
	assert.Equal(t, 40., rendered.Height)
}

func TestRenderNearPlacement(t *testing.T) {
	t.Parallel()

	anchor := sizedBox("anchor", 100, 50)
	anchor.SetPos(0, 0)
	sat := sizedBox("sat", 20, 10)
	sat.SetNear("anchor", 200, 0)

	d := NewDiagram(nil)
	d.Shapes = []Shape{anchor, sat}
	rendered, err := d.Render(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rendered.Elements, 2)

	// The satellite's center lands on the anchor's center plus the offset:
	// (50+200, 25) as center, so origin (240, 20).
	x, y, ok := sat.Position()
	require.True(t, ok)
	assert.Equal(t, 240., x)
	assert.Equal(t, 20., y)
}

func TestRenderNearUnresolvedSkips(t *testing.T) {
	t.Parallel()

	// Forward references are not resolved: near binds to earlier shapes only.
	sat := sizedBox("sat", 20, 10)
	sat.SetNear("anchor", 0, 0)
	anchor := sizedBox("anchor", 100, 50)
	anchor.SetPos(0, 0)

	d := NewDiagram(nil)
	d.Shapes = []Shape{sat, anchor}
	rendered, err := d.Render(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, rendered.Elements, 1)
	_, _, ok := sat.Position()
	assert.False(t, ok)
}

func TestRenderCollectsLayoutErrors(t *testing.T) {
	t.Parallel()

	bad := NewVBox("bad", Style{}, NewText("t", "x", Style{}))
	bad.SetPos(0, 0)
	good := sizedBox("good", 30, 30)
	good.SetPos(50, 0)

	d := NewDiagram(nil)
	d.Shapes = []Shape{bad, good}
	// nil measurer fails the text leaf; the healthy shape still renders.
	rendered, err := d.Render(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Len(t, rendered.Elements, 1)
	assert.Equal(t, 130., rendered.Width)
}

func TestRenderConnectsNestedShapes(t *testing.T) {
	t.Parallel()

	m := &stubMeasurer{w: 40, h: 20}
	box := NewVBox("box", Style{Padding: Padding{10}}, NewText("label", "x", Style{}))
	box.SetPos(0, 0)
	other := sizedBox("other", 30, 30)
	other.SetPos(200, 0)

	d := NewDiagram(nil)
	d.Shapes = []Shape{box, other}
	d.Connectors = []*Connector{{From: "label", To: "other"}}
	rendered, err := d.Render(context.Background(), m)
	require.NoError(t, err)

	// rect + text + rect + line: the nested text is a valid endpoint.
	require.Len(t, rendered.Elements, 4)
	line := rendered.Elements[3]
	assert.Equal(t, "line", line.Tag)
	x1, _ := line.Get("x1")
	assert.Equal(t, "50", x1) // the label's right midpoint at 10+40
}

func TestRenderFailureClearsPlacement(t *testing.T) {
	t.Parallel()

	m := &stubMeasurer{w: 20, h: 10}
	box := NewVBox("box", Style{},
		NewText("a", "a", Style{}),
		NewText("b", "b", Style{}),
	)
	require.NoError(t, box.Layout(context.Background(), m))

	// Break the second child after layout so the render pass fails midway,
	// after the first child has already recorded its position.
	box.children[1].base().sized = false
	_, err := box.Render(0, 0)
	require.Error(t, err)

	assert.Empty(t, box.ConnectionPoints())
	assert.Empty(t, box.children[0].ConnectionPoints())
	_, _, placed := box.Position()
	assert.False(t, placed)
}

func TestShapeByIDDepthFirst(t *testing.T) {
	t.Parallel()

	inner := NewText("x", "x", Style{})
	d := NewDiagram(nil)
	d.Shapes = []Shape{
		NewVBox("a", Style{}, NewHBox("b", Style{}, inner)),
		sizedBox("x", 1, 1), // shadowed: depth-first finds the nested one
	}
	assert.Same(t, Shape(inner), d.ShapeByID("x"))
	assert.Nil(t, d.ShapeByID("ghost"))
	assert.Nil(t, d.ShapeByID(""))
}
