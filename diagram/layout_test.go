package diagram

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/blockdiag/lib/textmeasure"
)

// stubMeasurer reports a fixed size for every string, or a fixed error.
type stubMeasurer struct {
	w, h float64
	err  error
}

func (m *stubMeasurer) Measure(f textmeasure.Font, s string) (float64, float64, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	return m.w, m.h, nil
}

func float64Ptr(v float64) *float64 { return &v }

func TestPaddingResolve(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		padding Padding
		want    Edges
	}{
		{Padding{5}, Edges{Top: 5, Right: 5, Bottom: 5, Left: 5}},
		{Padding{5, 10}, Edges{Top: 5, Right: 10, Bottom: 5, Left: 10}},
		{Padding{5, 10, 15}, Edges{Top: 5, Right: 10, Bottom: 15, Left: 10}},
		{Padding{5, 10, 15, 20}, Edges{Top: 5, Right: 10, Bottom: 15, Left: 20}},
		{nil, Edges{}},
	}
	for _, tc := range testCases {
		got, err := tc.padding.Resolve()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	// The one-value shorthand is equivalent to repeating it up to four times.
	uniform, err := Padding{10}.Resolve()
	require.NoError(t, err)
	for _, p := range []Padding{{10, 10}, {10, 10, 10}, {10, 10, 10, 10}} {
		got, err := p.Resolve()
		require.NoError(t, err)
		assert.Equal(t, uniform, got)
	}

	_, err = Padding{1, 2, 3, 4, 5}.Resolve()
	assert.Error(t, err)
}

func TestVBoxContentExtent(t *testing.T) {
	t.Parallel()

	// Sum of child extents plus (N-1)*spacing is the content extent for all N.
	m := &stubMeasurer{w: 30, h: 12}
	for n := 0; n <= 5; n++ {
		var children []Shape
		for i := 0; i < n; i++ {
			children = append(children, NewText("", fmt.Sprintf("line %d", i), Style{}))
		}
		box := NewVBox("b", Style{Spacing: float64Ptr(7)}, children...)
		require.NoError(t, box.Layout(context.Background(), m))

		width, height := box.Size()
		wantHeight := float64(n) * 12
		if n > 0 {
			wantHeight += float64(n-1) * 7
		}
		assert.Equal(t, wantHeight, height, "n=%d", n)
		if n == 0 {
			assert.Equal(t, 0., width)
		} else {
			assert.Equal(t, 30., width)
		}
	}
}

func TestHBoxPaddingAndSpacing(t *testing.T) {
	t.Parallel()

	m := &stubMeasurer{w: 40, h: 10}
	box := NewHBox("b", Style{
		Padding: Padding{5, 10, 15, 20},
		Spacing: float64Ptr(6),
	},
		NewText("t1", "a", Style{}),
		NewText("t2", "b", Style{}),
	)
	require.NoError(t, box.Layout(context.Background(), m))

	width, height := box.Size()
	// left 20 + 40 + 6 + 40 + right 10
	assert.Equal(t, 116., width)
	// top 5 + 10 + bottom 15
	assert.Equal(t, 30., height)

	dx, dy := box.children[0].base().Offset()
	assert.Equal(t, 20., dx)
	assert.Equal(t, 5., dy)
	dx, dy = box.children[1].base().Offset()
	assert.Equal(t, 66., dx)
	assert.Equal(t, 5., dy)
}

func TestForcedSizeAlignment(t *testing.T) {
	t.Parallel()

	m := &stubMeasurer{w: 20, h: 10}
	// Forced height 100 with one 10-tall child leaves 90 of slack on the
	// stacking axis.
	testCases := []struct {
		align  Align
		wantDy float64
	}{
		{AlignLeading, 0},
		{AlignCenter, 45},
		{"", 45}, // unset defaults to center
		{AlignTrailing, 90},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(string(tc.align), func(t *testing.T) {
			t.Parallel()
			box := NewVBox("b", Style{
				Height: float64Ptr(100),
				Width:  float64Ptr(60),
				VAlign: tc.align,
			}, NewText("t", "x", Style{}))
			require.NoError(t, box.Layout(context.Background(), m))

			width, height := box.Size()
			assert.Equal(t, 60., width)
			assert.Equal(t, 100., height)

			dx, dy := box.children[0].base().Offset()
			assert.Equal(t, tc.wantDy, dy)
			// cross axis defaults to center: (60-20)/2
			assert.Equal(t, 20., dx)
		})
	}
}

func TestNegativeSlackOverflows(t *testing.T) {
	t.Parallel()

	m := &stubMeasurer{w: 50, h: 30}
	box := NewVBox("b", Style{
		Height: float64Ptr(20),
		VAlign: AlignCenter,
	}, NewText("t", "x", Style{}))
	require.NoError(t, box.Layout(context.Background(), m))

	// The child overflows: slack is -10, distributed, never clipped.
	_, dy := box.children[0].base().Offset()
	assert.Equal(t, -5., dy)
	_, height := box.Size()
	assert.Equal(t, 20., height)
}

func TestNestedLayout(t *testing.T) {
	t.Parallel()

	m := &stubMeasurer{w: 30, h: 10}
	inner := NewHBox("inner", Style{Padding: Padding{2}, Spacing: float64Ptr(4)},
		NewText("a", "a", Style{}),
		NewText("b", "b", Style{}),
	)
	outer := NewVBox("outer", Style{Padding: Padding{10}, Spacing: float64Ptr(0)},
		inner,
		NewText("c", "c", Style{}),
	)
	require.NoError(t, outer.Layout(context.Background(), m))

	innerWidth, innerHeight := inner.Size()
	assert.Equal(t, 68., innerWidth) // 2+30+4+30+2
	assert.Equal(t, 14., innerHeight)

	width, height := outer.Size()
	assert.Equal(t, 88., width)  // 10+68+10
	assert.Equal(t, 44., height) // 10+14+0+10+10
}

func TestLayoutIdempotent(t *testing.T) {
	t.Parallel()

	m := &stubMeasurer{w: 25, h: 15}
	box := NewVBox("b", Style{Padding: Padding{3, 6}},
		NewText("a", "a", Style{}),
		NewHBox("h", Style{}, NewText("b", "b", Style{})),
	)
	require.NoError(t, box.Layout(context.Background(), m))

	type snapshot struct {
		width, height, dx, dy float64
	}
	capture := func() []snapshot {
		var snaps []snapshot
		var walk func(s Shape)
		walk = func(s Shape) {
			w, h := s.Size()
			dx, dy := s.base().Offset()
			snaps = append(snaps, snapshot{w, h, dx, dy})
			if b, ok := s.(*Box); ok {
				for _, c := range b.Children() {
					walk(c)
				}
			}
		}
		walk(box)
		return snaps
	}

	first := capture()
	require.NoError(t, box.Layout(context.Background(), m))
	assert.Equal(t, first, capture())
}

func TestLayoutChildErrorWrapsID(t *testing.T) {
	t.Parallel()

	m := &stubMeasurer{err: fmt.Errorf("no face")}
	box := NewVBox("outer", Style{}, NewHBox("inner", Style{}, NewText("leaf", "x", Style{})))
	err := box.Layout(context.Background(), m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outer")
	assert.Contains(t, err.Error(), "inner")
	assert.Contains(t, err.Error(), "leaf")
}
