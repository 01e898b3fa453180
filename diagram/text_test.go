package diagram

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/blockdiag/lib/textmeasure"
)

// recordingMeasurer captures the font each measurement was requested with.
type recordingMeasurer struct {
	stubMeasurer
	fonts []textmeasure.Font
}

func (m *recordingMeasurer) Measure(f textmeasure.Font, s string) (float64, float64, error) {
	m.fonts = append(m.fonts, f)
	return m.stubMeasurer.Measure(f, s)
}

func TestTextLayout(t *testing.T) {
	t.Parallel()

	m := &recordingMeasurer{stubMeasurer: stubMeasurer{w: 120, h: 20}}
	text := NewText("t", "hello", Style{FontSize: 24, Bold: true})
	require.NoError(t, text.Layout(context.Background(), m))

	width, height := text.Size()
	assert.Equal(t, 120., width)
	assert.Equal(t, 20., height)
	require.Len(t, m.fonts, 1)
	assert.Equal(t, textmeasure.Font{Size: 24, Bold: true}, m.fonts[0])
}

func TestTextBaselineOffset(t *testing.T) {
	t.Parallel()

	text := NewText("t", "hello", Style{})
	require.NoError(t, text.Layout(context.Background(), &stubMeasurer{w: 50, h: 20}))

	els, err := text.Render(10, 100)
	require.NoError(t, err)
	require.Len(t, els, 1)
	el := els[0]
	assert.Equal(t, "text", el.Tag)
	x, _ := el.Get("x")
	assert.Equal(t, "10", x)
	// origin shifted down by 0.8x the measured height
	y, _ := el.Get("y")
	assert.Equal(t, "116", y)
	fill, _ := el.Get("fill")
	assert.Equal(t, DefaultTextFill, fill)
	assert.Equal(t, "hello", el.Text)
}

func TestTextMeasureError(t *testing.T) {
	t.Parallel()

	text := NewText("t", "hello", Style{})
	err := text.Layout(context.Background(), &stubMeasurer{err: fmt.Errorf("boom")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "t")
	assert.Contains(t, err.Error(), "boom")

	err = text.Layout(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text measurer")
}

func TestRenderBeforeLayout(t *testing.T) {
	t.Parallel()

	_, err := NewText("t", "x", Style{}).Render(0, 0)
	assert.Error(t, err)
	_, err = NewVBox("b", Style{}).Render(0, 0)
	assert.Error(t, err)
}
