package textmeasure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	ruler, err := NewRuler()
	require.NoError(t, err)

	f := Font{Size: 16}

	w1, h1, err := ruler.Measure(f, "hello")
	require.NoError(t, err)
	assert.Greater(t, w1, 0.)
	assert.Greater(t, h1, 0.)

	w2, _, err := ruler.Measure(f, "hello there")
	require.NoError(t, err)
	assert.Greater(t, w2, w1)
}

func TestMeasureMultiline(t *testing.T) {
	ruler, err := NewRuler()
	require.NoError(t, err)

	f := Font{Size: 16}

	_, h1, err := ruler.Measure(f, "one")
	require.NoError(t, err)
	w2, h2, err := ruler.Measure(f, "one\ntwo wider line")
	require.NoError(t, err)

	assert.InDelta(t, 2*h1, h2, 1e-9)

	w3, _, err := ruler.Measure(f, "two wider line")
	require.NoError(t, err)
	assert.Equal(t, w3, w2)
}

func TestMeasureInvalidSize(t *testing.T) {
	ruler, err := NewRuler()
	require.NoError(t, err)

	_, _, err = ruler.Measure(Font{Size: 0}, "hello")
	assert.Error(t, err)
}
