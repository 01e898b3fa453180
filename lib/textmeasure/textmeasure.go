// Package textmeasure is the text-measurement collaborator of diagram layout:
// given a string and font attributes it returns the rendered width and height
// in diagram coordinate units. Faces are built from the embedded Go fonts and
// cached per size and weight.
package textmeasure

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Font selects a measuring face. Size is in the same units as diagram
// coordinates.
type Font struct {
	Size float64
	Bold bool
}

// Ruler measures text. It is not safe for concurrent use; each render pass
// should own its ruler or guard it externally.
type Ruler struct {
	regular *truetype.Font
	bold    *truetype.Font

	faces map[Font]font.Face
}

func NewRuler() (*Ruler, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("textmeasure: parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("textmeasure: parse bold font: %w", err)
	}
	return &Ruler{
		regular: regular,
		bold:    bold,
		faces:   make(map[Font]font.Face),
	}, nil
}

func (r *Ruler) face(f Font) font.Face {
	face, ok := r.faces[f]
	if !ok {
		ttf := r.regular
		if f.Bold {
			ttf = r.bold
		}
		face = truetype.NewFace(ttf, &truetype.Options{
			Size: f.Size,
		})
		r.faces[f] = face
	}
	return face
}

// Measure returns the dimensions of s rendered in f. Newlines start a new
// line; the width is the widest line and the height is the line count times
// the face's line height.
func (r *Ruler) Measure(f Font, s string) (width, height float64, err error) {
	if f.Size <= 0 {
		return 0, 0, fmt.Errorf("textmeasure: invalid font size %v", f.Size)
	}

	face := r.face(f)
	lineHeight := fixedToFloat(face.Metrics().Height)

	lines := strings.Split(s, "\n")
	for _, line := range lines {
		width = math.Max(width, fixedToFloat(font.MeasureString(face, line)))
	}
	return width, lineHeight * float64(len(lines)), nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / (1 << 6)
}
