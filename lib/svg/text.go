package svg

import (
	"bytes"
	"encoding/xml"
	"math"
)

func EscapeText(text string) string {
	buf := new(bytes.Buffer)
	_ = xml.EscapeText(buf, []byte(text))
	return buf.String()
}

// GetStrokeDashAttributes computes SVG stroke-dasharray values for the
// declared dash gap size. As the stroke gets wider, the gap gets
// proportionally smaller so dashes stay legible.
func GetStrokeDashAttributes(strokeWidth, dashGapSize float64) (dashSize, gapSize float64) {
	scale := math.Log10(-0.6*strokeWidth+10.6) * 0.5
	scaledDashSize := strokeWidth * dashGapSize
	scaledGapSize := scale * scaledDashSize
	return scaledDashSize, scaledGapSize
}
