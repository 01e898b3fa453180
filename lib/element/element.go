// Package element defines the renderer-agnostic drawing primitives produced
// by a diagram render pass: a tag, an ordered attribute list, and either
// nested children or literal text. Renderers materialize these into concrete
// output; the core never depends on what they do with them.
package element

import (
	"strconv"

	"oss.terrastruct.com/blockdiag/lib/geo"
)

type Attr struct {
	Key   string
	Value string
}

type Element struct {
	Tag   string
	Attrs []Attr

	// Children and Text are mutually exclusive.
	Children []*Element
	Text     string
}

func New(tag string) *Element {
	return &Element{Tag: tag}
}

// Set appends the attribute, replacing a previous value for the same key.
// Attribute order is insertion order so rendered output is deterministic.
func (e *Element) Set(key, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

func (e *Element) SetFloat(key string, v float64) *Element {
	return e.Set(key, FormatFloat(v))
}

func (e *Element) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// FormatFloat renders v the way attribute values are emitted, truncated to 3
// decimals with no trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(geo.TruncateDecimals(v), 'f', -1, 64)
}
