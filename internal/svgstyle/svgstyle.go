// Package svgstyle rewrites the stroke styling of SVG files produced by a
// DXF import, turning black outline paths into laser-cut paths.
//
// The rewrite works on the raw XML token stream so that everything outside
// the matched style attributes, including foreign namespaces and unknown
// elements, passes through untouched.
package svgstyle

import (
	"strconv"
	"strings"
)

const svgNS = "http://www.w3.org/2000/svg"

// BlackOutline is the style a DXF import leaves on outline paths. Only
// elements whose style attribute equals it exactly are rewritten.
const BlackOutline = "stroke:#000000;fill:none"

// Stroke describes the laser-cut stroke applied to matched paths.
type Stroke struct {
	Color string  // stroke color, e.g. "#ff0000"
	Width float64 // stroke width in px, at 96 px per inch
}

// DefaultStroke cuts in red at 0.07559055 px, i.e. the 0.02 mm hairline most
// laser-cutting drivers treat as a cut line.
var DefaultStroke = Stroke{Color: "#ff0000", Width: 0.07559055}

func (s Stroke) style() string {
	width := strconv.FormatFloat(s.Width, 'g', -1, 64)
	return "fill:none;stroke:" + s.Color +
		";stroke-opacity:1;stroke-width:" + width +
		";stroke-miterlimit:4;stroke-dasharray:none"
}

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\t", "&#x9;", "\r", "&#xD;",
	)
)
