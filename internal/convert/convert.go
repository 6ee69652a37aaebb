// Package convert turns DXF drawings into SVG files by driving an external
// vector-graphics program.
package convert

import "context"

// Converter produces an SVG file at svgPath from the DXF drawing at dxfPath.
// Implementations overwrite any existing file at svgPath.
type Converter interface {
	Convert(ctx context.Context, dxfPath, svgPath string) error
}
