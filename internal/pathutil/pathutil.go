// Package pathutil holds the path helpers shared by the preprocessing
// pipeline.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Ext returns the file extension of the path's base name, including the
// leading dot. It returns "" when the base name has no dot.
func Ext(path string) string {
	return filepath.Ext(filepath.Base(path))
}

// SVGName returns the base name of dxfPath with its extension, whatever it
// was, replaced by ".svg".
func SVGName(dxfPath string) string {
	base := filepath.Base(dxfPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".svg"
}
