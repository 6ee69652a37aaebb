package convert

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// DefaultBin is the Inkscape binary looked up on PATH when no override is
// given.
const DefaultBin = "inkscape"

// Inkscape converts drawings by invoking the inkscape binary once per file.
type Inkscape struct {
	Bin string // binary name or path; DefaultBin when empty
}

func (ink Inkscape) args(dxfPath, svgPath string) []string {
	return []string{"-l", svgPath, dxfPath}
}

// Convert runs inkscape to import dxfPath and export it as plain SVG at
// svgPath, blocking until the process exits. A non-zero exit or a missing
// binary is reported as an error carrying whatever inkscape wrote to stderr.
func (ink Inkscape) Convert(ctx context.Context, dxfPath, svgPath string) error {
	bin := ink.Bin
	if bin == "" {
		bin = DefaultBin
	}

	cmd := exec.CommandContext(ctx, bin, ink.args(dxfPath, svgPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.Wrapf(err, "convert %s: %s", dxfPath, msg)
		}
		return errors.Wrapf(err, "convert %s", dxfPath)
	}
	return nil
}
