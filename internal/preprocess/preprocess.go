// Package preprocess orchestrates the DXF to laser-ready SVG pipeline:
// convert with Inkscape, then restyle black outline paths.
package preprocess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ethanjli/onshape-laser-cutting/internal/convert"
	"github.com/ethanjli/onshape-laser-cutting/internal/pathutil"
	"github.com/ethanjli/onshape-laser-cutting/internal/preview"
	"github.com/ethanjli/onshape-laser-cutting/internal/svgstyle"
)

// FileTypeError reports an input file whose extension is not ".dxf". Batch
// runs skip these entries; single-file runs fail with them.
type FileTypeError struct {
	Path string
	Ext  string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("unsupported file extension %q on input file %s", e.Ext, e.Path)
}

// Preprocessor runs the conversion and styling stages. The zero value uses
// Inkscape from PATH and the default laser-cut stroke.
type Preprocessor struct {
	Conv        convert.Converter
	Stroke      svgstyle.Stroke
	Preview     bool
	PreviewSize int
	Logger      zerolog.Logger
}

func (p *Preprocessor) converter() convert.Converter {
	if p.Conv != nil {
		return p.Conv
	}
	return convert.Inkscape{}
}

func (p *Preprocessor) stroke() svgstyle.Stroke {
	if p.Stroke == (svgstyle.Stroke{}) {
		return svgstyle.DefaultStroke
	}
	return p.Stroke
}

// ResolveOutput computes the effective SVG output path. An empty svgPath
// lands next to the input; an svgPath without an extension is treated as a
// parent directory; anything else is used verbatim.
func ResolveOutput(dxfPath, svgPath string) string {
	switch {
	case svgPath == "":
		return filepath.Join(filepath.Dir(dxfPath), pathutil.SVGName(dxfPath))
	case pathutil.Ext(svgPath) == "":
		return filepath.Join(svgPath, pathutil.SVGName(dxfPath))
	default:
		return svgPath
	}
}

// Preprocess converts one DXF file and restyles the result. dxfPath must end
// in ".dxf"; svgPath may be empty, a directory, or the output file path.
func (p *Preprocessor) Preprocess(ctx context.Context, dxfPath, svgPath string) error {
	if ext := pathutil.Ext(dxfPath); ext != ".dxf" {
		return &FileTypeError{Path: dxfPath, Ext: ext}
	}
	out := ResolveOutput(dxfPath, svgPath)

	if err := p.converter().Convert(ctx, dxfPath, out); err != nil {
		return err
	}
	p.Logger.Info().Str("dxf", dxfPath).Str("svg", out).Msg("converted")

	n, err := svgstyle.Restyle(out, p.stroke())
	if err != nil {
		return err
	}
	p.Logger.Info().Str("svg", out).Int("paths", n).Msg("styled strokes")

	if p.Preview {
		pngPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".png"
		// The cut file is already on disk, so a preview failure only warns.
		if err := preview.Render(out, pngPath, p.PreviewSize); err != nil {
			p.Logger.Warn().Err(err).Str("svg", out).Msg("preview failed")
		} else {
			p.Logger.Info().Str("png", pngPath).Msg("rendered preview")
		}
	}
	return nil
}

// Run preprocesses a single DXF file, or every DXF file directly inside a
// directory. Inputs with any file extension are treated as single files;
// anything else is read as a directory whose non-DXF entries are skipped
// with a notice. Errors other than a FileTypeError abort the batch.
func (p *Preprocessor) Run(ctx context.Context, inputPath, outputPath string) error {
	if pathutil.Ext(inputPath) != "" {
		return p.Preprocess(ctx, inputPath, outputPath)
	}

	entries, err := os.ReadDir(inputPath)
	if err != nil {
		return errors.Wrapf(err, "list %s", inputPath)
	}
	for _, entry := range entries {
		err := p.Preprocess(ctx, filepath.Join(inputPath, entry.Name()), outputPath)
		var typeErr *FileTypeError
		if errors.As(err, &typeErr) {
			p.Logger.Info().Str("file", entry.Name()).Msg("skipped")
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
