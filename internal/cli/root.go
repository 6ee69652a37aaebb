// Package cli wires the laserprep command line.
package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ethanjli/onshape-laser-cutting/internal/buildinfo"
	"github.com/ethanjli/onshape-laser-cutting/internal/convert"
	"github.com/ethanjli/onshape-laser-cutting/internal/preprocess"
	"github.com/ethanjli/onshape-laser-cutting/internal/preview"
	"github.com/ethanjli/onshape-laser-cutting/internal/svgstyle"
)

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output      string
		strokeColor string
		strokeWidth float64
		withPrev    bool
		prevSize    int
		inkscapeBin string
		debug       bool
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:   "laserprep [flags] <input>",
		Short: "laserprep — prepare Onshape DXF exports for laser cutting",
		Long: `laserprep converts DXF drawing exports to SVG with Inkscape and restyles
black outline paths into hairline laser-cut strokes.

The input is a single .dxf file or a directory of them; directory entries
with other extensions are skipped with a notice.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
				return nil
			}
			if len(args) != 1 {
				return errors.New("missing input path (a .dxf file or a directory of them)")
			}

			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).With().Timestamp().Logger()

			if inkscapeBin == "" {
				inkscapeBin = os.Getenv("LASERPREP_INKSCAPE")
			}

			p := &preprocess.Preprocessor{
				Conv:        convert.Inkscape{Bin: inkscapeBin},
				Stroke:      svgstyle.Stroke{Color: strokeColor, Width: strokeWidth},
				Preview:     withPrev,
				PreviewSize: prevSize,
				Logger:      logger,
			}
			return p.Run(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output SVG file, or the directory to write outputs into")
	cmd.Flags().StringVar(&strokeColor, "stroke-color", svgstyle.DefaultStroke.Color, "Stroke color for laser-cut paths")
	cmd.Flags().Float64Var(&strokeWidth, "stroke-width", svgstyle.DefaultStroke.Width, "Stroke width in px (96 px per inch)")
	cmd.Flags().BoolVar(&withPrev, "preview", false, "Render a PNG preview next to each output SVG")
	cmd.Flags().IntVar(&prevSize, "preview-size", preview.DefaultSize, "Largest preview dimension in px")
	cmd.Flags().StringVar(&inkscapeBin, "inkscape", "", `Inkscape binary (default $LASERPREP_INKSCAPE, then "inkscape")`)
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&showVersion, "version", false, "Print version and exit")
	return cmd
}
