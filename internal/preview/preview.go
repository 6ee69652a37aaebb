// Package preview rasterizes a styled SVG into a PNG proof sheet, sized for
// a quick visual check before sending the file to the cutter.
package preview

import (
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// DefaultSize is the largest preview dimension in px.
const DefaultSize = 1024

// Render rasterizes the SVG at svgPath over a white background and writes a
// PNG at pngPath whose larger side is maxDim px.
func Render(svgPath, pngPath string, maxDim int) error {
	if maxDim <= 0 {
		maxDim = DefaultSize
	}

	icon, err := oksvg.ReadIcon(svgPath, oksvg.WarnErrorMode)
	if err != nil {
		return errors.Wrapf(err, "parse %s", svgPath)
	}

	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w < 1 || h < 1 {
		w, h = maxDim, maxDim
		icon.SetTarget(0, 0, float64(w), float64(h))
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	out, err := os.Create(pngPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", pngPath)
	}
	if err := png.Encode(out, fit(img, maxDim)); err != nil {
		out.Close()
		return errors.Wrapf(err, "encode %s", pngPath)
	}
	return errors.Wrapf(out.Close(), "close %s", pngPath)
}

// fit scales img so its larger side is exactly max px, preserving the aspect
// ratio.
func fit(img *image.RGBA, max int) image.Image {
	b := img.Bounds()
	long := b.Dx()
	if b.Dy() > long {
		long = b.Dy()
	}
	if long == max {
		return img
	}

	scale := float64(max) / float64(long)
	dw := int(math.Round(float64(b.Dx()) * scale))
	dh := int(math.Round(float64(b.Dy()) * scale))
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
