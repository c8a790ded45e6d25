// Implements the raster export of a (recolored) document,
// by serializing it and drawing it with oksvg and rasterx.
package svgraster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/benoitkugler/svgstyler/svgdoc"
)

// ExportFilename is the name suggested for downloaded exports.
const ExportFilename = "exported-image.png"

// ErrEmptyCanvas is returned when the document has no pixel size.
var ErrEmptyCanvas = errors.New("document has an empty canvas")

// Options control the raster output.
type Options struct {
	// Scale multiplies the native size of the document; 0 means 1.
	Scale float64
	// Background is painted before the document; nil means opaque white.
	Background color.Color
}

// RasterDocument draws doc on a new image of its native pixel size,
// over an opaque white background.
func RasterDocument(doc *svgdoc.Document) (*image.RGBA, error) {
	return RasterDocumentWith(doc, Options{})
}

// RasterDocumentWith is like RasterDocument, with explicit options.
func RasterDocumentWith(doc *svgdoc.Document, opts Options) (*image.RGBA, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	nw, nh := doc.NativeSize()
	w, h := int(math.Ceil(nw*scale)), int(math.Ceil(nh*scale))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyCanvas
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	parsedIcon, err := oksvg.ReadIconStream(bytes.NewReader(doc.Bytes()), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing document for raster: %w", err)
	}
	parsedIcon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	parsedIcon.Draw(raster, 1.0)
	return img, nil
}

// WritePNG encodes the export of doc to out.
func WritePNG(out io.Writer, doc *svgdoc.Document) error {
	return WritePNGWith(out, doc, Options{})
}

// WritePNGWith is like WritePNG, with explicit options.
func WritePNGWith(out io.Writer, doc *svgdoc.Document, opts Options) error {
	img, err := RasterDocumentWith(doc, opts)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}
