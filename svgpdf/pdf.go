// Writes documents as single page PDF files,
// by wrapping github.com/jung-kurt/gofpdf.
//
// The page has the native size of the document, and holds
// its raster export.
package svgpdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/benoitkugler/svgstyler/svgdoc"
	"github.com/benoitkugler/svgstyler/svgraster"
)

// ExportFilename is the name suggested for downloaded exports.
const ExportFilename = "exported-image.pdf"

// pxToPt converts CSS pixels to PDF points
const pxToPt = 72. / 96.

// Options control the PDF output.
type Options struct {
	// Resolution is the number of raster pixels per document pixel; 0 means 2.
	Resolution float64
}

// WritePDF encodes the export of doc to out.
func WritePDF(out io.Writer, doc *svgdoc.Document) error {
	return WritePDFWith(out, doc, Options{})
}

// WritePDFWith is like WritePDF, with explicit options.
func WritePDFWith(out io.Writer, doc *svgdoc.Document, opts Options) error {
	res := opts.Resolution
	if res == 0 {
		res = 2
	}
	var img bytes.Buffer
	if err := svgraster.WritePNGWith(&img, doc, svgraster.Options{Scale: res}); err != nil {
		return err
	}

	w, h := doc.NativeSize()
	w, h = w*pxToPt, h*pxToPt
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if len(doc.Titles) > 0 {
		pdf.SetTitle(doc.Titles[0], true)
	}
	pdf.SetCreator("svgstyler", true)
	pdf.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("export", imgOpts, &img)
	pdf.ImageOptions("export", 0, 0, w, h, false, imgOpts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.Output(out)
}
