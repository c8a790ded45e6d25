// Loads SVG documents and indexes their colorable shapes.
// The raw token stream is kept so that the recolored document
// can be serialized again, see WriteTo.
package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html/charset"

	"github.com/benoitkugler/svgstyler/logging"
)

// ErrorMode decides what happens when the input is not well formed XML.
type ErrorMode uint8

const (
	// IgnoreErrorMode keeps whatever was read before the error.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode behaves like IgnoreErrorMode but logs the error.
	WarnErrorMode
	// StrictErrorMode returns the error.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(s) {
	case "", "ignore":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("unknown error mode %q", s)
}

// DefaultShapeTags are the element names indexed as shapes
// when Options.ShapeTags is empty. Elements under <defs> are indexed
// too, unless Options.SkipDefs is set.
var DefaultShapeTags = []string{"path"}

// Options parametrize the loader.
type Options struct {
	// ShapeTags lists the local element names treated as colorable shapes.
	ShapeTags []string
	// StableIDs gives every shape a random identifier instead of
	// its positional index.
	StableIDs bool
	// SkipDefs leaves the elements under <defs> out of the index.
	// They are not rendered, but counting them keeps the numbering
	// of a plain document-order query over ShapeTags.
	SkipDefs  bool
	ErrorMode ErrorMode
}

// Bounds defines a bounding box, such as a viewBox.
type Bounds struct{ X, Y, W, H float64 }

// Shape is a colorable element of a Document.
type Shape struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Tag   string `json:"tag"`
	Color string `json:"color"`
}

// Document is a parsed SVG, with its shapes numbered 0..N-1
// in document order.
type Document struct {
	ViewBox       Bounds
	Width, Height float64 // from the root width and height attributes, 0 if absent
	Titles        []string

	tokens []xml.Token
	shapes []shapeRef
}

type shapeRef struct {
	id    string
	token int // index in tokens of the StartElement
}

// ReadDocument reads the Document from the named file.
func ReadDocument(path string, opts Options) (*Document, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadDocumentStream(fin, opts)
}

// ReadDocumentStream reads the Document from the given io.Reader.
// Malformed input is handled according to opts.ErrorMode: outside
// of StrictErrorMode, the tokens read before the error are kept and
// the returned Document may have fewer shapes, or none.
// Errors of the underlying reader are always returned.
func ReadDocumentStream(stream io.Reader, opts Options) (*Document, error) {
	tags := opts.ShapeTags
	if len(tags) == 0 {
		tags = DefaultShapeTags
	}
	isShape := make(map[string]bool, len(tags))
	for _, t := range tags {
		isShape[t] = true
	}

	doc := &Document{}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		seenTag     bool
		depth       int
		defsDepth   = -1 // depth of the enclosing <defs>, or -1
		inTitleText bool
	)
	for {
		t, err := decoder.RawToken()
		if err != nil {
			if err == io.EOF {
				if !seenTag && opts.ErrorMode == StrictErrorMode {
					return nil, errors.New("invalid svg document: no element")
				}
				break
			}
			var syntaxErr *xml.SyntaxError
			if !errors.As(err, &syntaxErr) {
				// the input could not be read: this is not a malformed document
				return nil, fmt.Errorf("reading svg: %w", err)
			}
			switch opts.ErrorMode {
			case StrictErrorMode:
				return nil, fmt.Errorf("parsing svg: %w", err)
			case WarnErrorMode:
				logging.Logger().Warn("svg document truncated", slog.Any("error", err),
					slog.Int("shapes", len(doc.shapes)))
			}
			break
		}
		t = xml.CopyToken(t)
		switch se := t.(type) {
		case xml.StartElement:
			if !seenTag {
				doc.readRoot(se)
			}
			seenTag = true
			depth++
			switch {
			case se.Name.Local == "defs" && defsDepth < 0:
				defsDepth = depth
			case se.Name.Local == "title":
				inTitleText = true
				doc.Titles = append(doc.Titles, "")
			case isShape[se.Name.Local] && (defsDepth < 0 || !opts.SkipDefs):
				id := strconv.Itoa(len(doc.shapes))
				if opts.StableIDs {
					id = uuid.NewString()
				}
				doc.shapes = append(doc.shapes, shapeRef{id: id, token: len(doc.tokens)})
			}
		case xml.EndElement:
			if depth == defsDepth {
				defsDepth = -1
			}
			if se.Name.Local == "title" {
				inTitleText = false
			}
			depth--
		case xml.CharData:
			if inTitleText {
				doc.Titles[len(doc.Titles)-1] += string(se)
			}
		}
		doc.tokens = append(doc.tokens, t)
	}
	return doc, nil
}

// readRoot records the size attributes of the outermost element.
func (doc *Document) readRoot(se xml.StartElement) {
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "viewBox":
			fs := splitOnCommaOrSpace(attr.Value)
			if len(fs) != 4 {
				continue
			}
			var vb [4]float64
			ok := true
			for i, f := range fs {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					ok = false
					break
				}
				vb[i] = v
			}
			if ok {
				doc.ViewBox = Bounds{X: vb[0], Y: vb[1], W: vb[2], H: vb[3]}
			}
		case "width":
			doc.Width = parseLength(attr.Value)
		case "height":
			doc.Height = parseLength(attr.Value)
		}
	}
}

// parseLength reads a pixel length, ignoring relative units.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
}

// NativeSize returns the pixel size of the image: the root width and
// height attributes when present, the viewBox size otherwise.
func (doc *Document) NativeSize() (w, h float64) {
	w, h = doc.Width, doc.Height
	if w == 0 {
		w = doc.ViewBox.W
	}
	if h == 0 {
		h = doc.ViewBox.H
	}
	return w, h
}

// ShapeCount returns the number of indexed shapes.
func (doc *Document) ShapeCount() int { return len(doc.shapes) }

// Shape returns the shape at index i, which must be in range.
func (doc *Document) Shape(i int) Shape {
	ref := doc.shapes[i]
	se := doc.tokens[ref.token].(xml.StartElement)
	return Shape{Index: i, ID: ref.id, Tag: se.Name.Local, Color: fillOf(se.Attr)}
}

// Shapes returns all the shapes, in index order.
func (doc *Document) Shapes() []Shape {
	out := make([]Shape, len(doc.shapes))
	for i := range doc.shapes {
		out[i] = doc.Shape(i)
	}
	return out
}

// Colors returns the current color of every shape, in index order.
func (doc *Document) Colors() []string {
	out := make([]string, len(doc.shapes))
	for i := range doc.shapes {
		se := doc.tokens[doc.shapes[i].token].(xml.StartElement)
		out[i] = fillOf(se.Attr)
	}
	return out
}

// SetShapeColor sets the inline fill of shape i. An empty color
// removes the inline fill, so that the fill attribute applies again.
// It panics if i is out of range.
func (doc *Document) SetShapeColor(i int, color string) {
	ref := doc.shapes[i]
	se := doc.tokens[ref.token].(xml.StartElement)
	se.Attr = setFill(se.Attr, color)
	doc.tokens[ref.token] = se
}

// IndexOf returns the index of the shape with the given id, or -1.
func (doc *Document) IndexOf(id string) int {
	for i, ref := range doc.shapes {
		if ref.id == id {
			return i
		}
	}
	return -1
}
