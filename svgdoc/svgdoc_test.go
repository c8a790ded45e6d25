package svgdoc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string, opts Options) *Document {
	t.Helper()
	doc, err := ReadDocument("testdata/"+name, opts)
	if err != nil {
		t.Fatalf("can't read %s: %s", name, err)
	}
	return doc
}

func TestShapeIndex(t *testing.T) {
	doc := loadFixture(t, "three.svg", Options{SkipDefs: true})

	require.Equal(t, 3, doc.ShapeCount())
	assert.Equal(t, []string{"red", "green", "#0000ff"}, doc.Colors())
	for i, s := range doc.Shapes() {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, "path", s.Tag)
	}
	assert.Equal(t, "1", doc.Shape(1).ID)
	assert.Equal(t, []string{"Three squares"}, doc.Titles)
	assert.Equal(t, Bounds{0, 0, 30, 10}, doc.ViewBox)
	w, h := doc.NativeSize()
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 10.0, h)
}

func TestShapeTags(t *testing.T) {
	doc := loadFixture(t, "three.svg", Options{ShapeTags: []string{"path", "rect"}, SkipDefs: true})

	require.Equal(t, 4, doc.ShapeCount())
	assert.Equal(t, "rect", doc.Shape(2).Tag)
	assert.Equal(t, "pink", doc.Shape(2).Color)
}

func TestStableIDs(t *testing.T) {
	doc := loadFixture(t, "three.svg", Options{StableIDs: true, SkipDefs: true})

	seen := map[string]bool{}
	for _, s := range doc.Shapes() {
		_, err := uuid.Parse(s.ID)
		assert.NoError(t, err)
		seen[s.ID] = true
		assert.Equal(t, s.Index, doc.IndexOf(s.ID))
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, -1, doc.IndexOf("nope"))
}

func TestDisjointLoads(t *testing.T) {
	a := loadFixture(t, "three.svg", Options{SkipDefs: true})
	b := loadFixture(t, "three.svg", Options{SkipDefs: true})

	a.SetShapeColor(0, "yellow")
	assert.Equal(t, "yellow", a.Shape(0).Color)
	assert.Equal(t, "red", b.Shape(0).Color)
}

func TestSetShapeColor(t *testing.T) {
	doc := loadFixture(t, "three.svg", Options{SkipDefs: true})

	doc.SetShapeColor(1, "yellow")
	assert.Equal(t, "yellow", doc.Shape(1).Color)

	doc.SetShapeColor(0, "#123456")
	assert.Equal(t, "#123456", doc.Shape(0).Color)

	// clearing the inline fill falls back to the attribute
	doc.SetShapeColor(0, "")
	assert.Equal(t, "red", doc.Shape(0).Color)
	doc.SetShapeColor(1, "")
	assert.Equal(t, "", doc.Shape(1).Color)
}

func TestWriteTo(t *testing.T) {
	doc := loadFixture(t, "three.svg", Options{SkipDefs: true})
	doc.SetShapeColor(1, "yellow")

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.NotContains(t, out, "<?xml")
	assert.Contains(t, out, `style="stroke:none;fill:yellow"`)
	assert.Contains(t, out, `xmlns:xlink="http://www.w3.org/1999/xlink"`)

	again, err := ReadDocumentStream(strings.NewReader(out), Options{SkipDefs: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "yellow", "#0000ff"}, again.Colors())
	assert.Equal(t, doc.Titles, again.Titles)
}

func TestDefsNumbering(t *testing.T) {
	doc := loadFixture(t, "three.svg", Options{})

	require.Equal(t, 4, doc.ShapeCount())
	assert.Equal(t, []string{"black", "red", "green", "#0000ff"}, doc.Colors())
	assert.Equal(t, "0", doc.Shape(0).ID)

	doc = loadFixture(t, "three.svg", Options{SkipDefs: true})
	assert.Equal(t, []string{"red", "green", "#0000ff"}, doc.Colors())
}

func TestCharset(t *testing.T) {
	doc := loadFixture(t, "latin1.svg", Options{})

	require.Equal(t, 1, doc.ShapeCount())
	assert.Equal(t, []string{"café"}, doc.Titles)
}

func TestMalformed(t *testing.T) {
	doc := loadFixture(t, "truncated.svg", Options{})
	assert.Equal(t, []string{"red", "blue"}, doc.Colors())

	doc = loadFixture(t, "truncated.svg", Options{ErrorMode: WarnErrorMode})
	assert.Equal(t, 2, doc.ShapeCount())

	_, err := ReadDocument("testdata/truncated.svg", Options{ErrorMode: StrictErrorMode})
	assert.Error(t, err)

	doc, err = ReadDocumentStream(strings.NewReader("not xml at all"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, doc.ShapeCount())

	_, err = ReadDocumentStream(strings.NewReader(""), Options{ErrorMode: StrictErrorMode})
	assert.Error(t, err)
}

func TestReadFailure(t *testing.T) {
	errBroken := errors.New("connection reset")
	var paths strings.Builder
	paths.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">`)
	for i := 0; i < 100; i++ {
		paths.WriteString(`<path d="M0 0H1V1Z" fill="red"/>`)
	}
	paths.WriteString(`</svg>`)
	src := paths.String()

	for _, mode := range []ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		// the reader fails halfway through the document
		r := io.MultiReader(strings.NewReader(src[:len(src)/2]), iotest.ErrReader(errBroken))
		doc, err := ReadDocumentStream(r, Options{ErrorMode: mode})
		assert.ErrorIs(t, err, errBroken, mode.String())
		assert.Nil(t, doc)
	}

	doc, err := ReadDocumentStream(strings.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, 100, doc.ShapeCount())
}

func TestParseErrorMode(t *testing.T) {
	for _, m := range []ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		got, err := ParseErrorMode(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseErrorMode("loud")
	assert.Error(t, err)
}
