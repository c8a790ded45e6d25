package svgpdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgstyler/svgdoc"
	"github.com/benoitkugler/svgstyler/svgraster"
)

func TestWritePDF(t *testing.T) {
	doc, err := svgdoc.ReadDocument("../svgdoc/testdata/three.svg", svgdoc.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WritePDF(&out, doc))
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "%PDF-"))
	assert.Contains(t, s, "/Subtype /Image")
	// 30x10 px at the default resolution
	assert.Contains(t, s, "/Width 60")
	assert.Contains(t, s, "/Height 20")
}

func TestWritePDFEmptyCanvas(t *testing.T) {
	doc, err := svgdoc.ReadDocumentStream(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0H1"/></svg>`), svgdoc.Options{})
	require.NoError(t, err)
	err = WritePDF(&bytes.Buffer{}, doc)
	assert.ErrorIs(t, err, svgraster.ErrEmptyCanvas)
}
