package svgdoc

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
)

func writeName(w *bufio.Writer, n xml.Name) {
	if n.Space != "" {
		w.WriteString(n.Space)
		w.WriteByte(':')
	}
	w.WriteString(n.Local)
}

// WriteTo serializes the document, with the current shape colors,
// as SVG text. The XML declaration is dropped since the output
// is always UTF-8.
func (doc *Document) WriteTo(out io.Writer) (int64, error) {
	cw := &countWriter{w: out}
	w := bufio.NewWriter(cw)
	for _, t := range doc.tokens {
		switch t := t.(type) {
		case xml.StartElement:
			w.WriteByte('<')
			writeName(w, t.Name)
			for _, attr := range t.Attr {
				w.WriteByte(' ')
				writeName(w, attr.Name)
				w.WriteString(`="`)
				xml.EscapeText(w, []byte(attr.Value))
				w.WriteByte('"')
			}
			w.WriteByte('>')
		case xml.EndElement:
			w.WriteString("</")
			writeName(w, t.Name)
			w.WriteByte('>')
		case xml.CharData:
			xml.EscapeText(w, t)
		case xml.Comment:
			w.WriteString("<!--")
			w.Write(t)
			w.WriteString("-->")
		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			w.WriteString("<?")
			w.WriteString(t.Target)
			if len(t.Inst) > 0 {
				w.WriteByte(' ')
				w.Write(t.Inst)
			}
			w.WriteString("?>")
		case xml.Directive:
			w.WriteString("<!")
			w.Write(t)
			w.WriteByte('>')
		}
	}
	err := w.Flush()
	return cw.n, err
}

// Bytes returns the serialized document.
func (doc *Document) Bytes() []byte {
	var buf bytes.Buffer
	doc.WriteTo(&buf) // bytes.Buffer never fails
	return buf.Bytes()
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
