package svgdoc

import (
	"encoding/xml"
	"strings"
)

// declaration is one "property: value" pair of a style attribute.
type declaration struct {
	prop, value string
}

func parseStyle(s string) []declaration {
	var out []declaration
	for _, pair := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		out = append(out, declaration{prop: k, value: strings.TrimSpace(v)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	chunks := make([]string, len(decls))
	for i, d := range decls {
		chunks[i] = d.prop + ":" + d.value
	}
	return strings.Join(chunks, ";")
}

// fillOf returns the effective fill of an element: the inline style
// wins over the fill attribute. It is empty when neither is set.
func fillOf(attrs []xml.Attr) string {
	var attrFill string
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "style":
			for _, d := range parseStyle(attr.Value) {
				if d.prop == "fill" {
					return d.value
				}
			}
		case "fill":
			if attr.Name.Space == "" {
				attrFill = strings.TrimSpace(attr.Value)
			}
		}
	}
	return attrFill
}

// setFill returns attrs with the inline fill replaced by color,
// or removed when color is empty.
func setFill(attrs []xml.Attr, color string) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs)+1)
	found := false
	for _, attr := range attrs {
		if attr.Name.Space != "" || attr.Name.Local != "style" {
			out = append(out, attr)
			continue
		}
		found = true
		var decls []declaration
		for _, d := range parseStyle(attr.Value) {
			if d.prop != "fill" {
				decls = append(decls, d)
			}
		}
		if color != "" {
			decls = append(decls, declaration{prop: "fill", value: color})
		}
		if len(decls) == 0 {
			continue // drop the now empty style attribute
		}
		attr.Value = formatStyle(decls)
		out = append(out, attr)
	}
	if !found && color != "" {
		out = append(out, xml.Attr{Name: xml.Name{Local: "style"}, Value: "fill:" + color})
	}
	return out
}
