package svgdoc

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{0xff, 0, 0, 0xff}},
		{"#F00", color.NRGBA{0xff, 0, 0, 0xff}},
		{"green", color.NRGBA{0, 0x80, 0, 0xff}},
		{" Blue ", color.NRGBA{0, 0, 0xff, 0xff}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 0xff}},
		{"rgb(100%,0%,50%)", color.NRGBA{0xff, 0, 0x80, 0xff}},
		{"none", color.NRGBA{}},
		{"transparent", color.NRGBA{}},
	} {
		got, err := ParseColor(test.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %s", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseColor(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "rgb(1,2)", "rgb(1,2,3", "notacolor", "url(#grad)"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q): expected error", in)
		}
	}
}

func TestHexColor(t *testing.T) {
	if got := HexColor(color.NRGBA{0x12, 0xab, 0, 0xff}); got != "#12ab00" {
		t.Errorf("got %s", got)
	}
}
