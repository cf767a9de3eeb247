package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"cyan", ColorCyan, true},
		{"Bright_White", ColorBrightWhite, true},
		{"bright-white", ColorBrightWhite, true},
		{" orange ", ColorOrange, true},
		{"chartreuse", ColorDefault, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
