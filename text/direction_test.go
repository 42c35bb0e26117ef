package text

import (
	"testing"
)

func TestCharDirection(t *testing.T) {
	tests := []struct {
		name string
		char rune
		want Direction
	}{
		// Arabic
		{"Arabic alif", 'ا', RTL},
		{"Arabic meem", 'م', RTL},

		// Hebrew
		{"Hebrew alef", 'א', RTL},
		{"Hebrew shin", 'ש', RTL},

		// Latin (LTR)
		{"Latin A", 'A', LTR},
		{"Latin é", 'é', LTR},

		// Cyrillic and Greek
		{"Cyrillic я", 'я', LTR},
		{"Greek Omega", 'Ω', LTR},

		// CJK
		{"CJK 中", '中', LTR},
		{"Hiragana あ", 'あ', LTR},

		// Neutral characters
		{"Space", ' ', Neutral},
		{"Digit 5", '5', Neutral},
		{"Period", '.', Neutral},
		{"Question", '?', Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CharDirection(tt.char)
			if got != tt.want {
				t.Errorf("CharDirection(%q U+%04X) = %v, want %v",
					tt.char, tt.char, got, tt.want)
			}
		})
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"empty", "", Neutral},
		{"digits only", "12 34", Neutral},
		{"english", "Hello, world", LTR},
		{"hebrew", "שלום עולם", RTL},
		{"arabic with digits", "مرحبا 123", RTL},
		{"mostly hebrew", "ab שלום", RTL},
		{"tie goes left", "ab של", LTR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDirection(tt.text); got != tt.want {
				t.Errorf("DetectDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{LTR, "LTR"},
		{RTL, "RTL"},
		{Neutral, "Neutral"},
		{Direction(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.dir.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}
