package text

import "testing"

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"cjk", "中文", 4},
		{"mixed", "a中b", 4},
		{"fullwidth", "ＡＢ", 4},
		{"combining mark", "e\u0301", 1},
		{"zero width joiner", "a\u200db", 2},
		{"control", "a\x01b", 2},
		{"hebrew", "שלום", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.text); got != tt.want {
				t.Errorf("DisplayWidth(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		dir  Direction
		want string
	}{
		{"ab", 4, LTR, "ab  "},
		{"ab", 4, Neutral, "ab  "},
		{"של", 4, RTL, "  של"},
		{"中", 3, LTR, "中 "},
		{"long", 2, LTR, "long"},
	}

	for _, tt := range tests {
		if got := pad(tt.s, DisplayWidth(tt.s), tt.n, tt.dir); got != tt.want {
			t.Errorf("pad(%q, %d, %v) = %q, want %q", tt.s, tt.n, tt.dir, got, tt.want)
		}
	}
}

func TestFlatten(t *testing.T) {
	if got := flatten("a\nb\tc\rd"); got != "a b c d" {
		t.Errorf("flatten() = %q", got)
	}
}
