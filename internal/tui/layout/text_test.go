package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI bold", "\x1b[1mhello\x1b[0m", 5},
		{"unicode", "signets é", 9},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "hello", 10, "hello", false},
		{"exact", "hello", 5, "hello", false},
		{"truncated", "hello world", 8, "hello...", true},
		{"room for ellipsis only", "hello world", 3, "...", true},
		{"narrower than ellipsis", "hello world", 2, "..", true},
		{"zero width", "hello", 0, "", true},
		{"unicode", "éééééé", 5, "éé...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = %q, %v; want %q, %v",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "/tmp/config.json", 20, "/tmp/config.json", false},
		{"path", "/home/user/.config/syncmark/config.json", 20, "/home/use...fig.json", true},
		{"odd split", "abcdefghij", 6, "ab...j", true},
		{"tiny width", "abcdefghij", 4, "a...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateMiddle(tt.text, tt.maxWidth)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateMiddle(%q, %d) = %q, %v; want %q, %v",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
			if n := VisibleLength(got); n > tt.maxWidth {
				t.Errorf("result %q is %d wide, max %d", got, n, tt.maxWidth)
			}
		})
	}
}
