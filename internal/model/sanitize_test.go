package model

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"<b>Hi</b> <i>there</i>", "Hi there"},
		{"  a \t\n b  ", "a b"},
		{"<color=#ff0000>Warning</color>", "Warning"},
		{"<<b>b>nested", "nested"},
		{"3 < 4 > 2", "3 < 4 > 2"},
		{"<size=12/>x", "x"},
	}
	for _, tt := range tests {
		if got := Strip(tt.in); got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"line one\r\nline two", "line one line two"},
		{"<b>Save</b>\n\nchanges", "Save changes"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"<b>Hi</b>  there",
		"a\n\n\nb",
		"<<i>i>x</i>",
		"plain",
		" <br/> ",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
