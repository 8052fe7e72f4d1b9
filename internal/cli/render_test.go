package cli

import (
	"errors"
	"testing"
)

func TestPadLabel(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"Workspace:", 13, "Workspace:   "},
		{"Build script:", 13, "Build script:"},
		{"long label here", 5, "long label here"},
		{"", 3, "   "},
		{"日本語:", 8, "日本語: "}, // wide runes count double
	}
	for _, tt := range tests {
		if got := padLabel(tt.s, tt.width); got != tt.want {
			t.Errorf("padLabel(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestLabelWidth(t *testing.T) {
	tests := []struct {
		labels []string
		want   int
	}{
		{nil, 0},
		{[]string{"a:", "bb:", "c:"}, 3},
		{[]string{"Workspace:", "Build script:"}, 13},
		{[]string{"日本語:"}, 7},
	}
	for _, tt := range tests {
		if got := labelWidth(tt.labels); got != tt.want {
			t.Errorf("labelWidth(%v) = %d, want %d", tt.labels, got, tt.want)
		}
	}
}

func TestSingleLineError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"oneLine", errors.New("boom"), "boom"},
		{"multiLine", errors.New("hg status: exit status 255\nabort: no repository\n"), "hg status: exit status 255; abort: no repository"},
		{"blankLines", errors.New("first\n\n   \nsecond"), "first; second"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := singleLineError(tt.err); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
