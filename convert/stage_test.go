package convert

import (
	"strings"
	"testing"
)

func TestStageApplyTemplate(t *testing.T) {
	s := TemplateStage("swap", `(\w+)=(\w+)`, `${2}=${1}`)

	got, n := s.Apply("a=b, c=d")
	if got != "b=a, d=c" {
		t.Errorf("Apply() = %q, want %q", got, "b=a, d=c")
	}

	if n != 2 {
		t.Errorf("Apply() matches = %d, want 2", n)
	}
}

func TestStageApplyRewrite(t *testing.T) {
	s := RewriteStage("upper", `<(\w*)(!)?>`, func(g []string) string {
		if g[2] == "" {
			return strings.ToUpper(g[1])
		}

		return g[1] + g[2]
	})

	got, n := s.Apply("<abc> <de!> <>")
	if want := "ABC de! "; got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}

	if n != 3 {
		t.Errorf("Apply() matches = %d, want 3", n)
	}
}

func TestStageApplyNoMatch(t *testing.T) {
	s := TemplateStage("x", `x+`, `y`)

	got, n := s.Apply("abc")
	if got != "abc" || n != 0 {
		t.Errorf("Apply() = (%q, %d), want (%q, 0)", got, n, "abc")
	}
}

func TestStageApplyIncomplete(t *testing.T) {
	tests := []struct {
		name  string
		stage Stage
	}{
		{name: "zero", stage: Stage{}},
		{name: "rewrite without func", stage: Stage{
			Kind:    KindRewrite,
			Pattern: TemplateStage("p", `a`, ``).Pattern,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := tt.stage.Apply("aaa")
			if got != "aaa" || n != 0 {
				t.Errorf("Apply() = (%q, %d), want unchanged", got, n)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTemplate, "template"},
		{KindRewrite, "rewrite"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestSubmatchesNonParticipating(t *testing.T) {
	s := RewriteStage("opt", `a(b)?(c)`, func(g []string) string {
		return "[" + g[1] + "|" + g[2] + "]"
	})

	if got, _ := s.Apply("ac abc"); got != "[|c] [b|c]" {
		t.Errorf("Apply() = %q, want %q", got, "[|c] [b|c]")
	}
}
