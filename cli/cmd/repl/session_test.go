package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Srimutu/liquid-to-jinja-converter/convert"
	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

func TestSessionExec(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr error
		clear   bool
		quit    bool
	}{
		{name: "template", line: "{% assign a = 1 %}", want: "{% set a = 1 %}"},
		{name: "plain text", line: "hello", want: "hello"},
		{name: "quit", line: ":quit", quit: true},
		{name: "quit alias", line: ":q", quit: true},
		{name: "clear", line: ":clear", clear: true},
		{name: "no subs", line: ":subs", want: "(no substitutions)"},
		{name: "unknown", line: ":bogus", wantErr: ErrUnknownCmd},
		{name: "trace usage", line: ":trace", wantErr: ErrUsage},
		{name: "bad set", line: ":set novalue", wantErr: convert.ErrInvalidSubstitutions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(nil, log.Logger{})

			r := s.exec(context.Background(), tt.line)

			if tt.wantErr != nil {
				if !errors.Is(r.err, tt.wantErr) {
					t.Errorf("exec(%q) error = %v, want %v", tt.line, r.err, tt.wantErr)
				}

				return
			}

			if r.err != nil {
				t.Fatalf("exec(%q) error = %v", tt.line, r.err)
			}

			if r.text != tt.want || r.clear != tt.clear || r.quit != tt.quit {
				t.Errorf("exec(%q) = %+v, want text=%q clear=%v quit=%v",
					tt.line, r, tt.want, tt.clear, tt.quit)
			}
		})
	}
}

func TestSessionSetAppliesToLaterLines(t *testing.T) {
	s := newSession(convert.Substitutions{{Key: "A", Value: "x"}}, log.Logger{})
	ctx := context.Background()

	if r := s.exec(ctx, "A"); r.text != "x" {
		t.Fatalf("exec(A) = %q, want x", r.text)
	}

	if r := s.exec(ctx, ":set A={{${name}}}"); r.err != nil {
		t.Fatalf(":set error = %v", r.err)
	}

	if r := s.exec(ctx, "A"); r.text != "{{ name }}" {
		t.Errorf("exec(A) after :set = %q, want %q", r.text, "{{ name }}")
	}

	if r := s.exec(ctx, ":subs"); !strings.Contains(r.text, `"A" = "{{${name}}}"`) {
		t.Errorf(":subs = %q", r.text)
	}
}

func TestSessionStages(t *testing.T) {
	s := newSession(nil, log.Logger{})

	all := s.exec(context.Background(), ":stages").text
	if n := len(strings.Split(all, "\n")); n != len(convert.Default()) {
		t.Errorf(":stages listed %d stages, want %d", n, len(convert.Default()))
	}

	got := s.exec(context.Background(), ":stages capture").text
	if !strings.Contains(got, "capture") || strings.Contains(got, "comment") {
		t.Errorf(":stages capture = %q", got)
	}
}

func TestSessionTrace(t *testing.T) {
	s := newSession(convert.Substitutions{{Key: "N", Value: "2"}}, log.Logger{})

	got := s.exec(context.Background(), ":trace {% assign a = N | times: 3 %}").text

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf(":trace returned %d lines, want 2:\n%s", len(lines), got)
	}

	if !strings.HasPrefix(lines[0], "substitutions") {
		t.Errorf("first line = %q, want substitutions", lines[0])
	}

	if !strings.HasPrefix(lines[1], "assign-times") ||
		!strings.HasSuffix(lines[1], "{% set a = 2 * 3 %}") {
		t.Errorf("second line = %q", lines[1])
	}

	if got := s.exec(context.Background(), ":trace plain").text; got != "(no stage matched)" {
		t.Errorf(":trace plain = %q", got)
	}
}
