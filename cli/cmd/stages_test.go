package cmd

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/Srimutu/liquid-to-jinja-converter/convert"
)

func stageNames(infos []StageInfo) []string {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}

	return names
}

func TestFilterStages(t *testing.T) {
	tests := []struct {
		name  string
		query string
		where string
		want  []string
	}{
		{
			name: "all",
			want: func() []string {
				var names []string
				for _, n := range convert.Default().Names() {
					names = append(names, string(n))
				}

				return names
			}(),
		},
		{
			name:  "fuzzy keeps pipeline order",
			query: "trunc",
			want:  []string{"truncate-indexed", "truncate"},
		},
		{
			name:  "where kind",
			where: `Kind == "rewrite"`,
			want:  []string{"case", "capture", "if-header", "for-header", "inner-braces"},
		},
		{
			name:  "where index",
			where: `Index < 2`,
			want:  []string{"comment", "assign-times"},
		},
		{
			name:  "query and where",
			query: "split",
			where: `Pattern contains "\\["`,
			want:  []string{"split-indexed"},
		},
		{
			name:  "no match",
			query: "zzz",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			infos, err := FilterStages(convert.Default(), tt.query, tt.where)
			if err != nil {
				t.Fatalf("FilterStages() error = %v", err)
			}

			if got := stageNames(infos); !slices.Equal(got, tt.want) {
				t.Errorf("FilterStages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterStagesInvalid(t *testing.T) {
	for _, where := range []string{"Index +", `Name`, "Bogus == 1"} {
		_, err := FilterStages(convert.Default(), "", where)
		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("FilterStages(where=%q) error = %v, want ErrInvalidQuery", where, err)
		}
	}
}

func TestStagesRun(t *testing.T) {
	var out bytes.Buffer

	s := &Stages{Query: "plain", stdout: &out}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Stages.Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header and one stage:\n%s", len(lines), out.String())
	}

	if !strings.HasPrefix(lines[0], "INDEX") {
		t.Errorf("header = %q", lines[0])
	}

	if fields := strings.Fields(lines[1]); len(fields) < 3 ||
		fields[0] != "18" || fields[1] != "plain-var" || fields[2] != "template" {
		t.Errorf("row = %q", lines[1])
	}
}
