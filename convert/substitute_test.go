package convert

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubstitutionsApply(t *testing.T) {
	tests := []struct {
		name string
		subs Substitutions
		in   string
		want string
	}{
		{
			name: "empty map",
			in:   "Hello {{ name }}",
			want: "Hello {{ name }}",
		},
		{
			name: "every occurrence",
			subs: Substitutions{{Key: "$NAME", Value: "Ada"}},
			in:   "$NAME and $NAME",
			want: "Ada and Ada",
		},
		{
			name: "literal not pattern",
			subs: Substitutions{{Key: "a.c", Value: "X"}},
			in:   "abc a.c",
			want: "abc X",
		},
		{
			name: "applied in order",
			subs: Substitutions{
				{Key: "A", Value: "B"},
				{Key: "B", Value: "C"},
			},
			in:   "A B",
			want: "C C",
		},
		{
			name: "empty key ignored",
			subs: Substitutions{{Key: "", Value: "X"}},
			in:   "abc",
			want: "abc",
		},
		{
			name: "absent key",
			subs: Substitutions{{Key: "zzz", Value: "X"}},
			in:   "abc",
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.subs.Apply(tt.in); got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubstitutionsFromMap(t *testing.T) {
	got := SubstitutionsFromMap(map[string]string{"b": "2", "a": "1", "c": "3"})

	want := Substitutions{{"a", "1"}, {"b", "2"}, {"c", "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SubstitutionsFromMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestSubstitutionsSet(t *testing.T) {
	base := Substitutions{{"a", "1"}, {"b", "2"}}

	replaced := base.Set("a", "9")
	if diff := cmp.Diff(Substitutions{{"a", "9"}, {"b", "2"}}, replaced); diff != "" {
		t.Errorf("Set(existing) mismatch (-want +got):\n%s", diff)
	}

	appended := base.Set("c", "3")
	if diff := cmp.Diff(Substitutions{{"a", "1"}, {"b", "2"}, {"c", "3"}}, appended); diff != "" {
		t.Errorf("Set(new) mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Substitutions{{"a", "1"}, {"b", "2"}}, base); diff != "" {
		t.Errorf("Set() modified its receiver (-want +got):\n%s", diff)
	}
}

func TestSubstitutionsMap(t *testing.T) {
	got := Substitutions{{"a", "1"}, {"a", "2"}, {"b", "3"}}.Map()

	if diff := cmp.Diff(map[string]string{"a": "2", "b": "3"}, got); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}
