package convert

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"empty", "", ""},
		{"comment", "{% comment %}x{% endcomment %}", "{# x #}"},
		{"comment trimmed markers", "{%- comment -%}x{%- endcomment -%}", "{# x #}"},
		{"assign times", "{% assign a = 2 | times: 3 %}", "{% set a = 2 * 3 %}"},
		{"assign", `{% assign greeting = "hi" %}`, `{% set greeting = "hi" %}`},
		{
			"case",
			`{% case v %}{% when "a" %}A{% when "b" %}B{% else %}C{% endcase %}`,
			"{% if v == a %}A\n{% elif v == b %}B\n{% else %}C\n{% endif %}",
		},
		{"case without branches", "{% case x %}{% else %}E{% endcase %}", "{% endif %}"},
		{"capture", "{% capture x %} hello {% endcapture %}", "{% set x %}hello{% endset %}"},
		{"capture empty", "{% capture x %}{% endcapture %}", "{% set x %}{% endset %}"},
		{"custom attribute", "{{ custom_attribute.${first_name} }}", "{{ UserAttribute['first_name'] }}"},
		{"campaign name", "{{campaign.${name}}}", "{{ CampaignAttribute['c_n'] }}"},
		{"content block", "{{ content_blocks.${footer} }}", "{{ ContentBlock['footer'] }}"},
		{"split indexed", `{{ parts[0] | split: "," }}`, `{{ parts[0].split(",") }}`},
		{"split", `{{ parts | split: "-" }}`, `{{ parts.split("-") }}`},
		{"truncate indexed", "{{ names[1] | truncate: 5 }}", "{{ names[1][:5] }}"},
		{"truncate", "{{ title | truncate: 10 }}", "{{ title[:10] }}"},
		{
			"if headers",
			"{% if {{${x}}} == 1 %}a{% elsif {{ y }} %}b{% endif %}",
			"{% if x == 1 %}a{% elif y %}b{% endif %}",
		},
		{
			"for header and break",
			"{% for item in {{${items}}} %}{{item}}{% break %}{% endfor %}",
			"{% for item in items %}{{ item }}{% endfor %}",
		},
		{"for with in inside name", "{% for pin in pins %}{{ pin }}{% endfor %}", "{% for pin in pins %}{{ pin }}{% endfor %}"},
		{"append empty", `{{ name | append: "" }}`, "{{ name }}"},
		{"variables", "{{${first}}} {{  last }}", "{{ first }} {{ last }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.in, nil); got != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertIdempotent(t *testing.T) {
	inputs := []string{
		"{% comment %}x{% endcomment %}",
		"{% assign a = 2 | times: 3 %}",
		`{% case v %}{% when "a" %}A{% when "b" %}B{% else %}C{% endcase %}`,
		"{% capture x %} hello {% endcapture %}",
		"{% if {{${x}}} == 1 %}a{% elsif {{ y }} %}b{% endif %}",
		`{{ parts[0] | split: "," }} {{ title | truncate: 10 }}`,
	}

	for _, in := range inputs {
		once := Convert(in, nil)
		if twice := Convert(once, nil); twice != once {
			t.Errorf("Convert(Convert(%q)) = %q, want %q", in, twice, once)
		}
	}
}

// Substitutions run before any stage, so a key can introduce Liquid syntax.
func TestConvertSubstitutesFirst(t *testing.T) {
	subs := Substitutions{{Key: "NAME", Value: "{{${first_name}}}"}}

	if got, want := Convert("Hi NAME", subs), "Hi {{ first_name }}"; got != want {
		t.Errorf("Convert() = %q, want %q", got, want)
	}
}

func TestConvertWithPipeline(t *testing.T) {
	p := Default().Until(StageComment)

	in := "{% comment %}x{% endcomment %}{{name}}"
	want := "{# x #}{{name}}"

	if got := ConvertContext(context.Background(), in, nil, WithPipeline(p)); got != want {
		t.Errorf("ConvertContext() = %q, want %q", got, want)
	}
}

func TestConvertReader(t *testing.T) {
	got, err := ConvertReader(context.Background(), strings.NewReader("{{x}}"), nil)
	if err != nil {
		t.Fatalf("ConvertReader() error = %v", err)
	}

	if got != "{{ x }}" {
		t.Errorf("ConvertReader() = %q, want %q", got, "{{ x }}")
	}
}

func TestConvertReaderError(t *testing.T) {
	r := iotest.ErrReader(errors.New("disk on fire"))

	if _, err := ConvertReader(context.Background(), r, nil); !errors.Is(err, ErrReadInput) {
		t.Errorf("ConvertReader() error = %v, want ErrReadInput", err)
	}
}

func TestConvertLogsSubstitutions(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithPretty(false))

	ConvertContext(context.Background(), "A", Substitutions{{"A", "B"}}, WithLogger(logger))

	if !strings.Contains(buf.String(), "substitutions applied") {
		t.Errorf("missing substitution trace in %q", buf.String())
	}
}
