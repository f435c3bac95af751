package convert

import "testing"

func TestTranslateCapture(t *testing.T) {
	tests := []struct {
		name string
		in   string
		body string
		want string
	}{
		{"trimmed", "x", " hello ", "{% set x %}hello{% endset %}"},
		{"empty", "x", "", "{% set x %}{% endset %}"},
		{"multiline", " greeting ", "\n  Hi {{ name }}\n", "{% set greeting %}Hi {{ name }}{% endset %}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateCapture(tt.in, tt.body); got != tt.want {
				t.Errorf("TranslateCapture() = %q, want %q", got, tt.want)
			}
		})
	}
}
