package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Srimutu/liquid-to-jinja-converter/pkg"
)

func TestVersionRun(t *testing.T) {
	var out bytes.Buffer

	if err := (&Version{stdout: &out}).Run(); err != nil {
		t.Fatalf("Version.Run() error = %v", err)
	}

	want := pkg.Name + " " + pkg.Version()
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("Version.Run() printed %q, want %q", got, want)
	}
}
