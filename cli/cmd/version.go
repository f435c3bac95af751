package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Srimutu/liquid-to-jinja-converter/pkg"
)

// Version prints the program version.
type Version struct {
	stdout io.Writer
}

// Run executes the version command.
func (v *Version) Run() error {
	w := v.stdout
	if w == nil {
		w = os.Stdout
	}

	_, err := fmt.Fprintln(w, pkg.Name, pkg.Version())
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
