package cmd

import (
	"context"

	"github.com/Srimutu/liquid-to-jinja-converter/cli/cmd/repl"
	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

// Repl starts an interactive session that converts each entered line.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	subs, err := substitutionsFrom(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, subs, kongVar(ctx, CacheIdentifier), log.Default())
}
