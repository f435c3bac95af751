package cli

import (
	"context"
	"runtime"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Srimutu/liquid-to-jinja-converter/cli/cmd"
	"github.com/Srimutu/liquid-to-jinja-converter/convert"
	"github.com/Srimutu/liquid-to-jinja-converter/pkg"
)

// CLI is the top-level command-line interface for liquid2jinja.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Subs string   `help:"Substitution map (JSON object or YAML mapping) applied before conversion" placeholder:"FILE"      short:"S" type:"existingfile"`
	Set  []string `help:"Add or override a substitution"                                            placeholder:"KEY=VALUE" sep:"none" short:"D"`

	Convert cmd.Convert `cmd:"" default:"withargs" help:"Convert Liquid templates to Jinja"`
	Stages  cmd.Stages  `cmd:""                    help:"List conversion stages"`
	Repl    cmd.Repl    `cmd:""                    help:"Convert templates interactively"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
	Version cmd.Version `cmd:""                    help:"Print version"`
}

// Run executes the liquid2jinja CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	yamlPath := configPath(baseConfig + extYAML)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that the logger is configured regardless
	// of flag position, including boolean flags without a TextUnmarshaler.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(strings.TrimSuffix(pkg.Prefix(), "_")),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+extJSON)),
		kong.Configuration(loadYAML, yamlPath),
		cli.vars(yamlPath),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSubstitutions(ctx, cli.Subs, cli.Set)

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// vars returns the interpolation variables referenced by struct tags.
func (c *CLI) vars(yamlPath string) kong.Vars {
	return kong.Vars{
		cmd.ConfigIdentifier: yamlPath,
		cmd.CacheIdentifier:  cacheDir(),
		cmd.StagesIdentifier: stageNames(),
		"jobs":               strconv.Itoa(runtime.NumCPU()),
	}.
		CloneWith(c.Log.vars()).
		CloneWith(c.Pprof.vars())
}

func stageNames() string {
	names := convert.Default().Names()

	s := make([]string, len(names))
	for i, n := range names {
		s[i] = string(n)
	}

	return strings.Join(s, ",")
}
