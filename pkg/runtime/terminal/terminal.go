package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kothscore/helios/pkg/runtime/terminal/commands"
	"github.com/kothscore/helios/pkg/runtime/terminal/export"
	"github.com/kothscore/helios/pkg/services/conditions"
	"github.com/kothscore/helios/pkg/services/config"
	"github.com/kothscore/helios/pkg/services/submit"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	opts     Options
	runtime  *commands.Runtime
	noColor  bool
	settings string
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Catalog conditions.Catalog
	Output  io.Writer
	// ErrOutput receives logs
	ErrOutput io.Writer
	// Runner overrides how command-backed conditions spawn processes
	Runner conditions.Runner
	// Submitter overrides the HTTP submission client
	Submitter commands.Submitter
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Catalog == nil {
		opts.Catalog = conditions.DefaultCatalog()
	}

	cli := &CLI{opts: opts}
	cli.runtime = &commands.Runtime{
		Catalog: opts.Catalog,
		Reporters: map[string]commands.ReporterFactory{
			"text": func(w io.Writer) commands.Reporter { return NewReporter(w, cli.noColor) },
			"json": func(w io.Writer) commands.Reporter { return export.NewReporter(w) },
		},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mostly for tests
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "helios",
		Short:             "King-of-the-hill host scoring engine",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetOut(cli.opts.Output)
	cmd.SetErr(cli.opts.ErrOutput)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.settings, "settings", "", "Path to a settings file (default ./helios.yaml if present)")
	flags.String("blob", "conf.z", "Obfuscated configuration, a local path or s3://bucket/key")
	flags.String("config", "conf.yaml", "Plaintext configuration used by encrypt")
	flags.String("keys_file", "keys.ini", "INI file holding key material")
	flags.String("key_profile", config.DefaultKeyProfile, "Key profile to use")
	flags.String("team", "", "Team identifier sent with submissions")
	flags.String("remote", "", "Scoreboard URL, overrides the configuration's remote")
	flags.Int("parallel", 0, "Evaluate up to this many records at once (0 is sequential)")
	flags.Duration("command_timeout", 0, "Bound on every spawned command (0 is none)")
	flags.String("log_level", "warn", "Log level (trace, debug, info, warn, error)")
	flags.String("log_format", "console", "Log format (console or json)")
	flags.String("aws_profile", "", "AWS shared config profile for s3:// blobs")
	flags.BoolVar(&cli.noColor, "no_color", false, "Disable colored output")

	cmd.AddCommand(commands.NewScoreCmd(cli.runtime))
	cmd.AddCommand(commands.NewEncryptCmd(cli.runtime))
	cmd.AddCommand(commands.NewDecryptCmd(cli.runtime))
	cmd.AddCommand(commands.NewGenKeyCmd(cli.runtime))
	cmd.AddCommand(commands.NewChecksCmd(cli.runtime))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(cli.settings, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	cli.runtime.Settings = settings

	logger, err := newLogger(cli.opts.ErrOutput, settings, cli.noColor)
	if err != nil {
		return err
	}

	ctx := logger.WithContext(cmd.Context())
	if cli.opts.Runner != nil {
		ctx = conditions.WithRunner(ctx, cli.opts.Runner)
	}
	if settings.CommandTimeout > 0 {
		ctx = conditions.WithCommandTimeout(ctx, settings.CommandTimeout)
	}
	cmd.SetContext(ctx)

	cli.runtime.Submitter = cli.opts.Submitter
	if cli.runtime.Submitter == nil {
		cli.runtime.Submitter = submit.NewClient(&logger, submit.Options{})
	}
	return nil
}

func newLogger(w io.Writer, s *config.Settings, noColor bool) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}

	switch s.LogFormat {
	case "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: noColor}
	default:
		return zerolog.Logger{}, fmt.Errorf("unsupported log format %q", s.LogFormat)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
