package terminal

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/ops-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/ops-atlas/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	reporters commands.Reporters
	logOutput io.Writer
	verbose   bool
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// LogOutput receives diagnostics; defaults to stderr.
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		reporters: commands.Reporters{
			Table: export.NewReporter(opts.Output),
			Text:  NewReporter(opts.Output),
		},
		logOutput: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "opsatlas",
		Short:         "Store operations analysis tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if cli.verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logOutput}).
				Level(level).
				With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.reporters))
	cmd.AddCommand(commands.NewFetchCmd(cli.reporters))
	cmd.AddCommand(commands.NewConfigCmd())
	cmd.AddCommand(commands.NewProfilesCmd())

	return cmd
}
