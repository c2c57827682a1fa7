package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/authzed/indexedgraph/internal/logging"
	"github.com/authzed/indexedgraph/pkg/replay"
)

// ReplayConfig is the configuration for the replay command.
type ReplayConfig struct {
	// ScriptPath is the YAML script to run; "-" reads it from stdin.
	ScriptPath string

	// NoColor disables colored output.
	NoColor bool
}

// Complete loads the configured script.
func (c *ReplayConfig) Complete(stdin io.Reader) (*replay.Script, error) {
	if c.ScriptPath == "-" {
		return replay.Load(stdin)
	}

	f, err := os.Open(c.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("error opening replay script: %w", err)
	}
	defer f.Close()

	return replay.Load(f)
}

func RegisterReplayFlags(cmd *cobra.Command, config *ReplayConfig) error {
	cmd.Flags().StringVar(&config.ScriptPath, "script", "", `path to a YAML script of operations ("-" for stdin)`)
	cmd.Flags().BoolVar(&config.NoColor, "no-color", false, "disable colored output")
	return cmd.MarkFlagRequired("script")
}

// RunReplay loads the configured script and writes the result of every step
// to out.
func RunReplay(ctx context.Context, config *ReplayConfig, stdin io.Reader, out io.Writer) error {
	if config.NoColor {
		color.NoColor = true
	}

	script, err := config.Complete(stdin)
	if err != nil {
		return err
	}

	runner := replay.NewRunner(out)
	if err := runner.Run(ctx, script); err != nil {
		return err
	}

	g := runner.Graph()
	logging.Info().
		Int("keys", g.Len()).
		Int("entries", g.EntryCount()).
		Int("edges", g.EdgeCount()).
		Msg("replay complete")
	return nil
}

func NewReplayCommand(programName string, config *ReplayConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "run a script of operations against an empty indexed graph",
		PreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperDotEnvPreRunE(programName, programName+".env", zerologr.New(&logging.Logger)),
			cobrazerolog.New(
				cobrazerolog.WithTarget(func(logger zerolog.Logger) {
					logging.SetGlobalLogger(logger)
				}),
			).RunE(),
		),
		RunE: func(cmd *cobra.Command, args []string) error {
			signalctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return RunReplay(signalctx, config, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// ReplayExample is the usage example shown by the root command.
func ReplayExample(programName string) string {
	return fmt.Sprintf(`	%s:
		%s replay --script ops.yaml

	%s:
		echo 'operations: [{op: insert, key: a, value: "1"}, {op: get, key: a}]' | %s replay --script -
`,
		color.YellowString("From a file"),
		programName,
		color.GreenString("From stdin"),
		programName,
	)
}
