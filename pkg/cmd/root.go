package cmd

import (
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/spf13/cobra"
)

func RegisterRootFlags(cmd *cobra.Command) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
}

func NewRootCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:           programName,
		Short:         "An insertion-ordered multimap with a positional index",
		Long:          "Exercise an in-memory insertion-ordered multimap from scripted operations",
		Example:       ReplayExample(programName),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}
