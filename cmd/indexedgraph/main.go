package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/authzed/indexedgraph/pkg/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand("indexedgraph")
	cmd.RegisterRootFlags(rootCmd)

	replayConfig := &cmd.ReplayConfig{}
	replayCmd := cmd.NewReplayCommand(rootCmd.Use, replayConfig)
	if err := cmd.RegisterReplayFlags(replayCmd, replayConfig); err != nil {
		log.Fatal().Err(err).Msg("failed to register replay flags")
	}
	rootCmd.AddCommand(replayCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("terminated with errors")
		os.Exit(1)
	}
}
