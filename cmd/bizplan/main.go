// Package main provides the CLI entry point for bizplan.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/internal/config"
	"github.com/ukaji3/bizplan-go/internal/logging"
)

func main() {
	logging.SetupEnvironment()
	cfg := config.Load()

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bizplan",
		Short: "Turn Excel workbooks into Korean business-plan documents",
		Long: `bizplan extracts tables from xlsx workbooks, cleans up Korean special
characters and assembles business-plan documents in DOCX format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newConvertCmd(cfg),
		newExtractCmd(),
		newPlanCmd(cfg),
		newCharsCmd(),
		newDetectCmd(),
		newImagesCmd(cfg),
		newServeCmd(cfg),
	)
	return rootCmd
}
