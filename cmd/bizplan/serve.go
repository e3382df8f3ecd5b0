package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/internal/config"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/mcpserver"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().Str("version", mcpserver.Version).Msg("serving MCP on stdio")
			return mcpserver.New(cfg).ServeStdio()
		},
	}
}
