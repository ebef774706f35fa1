package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/tsgindex/internal/mcptools"
)

func newServeCmd(stderr io.Writer) *cobra.Command {
	var (
		addr    string
		workers int
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve indexing tools over MCP",
		Long: `Serve the index_path, find_definitions and graph_stats tools over the
Model Context Protocol. Uses stdio unless --addr is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(stderr, slogLevel(verbose))
			svc := mcptools.NewCodeIntelService(nil, workers, logger)
			defer svc.Close()

			if addr != "" {
				logger.Info("serve.http", "addr", addr)
				return mcptools.RunHTTP(cmd.Context(), svc, addr)
			}
			return mcptools.RunStdio(cmd.Context(), svc)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen on this address with streamable HTTP instead of stdio")
	cmd.Flags().IntVarP(&workers, "workers", "j", 1, "files to read and parse in parallel")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log progress")
	return cmd
}

func slogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}
