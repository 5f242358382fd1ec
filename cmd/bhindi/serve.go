package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bhindi/internal/httpapi"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.rt == nil {
				return errNoRuntime
			}
			if addr == "" {
				addr = c.rt.Config.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpapi.New(c.rt.Services, c.rt.Logger).Serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
