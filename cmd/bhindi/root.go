package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"bhindi/internal/bootstrap"
	"bhindi/internal/config"
	"bhindi/internal/events"
)

type cli struct {
	configPath string
	dbPath     string
	rt         *bootstrap.Runtime
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "bhindi",
		Short: "Bhindi AI assistant, headless",
		Long: `Runs the Bhindi assistant without the desktop window: serve the local
HTTP API, ask a single question, or export a backup of local data.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  c.open,
		PersistentPostRunE: c.close,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultPath(), "path to config.yaml")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "database file (overrides config)")

	root.AddCommand(newServeCmd(c), newAskCmd(c), newExportCmd(c))
	return root
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.DBPath = c.dbPath
	}

	rt, err := bootstrap.Open(cfg, nil)
	if err != nil {
		return err
	}
	c.rt = rt
	events.SetCustomEmitter(events.SlogEmitter(rt.Logger))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return rt.Services.Startup(ctx)
}

func (c *cli) close(*cobra.Command, []string) error {
	if c.rt == nil {
		return nil
	}
	err := c.rt.Close()
	c.rt = nil
	return err
}

var errNoRuntime = errors.New("runtime not initialised")
