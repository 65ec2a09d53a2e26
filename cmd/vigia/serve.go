package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brasslaw/vigia/internal/dashboard"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server with scheduled syncs",
		Long:  "Serves the case-tracking dashboard and, when enabled, runs the daily DataJud and Comunica PJe syncs on schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "vigia.yaml", "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, s, u, err := appFromConfig(configPath)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nRecebido %s, encerrando...\n", sig)
		cancel()
	}()

	if cfg.Cron.Enabled {
		c, err := u.StartCron(cfg.Cron.DataJud, cfg.Cron.Comunica)
		if err != nil {
			return err
		}
		defer c.Stop()
		fmt.Fprintf(cmd.OutOrStdout(), "Agendamentos ativos: datajud %v, comunica %v\n", cfg.Cron.DataJud, cfg.Cron.Comunica)
	}

	return dashboard.Start(ctx, dashboard.StartOpts{
		Store:   s,
		Updater: u,
		Port:    port,
		Out:     cmd.OutOrStdout(),
	})
}
