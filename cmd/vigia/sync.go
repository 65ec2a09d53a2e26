package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync job and exit",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "vigia.yaml", "path to config file")

	cmd.AddCommand(&cobra.Command{
		Use:   "datajud",
		Short: "Sync docket movements from the DataJud index",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, u, err := appFromConfig(configPath)
			if err != nil {
				return err
			}
			result, err := u.RunMovementSync(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "comunica",
		Short: "Check the Comunica PJe feed for every case",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, u, err := appFromConfig(configPath)
			if err != nil {
				return err
			}
			result, err := u.RunComunicaSync(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	})

	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
