package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "import <arquivo.json>",
		Short: "Import cases from a legacy JSON data file",
		Long:  "Loads a JSON snapshot (the format the dated backups use) into the database, replacing cases with the same id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			s, _, err := buildApp(cfg)
			if err != nil {
				return err
			}
			n, err := s.ImportJSON(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Importados %d processos de %s\n", n, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "vigia.yaml", "path to config file")
	return cmd
}
