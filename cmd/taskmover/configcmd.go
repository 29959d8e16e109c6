package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DinosaursAreCute/taskmover/pkg/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage taskmover configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented default configuration file",
		Long: `Init writes a taskmover.toml with every setting present but
commented out, so uncommenting a line overrides that one default.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Generate(path); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", styled(successStyle, "wrote"), path)
			return nil
		},
	})

	return configCmd
}
