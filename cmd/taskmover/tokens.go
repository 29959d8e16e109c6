package main

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List available dynamic tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, shutdown, err := newSystem()
			if err != nil {
				return err
			}
			defer shutdown()

			available := s.AvailableTokens()
			names := make([]string, 0, len(available))
			for name := range available {
				names = append(names, name)
			}
			sort.Strings(names)

			data := pterm.TableData{{"Token", "Description"}}
			for _, name := range names {
				data = append(data, []string{"$" + name, available[name]})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <text>",
		Short: "Expand dynamic tokens in a text",
		Long: `Resolve expands tokens like $DATE, $USER, or $UUID in the given
text and prints the result. Unknown tokens are left in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, shutdown, err := newSystem()
			if err != nil {
				return err
			}
			defer shutdown()

			resolved, err := s.ResolveTokens(args[0])
			if err != nil {
				return err
			}
			cmd.Println(resolved)
			return nil
		},
	}
}
