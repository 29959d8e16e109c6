package main

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/DinosaursAreCute/taskmover/pkg/groups"
)

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List built-in pattern groups",
		Long: `Groups lists the built-in @group references and the glob
sub-patterns each one expands to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"Group", "Patterns"}}
			for _, name := range groups.Names() {
				patterns, _ := groups.Lookup(name)
				data = append(data, []string{"@" + name, strings.Join(patterns, " ")})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}
