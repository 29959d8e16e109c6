package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <expression>",
		Short: "Validate a pattern expression",
		Long: `Validate checks an expression for structural problems, unknown
tokens, bad token arguments, and unknown groups, and estimates how
expensive it will be to match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, shutdown, err := newSystem()
			if err != nil {
				return err
			}
			defer shutdown()

			result := s.ValidateExpression(args[0])

			if result.IsValid {
				fmt.Println(styled(successStyle, "valid"))
			} else {
				fmt.Println(styled(errorStyle, "invalid"))
			}
			for _, e := range result.Errors {
				fmt.Printf("  %s %s\n", styled(errorStyle, "error:"), e)
			}
			for _, w := range result.Warnings {
				fmt.Printf("  %s %s\n", styled(warningStyle, "warning:"), w)
			}
			for _, sg := range result.Suggestions {
				fmt.Printf("  %s %s\n", styled(mutedStyle, "suggestion:"), sg)
			}
			fmt.Printf("  performance score: %d/10\n", result.PerformanceScore)

			if !result.IsValid {
				return fmt.Errorf("expression is invalid")
			}
			return nil
		},
	}
}
