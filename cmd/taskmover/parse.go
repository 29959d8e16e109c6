package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <expression>",
		Short: "Classify and compile a pattern expression",
		Long: `Parse classifies an expression into one of the pattern kinds
(simple glob, enhanced glob, advanced query, shorthand, group reference),
expands any dynamic tokens, and prints the compiled query form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, shutdown, err := newSystem()
			if err != nil {
				return err
			}
			defer shutdown()

			parsed, err := s.Parse(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", styled(headerStyle, "Expression:"), parsed.Expression)
			if parsed.ResolvedExpression != parsed.Expression {
				fmt.Printf("%s %s\n", styled(headerStyle, "Resolved:  "), parsed.ResolvedExpression)
			}
			fmt.Printf("%s %s\n", styled(headerStyle, "Kind:      "), parsed.Type)
			fmt.Printf("%s %s\n", styled(headerStyle, "Compiled:  "), parsed.CompiledQuery)
			fmt.Printf("%s %s\n", styled(headerStyle, "Complexity:"), parsed.Complexity)
			if len(parsed.Tokens) > 0 {
				fmt.Printf("%s %s\n", styled(headerStyle, "Tokens:    "), strings.Join(parsed.Tokens, ", "))
			}
			if len(parsed.Groups) > 0 {
				fmt.Printf("%s %s\n", styled(headerStyle, "Groups:    "), strings.Join(parsed.Groups, ", "))
			}
			return nil
		},
	}
}
