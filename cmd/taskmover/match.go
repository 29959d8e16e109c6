package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <expression> <file>...",
		Short: "Match a pattern against a list of files",
		Long: `Match parses the expression and evaluates it against the given
file paths, printing the subset that matched. Metadata-based patterns
(advanced queries and shorthands) stat the files on the real filesystem.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, shutdown, err := newSystem()
			if err != nil {
				return err
			}
			defer shutdown()

			p, err := s.CreatePattern(args[0])
			if err != nil {
				return err
			}
			if !p.IsValid {
				for _, e := range p.ValidationErrors {
					fmt.Printf("  %s %s\n", styled(errorStyle, "error:"), e)
				}
				return fmt.Errorf("expression is invalid")
			}

			result, err := s.Match(p, args[1:])
			if err != nil {
				return err
			}

			for _, f := range result.MatchedFiles {
				fmt.Println(f)
			}
			fmt.Println(styled(mutedStyle, fmt.Sprintf(
				"%d of %d matched in %.2fms",
				len(result.MatchedFiles), result.TotalFilesChecked, result.ExecutionTimeMS)))
			return nil
		},
	}
}
