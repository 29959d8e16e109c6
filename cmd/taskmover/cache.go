package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the match result cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show result cache counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, shutdown, err := newSystem()
			if err != nil {
				return err
			}
			defer shutdown()

			stats := s.CacheStats()
			data := pterm.TableData{
				{"Counter", "Value"},
				{"Entries", fmt.Sprintf("%d / %d", stats.Entries, stats.MaxEntries)},
				{"Memory", fmt.Sprintf("%d / %d bytes", stats.MemoryBytes, stats.MaxMemoryBytes)},
				{"Hits", fmt.Sprintf("%d", stats.Hits)},
				{"Misses", fmt.Sprintf("%d", stats.Misses)},
				{"Hit rate", fmt.Sprintf("%.1f%%", stats.HitRatePercent)},
				{"Evictions", fmt.Sprintf("%d", stats.Evictions)},
				{"Expired", fmt.Sprintf("%d", stats.Expired)},
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	})

	return cacheCmd
}
