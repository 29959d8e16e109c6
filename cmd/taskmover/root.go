package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/DinosaursAreCute/taskmover/pkg/config"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/system"
)

// set by the build via -ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "taskmover",
		Short: "Classify, validate, and match file patterns",
		Long: `taskmover works with file patterns ranging from plain globs to
query-like expressions. It classifies an expression, expands dynamic
tokens like $DATE, compiles it to a canonical query form, and matches
it against file lists with cached results.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newGroupsCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newConfigCmd())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskmover version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

// newSystem loads configuration and builds the pattern system. The
// returned shutdown func must be deferred.
func newSystem() (*system.System, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	s := system.New(cfg)
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("shutdown did not complete cleanly")
		}
	}
	return s, shutdown, nil
}
