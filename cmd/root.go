package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootLogger is the logger handed in by main and shared by all subcommands.
var rootLogger *zap.Logger

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "pastekit",
	Short: "Pastekit packs project files into paste-ready chunks",
	Long:  `Pastekit selects project files by glob rules, wraps each in a self-describing frame, and packs the frames into numbered output files under a line budget, with a cross-reference index.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute(logger *zap.Logger) error {
	rootLogger = logger
	return RootCmd.Execute()
}
