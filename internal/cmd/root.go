package cmd

import (
	"github.com/spf13/cobra"

	"ccsessions/internal/session"
	"ccsessions/internal/tui"
)

// rootCmd is the base command; with no subcommand it opens the browser.
var rootCmd = &cobra.Command{
	Use:   "ccsessions",
	Short: "Browse, search, tag and resume Claude Code sessions",
	Long: `An interactive browser for recorded Claude Code conversation logs.

Running with no arguments opens the TUI. Type to filter sessions by
metadata; prefix the query with "c:" to search full conversation
content instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := tui.Run()
		if err != nil {
			return err
		}
		if result.ResumeID != "" {
			return session.Resume(result.ResumeID, result.ResumeDir)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resumeCmd)
}
