package cmd

import (
	"github.com/spf13/cobra"

	"ccsessions/internal/session"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <session-id-or-path>",
	Short: "Resume a session in this terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		summary, err := findSummary(catalog, args[0])
		if err != nil {
			return err
		}
		return session.Resume(summary.ID, summary.CWD)
	},
}
