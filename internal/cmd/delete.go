package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ccsessions/internal/session"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id-or-path>...",
	Short: "Delete session log files",
	Long: `Delete the backing log files of one or more sessions.

Shows what will be removed and asks for confirmation unless --force is
given. A failure on one file does not stop the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		var targets []*session.Summary
		for _, arg := range args {
			s, err := findSummary(catalog, arg)
			if err != nil {
				return err
			}
			targets = append(targets, s)
		}

		if !deleteForce {
			fmt.Printf("About to delete %d session(s):\n", len(targets))
			for _, s := range targets {
				fmt.Printf("  %s  %s\n", s.ID, s.Description)
			}
			fmt.Print("Proceed? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		paths := make([]string, len(targets))
		for i, s := range targets {
			paths[i] = s.Path
		}

		failed := 0
		for _, r := range session.Delete(paths) {
			if r.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "failed to delete %s: %v\n", r.Path, r.Err)
			}
		}
		fmt.Printf("Deleted %d of %d session(s)\n", len(paths)-failed, len(paths))
		if failed > 0 {
			return fmt.Errorf("%d deletion(s) failed", failed)
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")
}
