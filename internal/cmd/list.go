package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listWorkspace string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODIFIED\tWORKSPACE\tMSGS\tTOKENS\tSIZE\tTAG\tDESCRIPTION")
		count := 0
		for _, s := range catalog.Summaries {
			if listWorkspace != "" && s.Workspace != listWorkspace {
				continue
			}
			count++
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
				s.Modified.Format("2006-01-02 15:04"),
				s.Workspace,
				s.MessageCount,
				s.TotalTokens(),
				humanSize(s.SizeBytes),
				s.Tag,
				s.Description,
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d sessions\n", count)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listWorkspace, "workspace", "w", "", "only list sessions from this workspace")
}
