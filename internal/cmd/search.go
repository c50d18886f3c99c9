package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ccsessions/internal/session"
)

var searchDeep bool

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search sessions",
	Long: `Search sessions by metadata: identifier, workspace, description, tag
and working directory.

With --deep (or a "c:" prefix on the term) the search also re-scans the
full content of every session file, which is much slower.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		term, deep := session.ParseQuery(strings.Join(args, " "))
		deep = deep || searchDeep

		var matches []*session.Summary
		if deep {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			matches, err = catalog.DeepFilter(ctx, term)
			if err != nil {
				fmt.Fprintln(os.Stderr, "search interrupted; results are partial")
			}
		} else {
			matches = catalog.Filter(term)
		}

		if len(matches) == 0 {
			fmt.Println("No sessions match.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODIFIED\tWORKSPACE\tID\tDESCRIPTION")
		for _, s := range matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				s.Modified.Format("2006-01-02 15:04"),
				s.Workspace,
				s.ID,
				s.Description,
			)
		}
		return w.Flush()
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchDeep, "deep", false, "also search full conversation content")
}
