package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ccsessions/internal/tag"
)

var tagClear bool

var tagCmd = &cobra.Command{
	Use:   "tag <session-id-or-path> [value]",
	Short: "Show, set or clear a session's tag",
	Long: `Manage the user tag of a session.

Without a value the current tag is printed. With a value the tag is set.
With --clear (or an empty value) the tag is removed; the sidecar file is
deleted rather than left empty.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		summary, err := findSummary(catalog, args[0])
		if err != nil {
			return err
		}

		store := tag.NewSidecarStore()

		if tagClear {
			if err := store.Write(summary.Path, ""); err != nil {
				return err
			}
			fmt.Printf("Cleared tag for %s\n", summary.ID)
			return nil
		}

		if len(args) == 1 {
			value, err := store.Read(summary.Path)
			if err != nil {
				return err
			}
			if value == "" {
				fmt.Println("(no tag)")
			} else {
				fmt.Println(value)
			}
			return nil
		}

		value := strings.TrimSpace(args[1])
		if err := store.Write(summary.Path, value); err != nil {
			return err
		}
		if value == "" {
			fmt.Printf("Cleared tag for %s\n", summary.ID)
		} else {
			fmt.Printf("Tagged %s as %q\n", summary.ID, value)
		}
		return nil
	},
}

func init() {
	tagCmd.Flags().BoolVar(&tagClear, "clear", false, "remove the tag")
}
