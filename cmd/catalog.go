// file: cmd/catalog.go
// version: 1.0.0
// guid: 3d7f2a85-e6b9-4c14-9a0f-8b5e1c4d7a62

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the edition catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every edition in catalog or alphabetical order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		sortBy, _ := cmd.Flags().GetString("sort")
		var order []int
		switch sortBy {
		case "catalog":
			order = make([]int, cat.FriendCount())
			for i := range order {
				order[i] = i
			}
		case "alpha":
			order = cat.AlphabeticalOrder()
		default:
			return fmt.Errorf("unknown sort %q (want catalog or alpha)", sortBy)
		}

		out := cmd.OutOrStdout()
		for _, fi := range order {
			friend, _ := cat.Friend(fi)
			fmt.Fprintf(out, "%d  %s\n", fi, friend.Name)
			for di := range friend.Documents {
				doc := &friend.Documents[di]
				for ei := range doc.Editions {
					ed := &doc.Editions[ei]
					fmt.Fprintf(out, "    %-50s %s (%s, %d pages)\n", ed.Path, doc.Title, ed.Type, ed.Pages)
				}
			}
		}
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search editions by name, title, type and path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		matches := cat.Search(args[0], limit)
		if len(matches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no matches")
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(cmd.OutOrStdout(), "%-50s %s\n", m.Path, m.Label)
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report every problem in the catalog file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(config.AppConfig.CatalogPath)
		if err != nil {
			return err
		}
		cat, err := catalog.Parse(data)
		if err != nil {
			errs := multierr.Errors(err)
			for _, e := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), "  -", e)
			}
			return fmt.Errorf("catalog has %d problem(s)", len(errs))
		}
		for _, w := range multierr.Errors(cat.Warnings()) {
			fmt.Fprintln(cmd.OutOrStdout(), "  warning:", w)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d friends, %d editions\n", cat.FriendCount(), cat.EditionCount())
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("sort", "catalog", "order: catalog or alpha")
	catalogSearchCmd.Flags().Int("limit", 20, "maximum number of matches")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
