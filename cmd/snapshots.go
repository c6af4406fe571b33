// file: cmd/snapshots.go
// version: 1.0.0
// guid: e81c5a39-7d24-4f6b-b0a3-2c9e6f4d8b15

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/jdfalk/cover-preview/internal/database"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage saved preview sessions",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return openStore()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return multierr.Append(database.CloseStore(), closeLog())
	},
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := database.GlobalStore.ListSnapshots()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no saved sessions")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSIZE\tUPDATED")
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", info.ID, info.Size, info.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return tw.Flush()
	},
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Forget saved sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := database.GlobalStore.DeleteSnapshot(id); err != nil {
				return fmt.Errorf("delete %s: %w", id, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
		}
		return nil
	},
}

func init() {
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsDeleteCmd)
}
