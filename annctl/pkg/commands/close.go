package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"gobasera/pkg/models"
)

var closeCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close an active announcement",
	Args:  cobra.ExactArgs(1),
	RunE:  closeAnnouncement,
}

func init() {
	RootCmd.AddCommand(closeCmd)
}

func closeAnnouncement(cmd *cobra.Command, args []string) error {
	item, err := newClient().UpdateStatus(cmd.Context(), models.ID(args[0]), models.StatusClosed)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	closedAt := ""
	if item.ClosedAt != nil {
		closedAt = " at " + formatTime(*item.ClosedAt)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Closed announcement %s%s\n", item.ID, closedAt)
	return nil
}
