package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"gobasera/pkg/models"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List announcements",
	Args:    cobra.NoArgs,
	RunE:    list,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func list(cmd *cobra.Command, args []string) error {
	items, err := newClient().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch announcements: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No announcements yet.")
		return nil
	}
	renderTable(out, items)
	return nil
}

func renderTable(out io.Writer, items []models.Announcement) {
	table := tablewriter.NewWriter(out)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Title", "Status", "Created", "Closed"})

	for _, item := range items {
		status := item.Status
		switch {
		case item.IsActive():
			status = color.New(color.FgGreen).Sprint(status)
		case item.IsClosed():
			status = color.New(color.FgHiBlack).Sprint(status)
		}

		closed := ""
		if item.IsClosed() && item.ClosedAt != nil {
			closed = formatTime(*item.ClosedAt)
		}

		table.Append([]string{
			item.ID.String(),
			item.Title,
			status,
			formatTime(item.CreatedAt),
			closed,
		})
	}

	table.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
