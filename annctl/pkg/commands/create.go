package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gobasera/pkg/models"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an announcement",
	Args:  cobra.NoArgs,
	RunE:  create,
}

func init() {
	createCmd.Flags().StringP("title", "t", "", "announcement title (required)")
	createCmd.Flags().StringP("description", "d", "", "announcement description")
	RootCmd.AddCommand(createCmd)
}

func create(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")

	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}

	item, err := newClient().Create(cmd.Context(), models.CreateRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created announcement %s\n", item.ID)
	return nil
}
