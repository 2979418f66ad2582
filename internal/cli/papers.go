package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagefit/pkg/edoc"
)

// papersCommand creates the papers command.
func (c *CLI) papersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "papers",
		Short: "List supported paper sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(paperTable(edoc.Papers()))
			return nil
		},
	}
}
