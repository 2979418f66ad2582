package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagefit/pkg/archive"
)

// reportsCommand creates the reports command for archived mapping reports.
func (c *CLI) reportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List and show archived mapping reports",
		Long: `List and show mapping reports stored by 'pagefit convert --archive'.

Reports are kept in $XDG_DATA_HOME/pagefit/reports.`,
	}

	cmd.AddCommand(c.reportsListCommand())
	cmd.AddCommand(c.reportsShowCommand())

	return cmd
}

// reportsListCommand creates the "reports list" subcommand.
func (c *CLI) reportsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newReportStore()
			if err != nil {
				return err
			}
			defer store.Close()

			reports, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				printInfo("No archived reports")
				return nil
			}

			t := newTable("ID", "Created", "Source", "Mode", "Elements")
			for _, r := range reports {
				t.Row(r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(r.Source, 30),
					string(r.Mode), strconv.Itoa(len(r.Elements)))
			}
			fmt.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", archive.DefaultListLimit, "maximum number of reports")
	return cmd
}

// reportsShowCommand creates the "reports show" subcommand.
func (c *CLI) reportsShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show an archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newReportStore()
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			printReport(r)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
