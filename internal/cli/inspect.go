package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/pipeline"
	"github.com/matzehuels/pagefit/pkg/report"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	paper     string
	scale     float64
	rulesFile string
	plain     bool
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [design.json]",
		Short: "Browse the mapping report of a conversion",
		Long: `Convert a design file and browse its mapping report: every print element
with its page box and estimated source box, plus path-based, unresolved
and skipped entries.

The browser is interactive on a terminal. Use --plain to print tables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := c.buildReport(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if opts.plain {
				printReport(rep)
				return nil
			}
			_, err = tea.NewProgram(NewReportModel(rep)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.paper, "paper", "p", "", "paper type (default A4)")
	cmd.Flags().Float64VarP(&opts.scale, "scale", "s", 0, "scale factor (default 1)")
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "TOML file with anchor rules")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print tables instead of the interactive browser")

	return cmd
}

func (c *CLI) buildReport(ctx context.Context, input string, opts inspectOpts) (*report.Report, error) {
	popts := pipeline.Options{PaperType: opts.paper, ScaleFactor: opts.scale, RulesFile: opts.rulesFile}
	res, _, err := c.convertFile(ctx, input, popts)
	if err != nil {
		return nil, err
	}
	return report.New(res, filepath.Base(input)), nil
}

// printReport prints every non-empty section of r as a table.
func printReport(r *report.Report) {
	fmt.Fprintf(os.Stdout, "%s %s mode, scale %s\n", StyleTitle.Render("Report"), r.Mode, fmtNum(r.ScaleFactor))
	fmt.Fprintln(os.Stdout, elementTable(r.Elements))
	for _, s := range []struct {
		title string
		recs  []convert.Record
	}{
		{"Path based", r.PathBased},
		{"Not found", r.NotFound},
		{"Skipped", r.Skipped},
	} {
		if len(s.recs) == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "\n%s (%d)\n", StyleTitle.Render(s.title), len(s.recs))
		fmt.Fprintln(os.Stdout, recordTable(s.recs))
	}
}
