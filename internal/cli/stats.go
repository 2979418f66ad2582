package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagefit/pkg/cache"
	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/pipeline"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		paper, rulesFile string
		scale            float64
		asJSON           bool
	)

	cmd := &cobra.Command{
		Use:   "stats [design.json]",
		Short: "Print conversion statistics for a design file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{PaperType: paper, ScaleFactor: scale, RulesFile: rulesFile}
			stats, err := c.runStats(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			fmt.Println(statsTable(stats))
			return nil
		},
	}

	cmd.Flags().StringVarP(&paper, "paper", "p", "", "paper type (default A4)")
	cmd.Flags().Float64VarP(&scale, "scale", "s", 0, "scale factor (default 1)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "TOML file with anchor rules")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")

	return cmd
}

// convertFile decodes and converts a design file through a cached runner.
func (c *CLI) convertFile(ctx context.Context, input string, opts pipeline.Options) (*convert.Result, *design.Document, error) {
	data, err := readDesign(input)
	if err != nil {
		return nil, nil, err
	}
	doc, err := design.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	runner, err := c.newRunner(false)
	if err != nil {
		return nil, nil, err
	}
	defer runner.Close()

	if opts.Logger == nil {
		opts.Logger = loggerFromContext(ctx)
	}
	res, err := runner.Convert(ctx, doc, cache.Hash(data), opts)
	if err != nil {
		return nil, nil, err
	}
	return res, doc, nil
}

func (c *CLI) runStats(ctx context.Context, input string, opts pipeline.Options) (convert.Stats, error) {
	res, _, err := c.convertFile(ctx, input, opts)
	if err != nil {
		return convert.Stats{}, err
	}
	return res.Stats(), nil
}
