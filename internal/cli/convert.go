package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/pipeline"
	"github.com/matzehuels/pagefit/pkg/report"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output    string  // output file (single format) or base path
	paper     string  // target paper type
	scale     float64 // user scale factor
	formats   string  // comma-separated output formats
	rulesFile string  // TOML anchor rules
	margins   bool    // draw page margins in previews
	indexes   bool    // number elements in previews
	noCache   bool    // disable the conversion cache
	refresh   bool    // bypass cached results
	archive   bool    // store the mapping report locally
	quiet     bool    // skip the summary table
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [design.json]",
		Short: "Convert a design file into a print template",
		Long: `Convert a design JSON file into a print template.

Outputs are written next to the input as <name>.print.<ext> unless --output
is given. Formats: json (print template), svg, png, pdf (page preview),
report (mapping report), dot, tree (design node tree).`,
		Example: `  pagefit convert design.json
  pagefit convert design.json -p B5 -s 0.8 -f json,svg,report
  pagefit convert design.json -f svg --margins --indexes -o preview.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.runConvert(cmd.Context(), args[0], opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&opts.paper, "paper", "p", "", "paper type: A4 (default), A3, B4, B5, Letter, Legal")
	cmd.Flags().Float64VarP(&opts.scale, "scale", "s", 0, "scale factor applied to positions and sizes (default 1)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames, ", ")+" (comma-separated, default json)")
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "TOML file with anchor rules for path-based text")
	cmd.Flags().BoolVar(&opts.margins, "margins", false, "draw page margins in previews")
	cmd.Flags().BoolVar(&opts.indexes, "indexes", false, "number elements in previews")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "store the mapping report for 'pagefit reports'")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")

	return cmd
}

// runConvert converts input, writes the artifacts and returns the written paths.
func (c *CLI) runConvert(ctx context.Context, input string, opts convertOpts) ([]string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := readDesign(input)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	popts := pipeline.Options{
		PaperType:   opts.paper,
		ScaleFactor: opts.scale,
		RulesFile:   opts.rulesFile,
		Refresh:     opts.refresh,
		Formats:     parseFormats(opts.formats),
		Margins:     opts.margins,
		Indexes:     opts.indexes,
		Source:      filepath.Base(input),
		Logger:      logger,
	}

	res, err := withSpinner(ctx, "Converting "+filepath.Base(input), func() (*pipeline.Result, error) {
		return runner.Execute(ctx, data, popts)
	})
	if err != nil {
		return nil, err
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeOutput(paths[format], res.Artifacts[format]); err != nil {
			return nil, fmt.Errorf("write %s: %w", format, err)
		}
	}
	prog.done("converted", "input", filepath.Base(input), "mode", res.Conversion.Mode,
		"cached", res.CacheInfo.ConvertHit)

	if opts.archive {
		store, err := newReportStore()
		if err != nil {
			return nil, err
		}
		if err := store.Save(ctx, res.Report); err != nil {
			return nil, err
		}
		logger.Debug("archived report", "id", res.Report.ID, "dir", store.Dir())
	}

	written := make([]string, 0, len(popts.Formats))
	toStdout := false
	for _, format := range popts.Formats {
		written = append(written, paths[format])
		toStdout = toStdout || paths[format] == "-"
	}
	if !opts.quiet && !toStdout {
		printConversion(res, written, opts.archive)
	}
	return written, nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output file is written there unchanged.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && (output == "-" || filepath.Ext(output) != "") {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + pipeline.Extensions[f]
	}
	return paths
}

func printConversion(res *pipeline.Result, written []string, archived bool) {
	stats := res.Conversion.Stats()
	printSuccess("Converted to %s", res.Conversion.Paper.Type)
	fmt.Println(conversionLine(res.Conversion.Mode, stats.TotalElements,
		stats.PathNotFoundElements, stats.SkippedElements, res.CacheInfo.ConvertHit))
	for _, p := range written {
		printFile(p)
	}
	for _, rec := range res.Conversion.Records {
		if rec.Type == convert.RecordPathNotFound {
			printWarning("path not found: %s", report.ShortPath(rec.Path))
		}
	}
	fmt.Println()
	fmt.Println(summaryTable(report.Summarize(res.Conversion)))
	if archived {
		printNextStep("Show report", "pagefit reports show "+res.Report.ID)
	}
}
