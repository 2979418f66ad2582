package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/render/treeviz"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	output   string // output file
	dot      bool   // write DOT instead of SVG
	detailed bool   // include sizes and text in labels
	depth    int    // maximum rendered depth
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{detailed: true}

	cmd := &cobra.Command{
		Use:   "tree [design.json]",
		Short: "Draw the design node tree",
		Long: `Draw the node tree of a design file with Graphviz. Nodes are colored by
how the converter handles them: text, image, shape placeholder, skipped
image or structural node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := runTree(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if path != "-" {
				printSuccess("Generated tree diagram")
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <name>.tree.svg, '-' for stdout)")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "write Graphviz DOT instead of SVG")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", opts.detailed, "show sizes and text in node labels")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "maximum depth to draw (0 = all)")

	return cmd
}

// runTree renders the tree of input and returns the output path.
func runTree(ctx context.Context, input string, opts treeOpts) (string, error) {
	logger := loggerFromContext(ctx)

	doc, err := design.ImportJSON(input)
	if err != nil {
		return "", err
	}
	logger.Debug("loaded design", "nodes", doc.Count())

	dot := treeviz.ToDOT(&doc.Node, treeviz.Options{Detailed: opts.detailed, MaxDepth: opts.depth})

	ext := ".tree.svg"
	data := []byte(dot)
	if opts.dot {
		ext = ".dot"
	} else {
		data, err = withSpinner(ctx, "Rendering tree", func() ([]byte, error) {
			return treeviz.RenderSVG(ctx, dot)
		})
		if err != nil {
			return "", err
		}
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + ext
	}
	if err := writeOutput(path, data); err != nil {
		return "", err
	}
	return path, nil
}
