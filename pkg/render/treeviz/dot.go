// Package treeviz draws the node tree of a design document with Graphviz.
//
// The diagram is a diagnostic aid: every node becomes a box colored by how
// the converter materializes it (text, image, shape, skipped or structural),
// so missing or skipped elements are easy to spot.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/materialize"
)

// Options configures tree diagram rendering.
type Options struct {
	// Detailed adds size and text previews to node labels. When false, only
	// the node type and name are shown.
	Detailed bool
	// MaxDepth limits the rendered depth. Zero renders the whole tree.
	MaxDepth int
}

// ToDOT converts a design tree to Graphviz DOT. Node IDs follow pre-order
// traversal, so the output is stable for a given tree.
func ToDOT(root *design.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.15;\n")
	buf.WriteString("\n")

	var edges []string
	next := 0
	var visit func(n *design.Node, depth int) string
	visit = func(n *design.Node, depth int) string {
		id := "n" + strconv.Itoa(next)
		next++
		label := fmtLabel(n, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, label), ", "))
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return id
		}
		for _, c := range n.Children {
			if c == nil {
				continue
			}
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", id, visit(c, depth+1)))
		}
		return id
	}
	if root != nil {
		visit(root, 0)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *design.Node, detailed bool) string {
	head := fmt.Sprintf("[%s] %s", n.Type, n.DisplayName("unnamed"))
	if !detailed {
		return head
	}
	parts := []string{head, fmt.Sprintf("%gx%g", n.Width, n.Height)}
	if n.Characters != "" {
		parts = append(parts, strconv.Quote(materialize.Truncate(n.Characters, 24)))
	}
	if hash := n.ImageHash(); hash != "" {
		parts = append(parts, "image "+materialize.Truncate(hash, 8))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *design.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch materialize.Classify(n) {
	case materialize.KindText:
		attrs = append(attrs, "fillcolor=\"#dbe9f7\"")
	case materialize.KindImage:
		attrs = append(attrs, "fillcolor=\"#fbeec1\"")
	case materialize.KindShape:
		attrs = append(attrs, "fillcolor=\"#e6e0f3\"")
	case materialize.KindSkipped:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=\"#666666\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with a plain one whose
// viewBox starts at the origin, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
