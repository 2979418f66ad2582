// Package pkg provides the core libraries for pagefit design-to-print
// conversion.
//
// # Overview
//
// pagefit takes a design tree exported from a vector design tool and maps it
// onto a fixed paper size. The result is a print document of absolutely
// positioned text and image elements in millimeters, laid out so that no two
// text elements overlap. The pkg directory is organized into four areas:
//
//  1. Input and output models ([design], [edoc])
//  2. Conversion ([convert] with [nodeindex], [estimate], [materialize],
//     [placement] and [units])
//  3. Outputs ([report], [render])
//  4. Infrastructure ([pipeline], [cache], [archive], [observability],
//     [errors], [buildinfo])
//
// # Architecture
//
// The typical data flow through pagefit:
//
//	design JSON
//	     ↓
//	[design] package (decode the node tree)
//	     ↓
//	[convert] package (path-indexed or tree-walk conversion)
//	     ↓
//	[edoc] package (print document on the chosen paper)
//	     ↓
//	JSON / SVG / PNG / PDF / report output
//
// # Quick Start
//
//	doc, _ := design.ImportJSON("card.json")
//	res, _ := convert.Convert(doc, convert.Options{PaperType: "A4"})
//	_ = edoc.ExportJSON(res.Document, "card.print.json")
//
// The [pipeline] package wraps the same steps with caching and rendering and
// is shared by the CLI and the HTTP API.
//
// # Main Packages
//
// [convert] - Conversion entry point. Chooses the mode, classifies nodes,
// records what happened to each input and computes statistics.
//
// [nodeindex] - Path index over the design tree with exact and suffix
// lookup.
//
// [estimate] - Anchor heuristics for path-indexed mode. The rule table is
// data and can be loaded from TOML.
//
// [materialize] - Builds print elements from design nodes: sizes, fonts,
// colors and alignment.
//
// [placement] - Collision-free placement on the page.
//
// [report] - Mapping reports that relate every element back to the source
// design.
//
// [render] - Page previews, design-tree diagrams and SVG to PDF/PNG
// conversion.
//
// [cache] - Content-addressed caching with file, Redis and null backends.
//
// [archive] - Report storage with memory, file and MongoDB backends.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/convert/...            # Specific package
//	go test -run Example                 # Examples only
//
// [design]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/design
// [edoc]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/edoc
// [convert]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/convert
// [nodeindex]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/nodeindex
// [estimate]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/estimate
// [materialize]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/materialize
// [placement]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/placement
// [units]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/units
// [report]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/report
// [render]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/cache
// [archive]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/archive
// [observability]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pagefit/pkg/buildinfo
package pkg
