package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pagefit/pkg/archive"
	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/edoc"
	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/pipeline"
	"github.com/matzehuels/pagefit/pkg/report"
)

const testDesign = `{
  "type": "FRAME", "name": "Root", "width": 1024, "height": 724,
  "children": [
    {"type": "TEXT", "name": "Title", "characters": "Hello", "width": 200, "height": 20},
    {"type": "RECTANGLE", "name": "Box", "width": 100, "height": 40}
  ]
}`

// testEnv points the cache and data directories into a temp dir and writes
// the test design there.
func testEnv(t *testing.T) (string, context.Context, *CLI) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	input := filepath.Join(dir, "card.json")
	if err := os.WriteFile(input, []byte(testDesign), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	c := New(&buf, log.DebugLevel)
	return input, withLogger(context.Background(), c.Logger), c
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{pipeline.FormatJSON}},
		{"json", []string{"json"}},
		{"json, svg ,,pdf", []string{"json", "svg", "pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.in)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "default",
			formats: []string{"json", "report"},
			want:    map[string]string{"json": "card.print.json", "report": "card.print.report.json"},
		},
		{
			name:    "single explicit file",
			output:  "out.json",
			formats: []string{"json"},
			want:    map[string]string{"json": "out.json"},
		},
		{
			name:    "stdout",
			output:  "-",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "-"},
		},
		{
			name:    "explicit base",
			output:  "out/print.pdf",
			formats: []string{"pdf", "dot"},
			want:    map[string]string{"pdf": "out/print.pdf", "dot": "out/print.dot"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, outputPaths(tt.output, "card.json", tt.formats)); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunConvert(t *testing.T) {
	input, ctx, c := testEnv(t)

	opts := convertOpts{formats: "json,report,dot", archive: true, quiet: true}
	written, err := c.runConvert(ctx, input, opts)
	if err != nil {
		t.Fatalf("runConvert: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("written = %v", written)
	}

	base := strings.TrimSuffix(input, ".json") + outputSuffix
	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	doc, err := edoc.Unmarshal(data)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if n := len(doc.Elements()); n != 2 {
		t.Errorf("elements = %d, want 2", n)
	}
	for _, ext := range []string{".report.json", ".dot"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", ext, err)
		}
	}

	store, err := newReportStore()
	if err != nil {
		t.Fatal(err)
	}
	reports, err := store.List(ctx, archive.DefaultListLimit)
	if err != nil || len(reports) != 1 {
		t.Fatalf("archived reports = %d, err = %v", len(reports), err)
	}
	if reports[0].Source != "card.json" {
		t.Errorf("source = %q", reports[0].Source)
	}

	// The second run is served from the file cache.
	fc, err := openFileCache()
	if err != nil {
		t.Fatal(err)
	}
	before, _ := fc.Usage()
	if before.Entries == 0 {
		t.Error("cache should have entries after a conversion")
	}
	if _, err := c.runConvert(ctx, input, opts); err != nil {
		t.Fatalf("second runConvert: %v", err)
	}
	after, _ := fc.Usage()
	if after.Entries != before.Entries {
		t.Errorf("cache entries %d -> %d, want unchanged", before.Entries, after.Entries)
	}
}

func TestRunConvertErrors(t *testing.T) {
	input, ctx, c := testEnv(t)

	tests := []struct {
		name  string
		input string
		opts  convertOpts
		code  apperr.Code
	}{
		{"missing file", filepath.Join(filepath.Dir(input), "nope.json"), convertOpts{}, apperr.ErrCodeFileNotFound},
		{"bad paper", input, convertOpts{paper: "Tabloid"}, apperr.ErrCodeInvalidPaper},
		{"bad scale", input, convertOpts{scale: -1}, apperr.ErrCodeInvalidScale},
		{"bad format", input, convertOpts{formats: "gif"}, apperr.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.quiet = true
			_, err := c.runConvert(ctx, tt.input, tt.opts)
			if got := apperr.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestRunStats(t *testing.T) {
	input, ctx, c := testEnv(t)

	stats, err := c.runStats(ctx, input, pipeline.Options{PaperType: "B5"})
	if err != nil {
		t.Fatalf("runStats: %v", err)
	}
	// The "Box" rectangle becomes a placeholder text element.
	if stats.PaperSize != "B5" || stats.TotalElements != 2 || stats.TextElements != 2 || stats.ImageElements != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if out := statsTable(stats); !strings.Contains(out, "B5") {
		t.Errorf("statsTable missing paper:\n%s", out)
	}
}

func TestBuildReport(t *testing.T) {
	input, ctx, c := testEnv(t)

	rep, err := c.buildReport(ctx, input, inspectOpts{})
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	if rep.ID == "" || rep.Source != "card.json" || len(rep.Elements) != 2 {
		t.Errorf("report = %+v", rep)
	}
}

func TestRunTreeDOT(t *testing.T) {
	input, ctx, _ := testEnv(t)

	path, err := runTree(ctx, input, treeOpts{dot: true, detailed: true})
	if err != nil {
		t.Fatalf("runTree: %v", err)
	}
	if want := strings.TrimSuffix(input, ".json") + ".dot"; path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph") || !strings.Contains(string(data), "Title") {
		t.Errorf("unexpected DOT:\n%s", data)
	}
}

func TestTableHelpers(t *testing.T) {
	out := paperTable(edoc.Papers())
	for _, p := range edoc.PaperTypes() {
		if !strings.Contains(out, p) {
			t.Errorf("paperTable missing %s", p)
		}
	}
	if !strings.Contains(out, "(default)") {
		t.Error("paperTable should mark the default paper")
	}

	recs := []convert.Record{
		{Type: convert.RecordPathNotFound, Name: "missing", Path: "File/Root/missing", Reason: "no node"},
		{Type: convert.RecordPathBased, Name: "name", Path: "File/Root/name", Text: "Alice"},
	}
	out = recordTable(recs)
	for _, want := range []string{"Root/missing", "no node", "Alice"} {
		if !strings.Contains(out, want) {
			t.Errorf("recordTable missing %q:\n%s", want, out)
		}
	}

	out = elementTable([]report.Element{{Index: 0, Title: "Title", Type: "text",
		Page: report.Box{X: 1, Y: 2, Width: 3, Height: 4}}})
	if !strings.Contains(out, "1,2 3×4") {
		t.Errorf("elementTable:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"生徒名前です", 4, "生徒名…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("PAGEFIT_TEST_ADDR", "")
	if got := envOr("PAGEFIT_TEST_ADDR", ":8080"); got != ":8080" {
		t.Errorf("envOr fallback = %q", got)
	}
	t.Setenv("PAGEFIT_TEST_ADDR", ":9000")
	if got := envOr("PAGEFIT_TEST_ADDR", ":8080"); got != ":9000" {
		t.Errorf("envOr = %q", got)
	}
}

func TestRootCommand(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for _, name := range []string{"convert", "stats", "inspect", "tree", "rules", "papers", "reports", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	base := New(&bytes.Buffer{}, LogInfo).Logger

	if l, closer := requestLogger(base, ""); l != base || closer != nil {
		t.Error("empty path should reuse the base logger")
	}

	path := filepath.Join(t.TempDir(), "requests.log")
	l, closer := requestLogger(base, path)
	if closer == nil {
		t.Fatal("expected a closer for a log file")
	}
	l.Info("request", "status", 200)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"request"`) || !strings.Contains(string(data), `"status":200`) {
		t.Errorf("unexpected log file:\n%s", data)
	}
}
