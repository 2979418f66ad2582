package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagefit/pkg/cache"
	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/edoc"
	"github.com/matzehuels/pagefit/pkg/observability"
	"github.com/matzehuels/pagefit/pkg/report"
)

// Cache key types reported to observability hooks.
const (
	keyTypeConversion = "conversion"
	keyTypeArtifact   = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → convert → render pipeline on the
// design JSON in data.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	doc, err := design.Decode(data)
	if err != nil {
		return nil, err
	}
	result := &Result{
		DesignHash: cache.Hash(data),
		Artifacts:  make(map[string][]byte),
	}
	result.Stats.Nodes = doc.Count()

	// Stage 1: Convert
	convertStart := time.Now()
	res, hit, err := r.ConvertWithCacheInfo(ctx, doc, result.DesignHash, opts)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	result.Conversion = res
	result.Stats.ConvertTime = time.Since(convertStart)
	result.Stats.Elements = len(res.Elements())
	result.CacheInfo.ConvertHit = hit
	result.Report = report.New(res, opts.Source)

	r.Logger.Info("converted design",
		"mode", res.Mode,
		"paper", res.Paper.Type,
		"elements", result.Stats.Elements,
		"cached", hit,
		"duration", result.Stats.ConvertTime)
	for _, rec := range res.Records {
		if rec.Type == convert.RecordPathNotFound {
			r.Logger.Warn("path not found", "path", rec.Path)
		}
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, doc, result.Report, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ConvertWithCacheInfo converts doc with caching and returns cache hit
// info. designHash is the content hash of the design input.
func (r *Runner) ConvertWithCacheInfo(ctx context.Context, doc *design.Document, designHash string, opts Options) (*convert.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForConvert(); err != nil {
		return nil, false, err
	}

	rulesHash, err := opts.RulesHash()
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.ConversionKey(designHash, cache.ConversionKeyOpts{
		PaperType:   opts.PaperType,
		ScaleFactor: opts.ScaleFactor,
		RulesHash:   rulesHash,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached convert.Result
			if err := json.Unmarshal(data, &cached); err == nil && cached.Document != nil {
				observability.Cache().OnCacheHit(ctx, keyTypeConversion)
				return &cached, true, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "key", cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeConversion)
	}

	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, opts.PaperType, doc.Count())
	start := time.Now()
	res, err := convert.Convert(doc, opts.ConvertOptions())
	if err != nil {
		hooks.OnConvertComplete(ctx, "", 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnConvertComplete(ctx, string(res.Mode), len(res.Elements()), time.Since(start), nil)

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLConversion); err != nil {
			r.Logger.Debug("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeConversion, len(data))
		}
	}

	return res, false, nil
}

// Convert is a convenience wrapper that calls ConvertWithCacheInfo and discards the cache hit info.
func (r *Runner) Convert(ctx context.Context, doc *design.Document, designHash string, opts Options) (*convert.Result, error) {
	res, _, err := r.ConvertWithCacheInfo(ctx, doc, designHash, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The hit is true only when every cacheable format came from the
// cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *convert.Result, doc *design.Document, rep *report.Report, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// The DOT and tree formats depend on the design, the rest on the result.
	docData, err := edoc.Marshal(res.Document)
	if err != nil {
		return nil, false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	treeData, err := json.Marshal(&doc.Node)
	if err != nil {
		return nil, false, fmt.Errorf("serialize design for cache key: %w", err)
	}
	baseHash := cache.Hash(docData, treeData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !Cacheable(format) {
			missing = append(missing, format)
			continue
		}
		if !opts.Refresh {
			cacheKey := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}
		missing = append(missing, format)
	}

	allCached := true
	for _, f := range missing {
		if Cacheable(f) {
			allCached = false
		}
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, res, doc, rep, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !Cacheable(format) {
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *convert.Result, doc *design.Document, rep *report.Report, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, doc, rep, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
