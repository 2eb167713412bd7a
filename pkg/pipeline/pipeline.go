// Package pipeline provides the layout and render pipeline for treelayout.
//
// This package turns a raw tree into a [graph.Layout] and the layout into
// artifacts. The CLI and the HTTP API both go through it, so option defaults,
// validation and caching behave the same way everywhere.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: position the tree with one of the four algorithms
//  2. Render: produce outputs (SVG, PNG, PDF, DOT, JSON, text)
//
// Each stage can be run on its own; a layout read back from layout.json can
// be rendered without recomputing it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger)
//	opts := pipeline.Options{
//	    Algorithm: "mindmap",
//	    Formats:   []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, tree, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.ComputeLayout(ctx, tree, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treelayout/pkg/cache"
	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/graph"
	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/layout/indented"
	"github.com/matzehuels/treelayout/pkg/layout/orient"
	"github.com/matzehuels/treelayout/pkg/render/nodelink"
	"github.com/matzehuels/treelayout/pkg/render/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultAlgorithm is used when no algorithm is given.
	DefaultAlgorithm = layout.AlgCompactBox

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultRenderer draws SVG natively.
	DefaultRenderer = RendererNative

	// DefaultTextCols is the width of the text preview.
	DefaultTextCols = 100
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatText = "txt"
)

// Renderers produce the SVG that PNG and PDF are converted from.
const (
	RendererNative   = "native"
	RendererGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatText: true,
}

// ValidRenderers is the set of supported SVG renderers.
var ValidRenderers = map[string]bool{
	RendererNative:   true,
	RendererGraphviz: true,
}

var (
	formatNames   = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatText}
	rendererNames = []string{RendererNative, RendererGraphviz}
	alignNames    = []string{"top", string(indented.AlignCenter)}
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests and TOML for the
// config file. Zero values mean defaults.
type Options struct {
	// Layout options
	Algorithm        string  `json:"algorithm,omitempty" toml:"algorithm"`
	Direction        string  `json:"direction,omitempty" toml:"direction"`
	Radial           bool    `json:"radial,omitempty" toml:"radial"`
	FreeRoot         bool    `json:"free_root,omitempty" toml:"free_root"`
	Indent           float64 `json:"indent,omitempty" toml:"indent"`                         // indented only
	InlineFirstChild bool    `json:"inline_first_child,omitempty" toml:"inline_first_child"` // indented only
	Align            string  `json:"align,omitempty" toml:"align"`                           // indented only: "top" or "center"
	NodeSep          float64 `json:"node_sep,omitempty" toml:"node_sep"`                     // dendrogram only
	RankSep          float64 `json:"rank_sep,omitempty" toml:"rank_sep"`                     // dendrogram only
	SubTreeSep       float64 `json:"subtree_sep,omitempty" toml:"subtree_sep"`               // dendrogram only
	MindmapSep       float64 `json:"mindmap_sep,omitempty" toml:"mindmap_sep"`               // mindmap only

	// Node geometry used when a node does not carry its own.
	NodeWidth  float64 `json:"node_width,omitempty" toml:"node_width"`
	NodeHeight float64 `json:"node_height,omitempty" toml:"node_height"`
	HGap       float64 `json:"hgap,omitempty" toml:"hgap"`
	VGap       float64 `json:"vgap,omitempty" toml:"vgap"`

	// Render options
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	Renderer string   `json:"renderer,omitempty" toml:"renderer"`
	Engine   string   `json:"engine,omitempty" toml:"engine"` // graphviz renderer only
	Links    string   `json:"links,omitempty" toml:"links"`   // native renderer only
	Scale    float64  `json:"scale,omitempty" toml:"scale"`
	Detailed bool     `json:"detailed,omitempty" toml:"detailed"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// TreeHash is the content hash of the input tree.
	TreeHash string

	// Layout is the positioned tree.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	MaxDepth   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", format, formatNames)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRenderer checks that a renderer is valid.
func ValidateRenderer(renderer string) error {
	if !ValidRenderers[renderer] {
		return errors.ValidateChoice(errors.ErrCodeInvalidInput, "renderer", renderer, rendererNames)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm.String()
	}
	if o.Direction == "" {
		if alg, err := layout.ParseAlgorithm(o.Algorithm); err == nil {
			o.Direction = alg.DefaultDirection().String()
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Algorithm aliases and direction case are normalized.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()

	alg, err := layout.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return err
	}
	o.Algorithm = alg.String()

	dir, err := orient.ParseDirection(o.Direction)
	if err != nil {
		return err
	}
	if err := orient.Validate(dir, alg.Directions()); err != nil {
		return err
	}
	o.Direction = dir.String()

	if o.Radial && !alg.SupportsRadial() {
		return errors.New(errors.ErrCodeInvalidInput, "%s layouts cannot be radial", alg)
	}
	if o.Align != "" {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidInput, "align", o.Align, alignNames); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"indent", o.Indent}, {"node_sep", o.NodeSep}, {"rank_sep", o.RankSep},
		{"subtree_sep", o.SubTreeSep}, {"mindmap_sep", o.MindmapSep},
		{"node_width", o.NodeWidth}, {"node_height", o.NodeHeight}, {"hgap", o.HGap}, {"vgap", o.VGap},
	} {
		if f.v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must not be negative: %g", f.name, f.v)
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	if err := nodelink.ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Links != "" {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidInput, "links", o.Links, svg.ValidLinkStyles); err != nil {
			return err
		}
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive: %g", o.Scale)
	}
	return nil
}

// IsGraphviz returns true if SVG comes from Graphviz.
func (o *Options) IsGraphviz() bool {
	return o.Renderer == RendererGraphviz
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:        o.Algorithm,
		Direction:        o.Direction,
		Radial:           o.Radial,
		FreeRoot:         o.FreeRoot,
		Indent:           o.Indent,
		InlineFirstChild: o.InlineFirstChild,
		Align:            o.Align,
		NodeSep:          o.NodeSep,
		RankSep:          o.RankSep,
		SubTreeSep:       o.SubTreeSep,
		MindmapSep:       o.MindmapSep,
		NodeWidth:        o.NodeWidth,
		NodeHeight:       o.NodeHeight,
		HGap:             o.HGap,
		VGap:             o.VGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		opts.Renderer = o.Renderer
		if o.IsGraphviz() {
			opts.Engine = o.Engine
			opts.Detailed = o.Detailed
		} else {
			opts.Links = o.Links
		}
		if format == FormatPNG {
			opts.Scale = o.Scale
		}
	case FormatDOT:
		opts.Detailed = o.Detailed
	}
	return opts
}
