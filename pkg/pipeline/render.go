package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/treelayout/pkg/graph"
	"github.com/matzehuels/treelayout/pkg/render"
	"github.com/matzehuels/treelayout/pkg/render/nodelink"
	"github.com/matzehuels/treelayout/pkg/render/svg"
	"github.com/matzehuels/treelayout/pkg/render/textmap"
)

// RenderFromLayout generates output artifacts in the requested formats.
// opts must have passed ValidateForRender.
//
// SVG is drawn at most once and shared by the svg, png and pdf outputs.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	nlOpts := nodelink.Options{Detailed: opts.Detailed, Engine: opts.Engine}

	var svgData []byte
	drawSVG := func() ([]byte, error) {
		if svgData != nil {
			return svgData, nil
		}
		var err error
		if opts.IsGraphviz() {
			svgData, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nlOpts), opts.Engine)
		} else {
			svgData, err = svg.Render(l, svgOptions(opts)...)
		}
		return svgData, err
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)

		switch format {
		case FormatSVG:
			data, err = drawSVG()
		case FormatPNG:
			if data, err = drawSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = drawSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, nlOpts))
		case FormatText:
			data = []byte(textmap.Render(l, textmap.Options{Cols: DefaultTextCols}) + "\n")
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func svgOptions(opts Options) []svg.Option {
	var out []svg.Option
	if opts.Links != "" {
		out = append(out, svg.WithLinks(svg.LinkStyle(opts.Links)))
	}
	return out
}
