package main

import (
	"github.com/gogpu/gg"

	"github.com/Faultbox/tubegen/internal/config"
	"github.com/Faultbox/tubegen/internal/preview"
)

// previewOptions maps the preview and tube sections of cfg onto render
// options.
func previewOptions(cfg *config.Config) preview.Options {
	opts := preview.DefaultOptions()
	opts.Width = cfg.Preview.Width
	opts.Height = cfg.Preview.Height
	opts.Plane = preview.Plane(cfg.Preview.Plane)
	opts.Padding = cfg.Preview.Padding
	opts.Supersample = cfg.Preview.Supersample
	opts.LineWidth = float64(cfg.Tube.LineWidth)
	opts.Color = rgba(cfg.Tube.Color)
	opts.FluxColor = rgba(cfg.Flux.Color)
	return opts
}

func rgba(c [4]float32) gg.RGBA {
	return gg.RGBA2(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
}
