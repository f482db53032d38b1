package trace

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

var fields = []string{"dots", "hue", "saturation", "luminance", "displacement", "delta"}

// Fields lists the series names accepted by Series.
func Fields() []string {
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Series extracts one column from samples.
func Series(samples []Sample, field string) ([]float64, error) {
	get, err := accessor(field)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out, nil
}

func accessor(field string) (func(Sample) float64, error) {
	switch field {
	case "dots":
		return func(s Sample) float64 { return float64(s.Dots) }, nil
	case "hue":
		return func(s Sample) float64 { return s.MeanHue }, nil
	case "saturation":
		return func(s Sample) float64 { return s.MeanSaturation }, nil
	case "luminance":
		return func(s Sample) float64 { return s.MeanLuminance }, nil
	case "displacement":
		return func(s Sample) float64 { return s.MeanDisplacement }, nil
	case "delta":
		return func(s Sample) float64 { return s.Delta }, nil
	}
	return nil, fmt.Errorf("unknown field %q (want one of %s)", field, strings.Join(fields, ", "))
}

// Plot renders a field as an ASCII chart.
func Plot(samples []Sample, field string, width, height int) (string, error) {
	data, err := Series(samples, field)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no samples to plot")
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption(field)),
	), nil
}

func caption(field string) string {
	switch field {
	case "dots":
		return "dot count"
	case "hue":
		return "mean hue (deg)"
	case "saturation":
		return "mean saturation (%)"
	case "luminance":
		return "mean luminance (%)"
	case "displacement":
		return "mean displacement from anchor (px)"
	case "delta":
		return "frame delta"
	}
	return field
}
