package trace

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/dotgrid/internal/anim"
	"github.com/san-kum/dotgrid/internal/raster"
)

func baseOptions() Options {
	p := anim.DefaultParams()
	p.SeedProbability = 0.2
	return Options{
		Params:   p,
		Width:    100,
		Height:   60,
		DPR:      1,
		Frames:   30,
		Interval: 16 * time.Millisecond,
		Seed:     3,
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
	}{
		{"zero frames", func(o *Options) { o.Frames = 0 }},
		{"zero interval", func(o *Options) { o.Interval = 0 }},
		{"negative width", func(o *Options) { o.Width = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions()
			tt.mod(&opts)
			if _, err := Run(context.Background(), opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestRunSamples(t *testing.T) {
	res, err := Run(context.Background(), baseOptions())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(res.Samples) != 30 {
		t.Fatalf("expected 30 samples, got %d", len(res.Samples))
	}
	if res.Seeds != 1 {
		t.Errorf("expected one seed, got %d", res.Seeds)
	}
	if res.Elapsed != 480*time.Millisecond {
		t.Errorf("expected 480ms simulated, got %s", res.Elapsed)
	}

	for i, s := range res.Samples {
		if s.Frame != uint64(i+1) {
			t.Errorf("sample %d: expected frame %d, got %d", i, i+1, s.Frame)
		}
		if math.Abs(s.Delta-0.16) > 1e-9 {
			t.Errorf("sample %d: expected delta 0.16, got %v", i, s.Delta)
		}
		if s.Dots == 0 {
			t.Fatalf("sample %d: expected dots", i)
		}
		if s.MeanHue < anim.DefaultHueMin || s.MeanHue > anim.DefaultHueMax {
			t.Errorf("sample %d: mean hue %v outside band", i, s.MeanHue)
		}
	}
	if got := res.Samples[9].Time; math.Abs(got-0.16) > 1e-9 {
		t.Errorf("expected t=0.16s at frame 10, got %v", got)
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := Run(context.Background(), baseOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), baseOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Samples, b.Samples) {
		t.Error("expected identical samples for the same seed")
	}
}

func TestRunDrawsOnSurface(t *testing.T) {
	opts := baseOptions()
	surface := raster.NewSurface(opts.Width, opts.Height, opts.DPR)
	rec := raster.NewRecorder(surface, 10, 1, opts.Interval)
	opts.Surface = surface
	opts.Observers = append(opts.Observers, rec)

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if rec.Len() != 3 {
		t.Errorf("expected 3 captured frames, got %d", rec.Len())
	}

	img := surface.Image()
	lit := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !lit; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 0 || c.G > 0 || c.B > 0 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("expected dots drawn on the surface")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, baseOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSeriesAndPlot(t *testing.T) {
	res, err := Run(context.Background(), baseOptions())
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range Fields() {
		data, err := Series(res.Samples, f)
		if err != nil {
			t.Errorf("%s: %v", f, err)
		}
		if len(data) != len(res.Samples) {
			t.Errorf("%s: expected %d values, got %d", f, len(res.Samples), len(data))
		}
	}

	if _, err := Series(res.Samples, "energy"); err == nil {
		t.Error("expected error for unknown field")
	}

	chart, err := Plot(res.Samples, "hue", 40, 5)
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if !strings.Contains(chart, "mean hue") {
		t.Error("expected caption in chart")
	}

	if _, err := Plot(nil, "hue", 40, 5); err == nil {
		t.Error("expected error for empty samples")
	}
}
