package raster

import (
	"bytes"
	"errors"
	"image/gif"
	"testing"
	"time"

	"github.com/san-kum/dotgrid/internal/loop"
)

func TestRecorderEmpty(t *testing.T) {
	r := NewRecorder(NewSurface(10, 10, 1), 1, 1, time.Second/30)
	var buf bytes.Buffer
	if err := r.WriteGIF(&buf); !errors.Is(err, ErrEmptyRecording) {
		t.Errorf("expected ErrEmptyRecording, got %v", err)
	}
}

func TestRecorderSamplesEveryNth(t *testing.T) {
	s := NewSurface(10, 10, 1)
	r := NewRecorder(s, 2, 1, 20*time.Millisecond)

	st := &loop.AnimationState{}
	for i := 1; i <= 5; i++ {
		st.Frames = uint64(i)
		r.OnFrame(st)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 captures, got %d", r.Len())
	}

	var buf bytes.Buffer
	if err := r.WriteGIF(&buf); err != nil {
		t.Fatalf("WriteGIF: %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 2 {
		t.Errorf("expected 2 gif frames, got %d", len(g.Image))
	}
	if g.Delay[0] != 4 {
		t.Errorf("expected delay 4 (40ms), got %d", g.Delay[0])
	}
}

func TestRecorderScale(t *testing.T) {
	s := NewSurface(20, 10, 2)
	r := NewRecorder(s, 1, 0.25, time.Second/60)
	r.Capture()

	b := r.Frames()[0].Bounds()
	if b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("expected 10x5, got %v", b)
	}
}
