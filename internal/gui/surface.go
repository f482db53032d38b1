package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface draws into a persistent render texture so the fade overlay
// accumulates across frames. Draw calls must happen inside texture mode.
type Surface struct {
	target rl.RenderTexture2D
	loaded bool
	dpr    float32
	width  float32
	height float32
}

func NewSurface() *Surface {
	return &Surface{dpr: 1}
}

// Resize reallocates the texture at width*dpr x height*dpr and clears it.
// The scale is replaced, never accumulated.
func (s *Surface) Resize(width, height, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	s.Unload()
	s.dpr = float32(dpr)
	s.width, s.height = float32(math.Max(width, 0)), float32(math.Max(height, 0))

	bw := int32(math.Max(1, math.Round(width*dpr)))
	bh := int32(math.Max(1, math.Round(height*dpr)))
	s.target = rl.LoadRenderTexture(bw, bh)
	rl.SetTextureFilter(s.target.Texture, rl.FilterBilinear)
	s.loaded = true

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	rl.DrawRectangleRec(rl.NewRectangle(
		float32(x)*s.dpr, float32(y)*s.dpr, float32(w)*s.dpr, float32(h)*s.dpr,
	), toRL(c))
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(cx)*s.dpr, float32(cy)*s.dpr), float32(r)*s.dpr, toRL(c))
}

func (s *Surface) Target() rl.RenderTexture2D { return s.target }

// Present draws the texture over the window's logical area. Render textures
// are stored bottom-up, so the source rectangle is flipped.
func (s *Surface) Present(width, height float32) {
	if !s.loaded {
		return
	}
	tex := s.target.Texture
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, width, height)
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (s *Surface) Unload() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}

func toRL(c color.Color) rl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}
