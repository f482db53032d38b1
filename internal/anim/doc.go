// Package anim implements the dot-grid animation core.
//
// The package owns the per-object update rule and nothing else:
//
//   - [Timer]: frame-rate independent delta between ticks
//   - [Dot]: one anchored dot with a position oscillator and a color oscillator
//   - [Scene]: sparse grid seeding, per-frame update and fade-then-draw render
//   - [Surface]: the drawing operations a renderer must provide
//
// # Example
//
//	p := anim.DefaultParams()
//	scene := anim.NewScene(p, anim.NewRand(42))
//	scene.Seed(800, 600, p.CellSize)
//	timer := anim.NewTimer(anim.SystemClock{}, p.DeltaScale)
//	scene.Update(timer.Tick())
//	scene.Render(surface)
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. A scene and its dots are driven
// from a single frame callback chain.
package anim
