package gui

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/dotgrid/internal/anim"
	"github.com/san-kum/dotgrid/internal/loop"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
)

type Options struct {
	Params     anim.Params
	PresetName string
	Presets    []anim.Preset
	Debounce   time.Duration
	FPS        int
	Seed       int64
	// DevicePixelRatio overrides the monitor scale when positive.
	DevicePixelRatio float64
	Width, Height    int
	Logger           *log.Logger
}

// App owns the raylib window and pumps the lifecycle once per loop iteration.
type App struct {
	opts    Options
	lc      *loop.Lifecycle
	queue   *loop.Queue
	surface *Surface
	hidden  bool
	showHUD bool
	preset  int
}

// initWindow opens a resizable high-DPI window and disables the default exit key.
func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagVsyncHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "dotgrid")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

func NewApp(opts Options) *App {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	surface := NewSurface()
	queue := loop.NewQueue()
	app := &App{
		opts:    opts,
		queue:   queue,
		surface: surface,
		showHUD: true,
		preset:  -1,
	}
	app.lc = loop.New(loop.Options{
		Params:   opts.Params,
		Debounce: opts.Debounce,
		Rand:     anim.NewRand(opts.Seed),
		Frames:   queue,
		Surface:  surface,
		Logger:   opts.Logger,
	})
	for i, p := range opts.Presets {
		if p.Name == opts.PresetName {
			app.preset = i
		}
	}
	return app
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: window failed to open")
	}

	app := NewApp(opts)
	defer app.surface.Unload()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	a.lc.Open(a.viewport())
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Step()
		a.Draw()
	}
}

// viewport reads the window's logical size and pixel ratio.
func (a *App) viewport() loop.Viewport {
	dpr := a.opts.DevicePixelRatio
	if dpr <= 0 {
		dpr = float64(rl.GetWindowScaleDPI().X)
	}
	if dpr <= 0 {
		dpr = 1
	}
	return loop.Viewport{
		Width:  float64(rl.GetScreenWidth()),
		Height: float64(rl.GetScreenHeight()),
		DPR:    dpr,
	}
}

// Update handles input and window events. It reports whether to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.lc.SetVisible(a.lc.Status() != loop.Running)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.lc.Reseed()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.nextPreset()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}

	if rl.IsWindowResized() {
		a.lc.Resize(a.viewport())
	}

	hidden := rl.IsWindowMinimized() || rl.IsWindowHidden()
	if hidden != a.hidden {
		a.hidden = hidden
		a.lc.SetVisible(!hidden)
	}

	a.lc.PollDebounce()
	return false
}

// Step runs the pending frame callback, if any, with the render texture bound.
func (a *App) Step() {
	id, ok := a.queue.Pending()
	if !ok {
		return
	}
	rl.BeginTextureMode(a.surface.Target())
	a.queue.Fire(id)
	rl.EndTextureMode()
}

func (a *App) nextPreset() {
	if len(a.opts.Presets) == 0 {
		return
	}
	a.preset = (a.preset + 1) % len(a.opts.Presets)
	p := a.opts.Presets[a.preset]
	a.opts.PresetName = p.Name
	a.lc.SetParams(p.Params)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.surface.Present(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	if a.showHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	st := a.lc.State()
	rl.DrawText("dotgrid", 30, 30, 24, ColSelect)

	name := a.opts.PresetName
	if name == "" {
		name = "custom"
	}
	rl.DrawText(fmt.Sprintf(":: %s  %d dots", name, st.Scene.Len()), 140, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if st.Status != loop.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	rl.DrawText(status, int32(w-130), 30, 16, col)

	rl.DrawText("[SPACE] PAUSE  [R] RESEED  [P] PRESET  [H] HUD  [Q] QUIT", int32(w-560), int32(h-40), 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, int32(h-40), 14, ColTextDim)
}
