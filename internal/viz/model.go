package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dotgrid/internal/anim"
	"github.com/san-kum/dotgrid/internal/loop"
)

const (
	DefaultFPS        = 60
	DefaultPixelScale = 2.5
)

type Options struct {
	Params     anim.Params
	PresetName string
	Presets    []anim.Preset
	Debounce   time.Duration
	FPS        int
	// PixelScale is the logical size of one braille sub-pixel.
	PixelScale float64
	Seed       int64
	Clock      anim.Clock
	Logger     *log.Logger
}

type frameMsg struct{ id loop.FrameID }

type debounceMsg struct{ gen uint64 }

// Model adapts the lifecycle to Bubble Tea's message loop.
type Model struct {
	opts       Options
	lc         *loop.Lifecycle
	queue      *loop.Queue
	canvas     *Canvas
	armed      loop.FrameID
	cols, rows int
	showStatus bool
	preset     int
}

func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.PixelScale <= 0 {
		opts.PixelScale = DefaultPixelScale
	}
	if opts.Debounce <= 0 {
		opts.Debounce = loop.DefaultDebounce
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	canvas := NewCanvas(0, 0, 1/opts.PixelScale)
	queue := loop.NewQueue()
	lc := loop.New(loop.Options{
		Params:   opts.Params,
		Debounce: opts.Debounce,
		Clock:    opts.Clock,
		Rand:     anim.NewRand(opts.Seed),
		Frames:   queue,
		Surface:  canvas,
		Logger:   opts.Logger,
	})

	preset := -1
	for i, p := range opts.Presets {
		if p.Name == opts.PresetName {
			preset = i
		}
	}

	return Model{
		opts:       opts,
		lc:         lc,
		queue:      queue,
		canvas:     canvas,
		showStatus: true,
		preset:     preset,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("dotgrid")
}

// Update routes terminal events into the lifecycle and arms a tick for
// whatever frame the lifecycle requested.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.lc.Stop()
			return m, tea.Quit
		case " ":
			m.lc.SetVisible(m.lc.Status() != loop.Running)
		case "r":
			m.lc.Reseed()
		case "p":
			m.nextPreset()
		case "s":
			m.showStatus = !m.showStatus
			cmds = append(cmds, m.resize())
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		cmds = append(cmds, m.resize())
	case tea.FocusMsg:
		m.lc.SetVisible(true)
	case tea.BlurMsg:
		m.lc.SetVisible(false)
	case frameMsg:
		if msg.id == m.armed {
			m.armed = 0
		}
		m.queue.Fire(msg.id)
	case debounceMsg:
		m.lc.FireDebounce(msg.gen)
	}

	cmds = append(cmds, m.schedule())
	return m, tea.Batch(cmds...)
}

// resize opens the lifecycle on the first size and debounces later ones.
func (m *Model) resize() tea.Cmd {
	vp := m.viewport()
	if m.lc.State().Seeds == 0 {
		m.lc.Open(vp)
		return nil
	}
	gen := m.lc.Resize(vp)
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg { return debounceMsg{gen} })
}

// schedule arms one tick for the pending frame unless it is already armed.
func (m *Model) schedule() tea.Cmd {
	id, ok := m.queue.Pending()
	if !ok || id == m.armed {
		return nil
	}
	m.armed = id
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(time.Time) tea.Msg { return frameMsg{id} })
}

func (m *Model) nextPreset() {
	if len(m.opts.Presets) == 0 {
		return
	}
	m.preset = (m.preset + 1) % len(m.opts.Presets)
	p := m.opts.Presets[m.preset]
	m.opts.PresetName = p.Name
	m.lc.SetParams(p.Params)
}

// viewport maps the terminal area above the status bar to logical pixels.
func (m *Model) viewport() loop.Viewport {
	rows := m.rows
	if m.showStatus {
		rows--
	}
	rows = max(rows, 0)
	cols := max(m.cols, 0)
	return loop.Viewport{
		Width:  float64(cols*2) * m.opts.PixelScale,
		Height: float64(rows*4) * m.opts.PixelScale,
		DPR:    1 / m.opts.PixelScale,
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.canvas.String())
	if m.showStatus {
		b.WriteString(m.statusBar())
	}
	return b.String()
}

func (m Model) statusBar() string {
	st := m.lc.State()
	stats := st.Scene.Stats()
	name := m.opts.PresetName
	if name == "" {
		name = "custom"
	}
	parts := []string{
		statusLabel(st.Status == loop.Running),
		metric("dots", fmt.Sprintf("%d", stats.Dots)),
		metric("hue", fmt.Sprintf("%.1f", stats.MeanHue)),
		metric("frame", fmt.Sprintf("%d", st.Frames)),
		metric("preset", name),
		KeyHint.Render("SP:Pause R:Reseed P:Preset S:Status Q:Quit"),
	}
	return statusBarStyle.Width(m.cols).MaxWidth(m.cols).Render(strings.Join(parts, "  "))
}

// Lifecycle exposes the driven state machine.
func (m Model) Lifecycle() *loop.Lifecycle { return m.lc }

func (m Model) Canvas() *Canvas { return m.canvas }

// Run starts the program on the alternate screen with focus reporting.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
