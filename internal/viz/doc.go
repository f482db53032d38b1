// Package viz runs the dot grid in a terminal.
//
// The package implements the animation as a Bubble Tea program:
//
//   - [Model]: drives a [loop.Lifecycle] from tick, resize and focus messages
//   - [Canvas]: color braille sub-pixel surface the scene draws on
//
// Frame requests become tea.Tick messages carrying their frame ID, and the
// resize debounce becomes a tea.Tick carrying its generation, so stale
// timers are dropped without any goroutine of our own. Losing terminal focus
// counts as the page being hidden.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Re-seed the grid
//	P     - Next preset
//	S     - Toggle the status bar
//	Q     - Quit
package viz
