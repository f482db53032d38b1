// Package trace runs the animation headlessly on a manual clock and samples
// per-frame scene statistics.
//
// The same driver backs recordings: pass a raster surface and a recorder as
// observers and every frame is rendered at a fixed interval, independent of
// wall-clock time.
package trace
