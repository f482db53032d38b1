// Package raster is an offscreen image surface for headless runs.
//
// [Surface] keeps an RGBA backing store sized to viewport × device pixel
// ratio and draws in logical coordinates. [Recorder] samples rendered frames
// into an animated GIF.
package raster
