// Package gui runs the dot grid in a raylib window.
//
// The window is resizable and high-DPI aware: the scene draws into a render
// texture sized to the logical window times the monitor scale, which is then
// presented over the window each frame. Minimizing or hiding the window
// pauses the animation. The loop polls the resize debounce once per
// iteration instead of arming a timer.
package gui
