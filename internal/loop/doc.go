// Package loop drives the animation: a single cooperative frame chain,
// visibility pauses and debounced re-seeding on resize.
//
//   - [Lifecycle]: Stopped/Running state machine over an [AnimationState]
//   - [Queue]: request/cancel next-frame primitive pumped by a driver
//   - [Debouncer]: cancellable delayed task collapsing resize bursts
//
// Drivers (terminal, window, headless) own the event loop and call into the
// Lifecycle from one goroutine. Nothing in this package starts goroutines.
package loop
