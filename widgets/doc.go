// Package widgets contains the drawing primitives: the Widget contract,
// ratio-based stacks, bordered panes, the interactive controls (selector,
// checkbox group) and the braille line chart bound to a frame.Container.
//
// Allowed here:
// - rendering, per-widget key handling, widget-local state
//
// Not allowed here:
// - tab lifecycle or recompute policy (tabs) and app routing (core)
package widgets
