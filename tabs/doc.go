// Package tabs defines the tab lifecycle contract and the concrete tabs.
//
// Every tab follows the same sequence, enforced by Mount: derive the shared
// mutable container from the source frame, build the controls, wire control
// changes to the recompute callback, compose the layout. All interactivity
// flows through mutating the container in place; plots are built once and
// read it on every render.
package tabs
