// Package core is the application shell: the Bubble Tea model, message
// routing, the scope-aware key registry and the chrome (header tab bar,
// status bar, footer hints).
//
// Allowed here:
// - app-level routing, tab switching, status handling
//
// Not allowed here:
// - tab lifecycle policy (tabs) or drawing primitives (widgets)
package core
