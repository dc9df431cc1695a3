// Package mode defines the Mode interface and Manager that coordinate
// modal editor state (normal/insert/visual/command and friends).
//
// This package only carries the transition machinery — Enter/Exit
// lifecycle, a mode stack for push/pop, and change callbacks. It does
// not implement any concrete mode's command table; callers register
// whatever modes they need (see app.placeholderMode for a minimal
// example) and drive key dispatch through HandleUnmapped.
package mode
