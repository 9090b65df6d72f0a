// Package viz renders random walks in the terminal with Bubble Tea.
//
//   - [Model]: animated view of one walk, driven by a [view.Session]
//   - [Form]: parameter entry screen that launches a [Model]
//   - [Canvas]: braille dot canvas used for the path and the histogram
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Start a new walk
//	R     - Reset to the origin
//	M     - Toggle trajectory/distribution
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
