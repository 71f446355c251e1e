// Package viz provides a terminal monitor for running gait models.
//
// The monitor steps a [sim.Session] on a timer and shows:
//
//   - [Canvas]: a Braille canvas with the skeleton, straps and joint anchors
//   - a trace of the selected output channel
//   - the current value of every channel
//
// # Key Bindings
//
//	Space     - Pause/Resume
//	S         - Single step while paused
//	R         - Rebuild the model and restart
//	Tab       - Next channel (Shift+Tab previous)
//	Up/Down   - Double/halve steps per frame
//	X/Y       - Rotate view (Shift reverses)
//	+/-       - Zoom
//	T         - Cycle color themes
//	?         - Show help overlay
//
// [Picker] lists named models and opens a monitor for the chosen one.
package viz
