// Package viz draws a parallel-coordinates plot in the terminal and lets the
// user brush its axes with the mouse.
//
// The explorer is a Bubble Tea program:
//
//   - [Canvas]: Braille-based pixel canvas, one color per cell
//   - [Explorer]: the interactive model; drag vertically on an axis to brush it
//   - themes pair a UI palette with a sequential color ramp
//
// # Key Bindings
//
//	Tab/←→ - Select axis for the distribution panel
//	X      - Clear the selected axis' brush
//	C      - Clear every brush
//	T      - Cycle themes
//	S      - Save a snapshot of the visible records
//	E      - Export the plot as SVG
//	?      - Toggle full help
//	Q      - Quit
//
// Deferred redraws requested by the throttle arrive as tick messages, so
// every recompute runs on the program's own event loop. With Options.Watch
// the dataset file is watched and a rebuilt plot arrives the same way,
// keeping the active selections.
package viz
