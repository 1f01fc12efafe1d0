// Package viz is the terminal front-end: a gallery of simulations and a
// session view that renders the selected one in braille.
//
// # Key Bindings
//
//	Space   - Run/pause
//	R       - Reset state
//	Tab/J/K - Select parameter
//	Enter   - Edit the selected parameter, Enter again to commit
//	H/L     - Step the selected parameter down/up
//	D       - Restore default parameters
//	T       - Cycle color themes
//	Q/Esc   - Back to the gallery
package viz
