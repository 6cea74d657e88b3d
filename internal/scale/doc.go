// Package scale maps data values to plot pixels for a parallel-coordinates plot.
//
// Every dimension owns one [Linear] scale whose range is the shared vertical
// pixel span of the plot, inverted so that the smallest domain value sits at
// the bottom (pixel = height) and the largest at the top (pixel = 0):
//
//   - [Linear]: value <-> pixel transform with a fixed domain and tick set
//   - [Point]: horizontal slot of each dimension's axis
//   - [Registry]: dimension name -> [Linear], read-only after [Build]
//
// Scales are computed once at load time and never mutated afterwards.
package scale
