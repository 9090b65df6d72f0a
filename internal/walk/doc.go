// Package walk generates two-dimensional random walks.
//
// The package defines the walk primitives:
//
//   - [Params]: step count, maximum step length and seed
//   - [Point]: a visited position
//   - [State]: the ordered sequence of points visited so far
//   - [Generator]: lazy, finite, single-pass step source
//
// Every step draws an angle uniformly from [0, 2π) and a length uniformly
// from [0, MaxStepLength], then moves from the last point by that polar
// displacement.
//
// # Example
//
//	gen, err := walk.NewGenerator(walk.Params{Steps: 100, MaxStepLength: 1})
//	st := walk.NewState()
//	for p := range gen.Points() {
//		st.Append(p)
//	}
//
// # Thread Safety
//
// Generator and State are NOT thread-safe. Each run owns its own pair.
package walk
