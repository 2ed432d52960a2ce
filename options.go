package voronoi

// OptionFunc configures optional parameters to Compute, following the same
// functional-options shape used throughout the geom2d ecosystem this
// package builds on.
type OptionFunc func(*Options)

// Options holds Compute's tunable parameters.
type Options struct {
	// Epsilon is reserved for a future override of the engine's geometric
	// tolerance (see geometry.Epsilon). It is currently recorded but not
	// yet consulted by any comparison in the engine; see DESIGN.md.
	Epsilon float64
}

// WithEpsilon records a candidate override of the geometric tolerance
// Compute uses. A negative value is treated as "no override" (the default
// tolerance applies). See Options.Epsilon.
func WithEpsilon(epsilon float64) OptionFunc {
	return func(o *Options) {
		if epsilon < 0 {
			return
		}
		o.Epsilon = epsilon
	}
}

// ApplyOptions folds opts over defaults in order, returning the result.
func ApplyOptions(defaults Options, opts ...OptionFunc) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}
