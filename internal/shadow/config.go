package shadow

// Host configuration defaults. These mirror the arena of the interactive
// demo: a 40x30 grid of 16px cells with a light radius of 1000px.
const (
	DefaultCols      = 40
	DefaultRows      = 30
	DefaultBlockSize = 16.0
	DefaultRadius    = 1000.0

	// DefaultEpsilon is the angular offset (radians) of the two bracketing
	// rays cast either side of every edge endpoint.
	DefaultEpsilon = 0.0001

	// DedupeTolerance is the per-axis distance under which two consecutive
	// polygon points are considered the same vertex.
	DedupeTolerance = 0.1

	// parallelEpsilon guards the ray/segment solve against near-zero
	// denominators (parallel or zero-length pairs).
	parallelEpsilon = 1e-9
)
