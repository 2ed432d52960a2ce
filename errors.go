package voronoi

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned when bbox fails the xl < xr, yt < yb
// contract.
var ErrInvalidBounds = errors.New("voronoi: invalid bounding box")

// ErrNonFiniteSite is returned when a site's coordinates are not finite
// (NaN or +/-Inf).
var ErrNonFiniteSite = errors.New("voronoi: non-finite site coordinate")

func wrapBounds(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidBounds, reason)
}

func wrapSite(index int, reason string) error {
	return fmt.Errorf("%w: site %d %s", ErrNonFiniteSite, index, reason)
}
