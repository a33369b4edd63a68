package resolver

import (
	"errors"
	"fmt"
)

// GeometryFormatError reports a feature whose coordinate payload has an
// unrecognized shape. It aborts the whole resolution: timeline accumulation
// is order-dependent and cannot safely skip a feature.
type GeometryFormatError struct {
	Raw interface{}
}

func (e *GeometryFormatError) Error() string {
	return fmt.Sprintf("unrecognized coordinate shape: %v", e.Raw)
}

// ErrEmptyTimeline signals a degenerate route: no usable point samples, so
// no slot location can be computed.
var ErrEmptyTimeline = errors.New("route produced no usable timeline points")
