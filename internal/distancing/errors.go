package distancing

import "errors"

var (
	// ErrEmptyInput is returned when an estimator receives no boxes.
	// Callers should treat it as "no detections" rather than a failure.
	ErrEmptyInput = errors.New("distancing: no boxes to compare")

	// ErrNoDistanceData is returned when the violation counter is given no matrix.
	ErrNoDistanceData = errors.New("distancing: no distance matrix provided")

	// ErrDegenerateInput is returned when box geometry would force a division by
	// zero or push a distance past the float64 range.
	ErrDegenerateInput = errors.New("distancing: degenerate box geometry")

	// ErrInvalidBox is returned for boxes with NaN or infinite coordinates, or
	// whose size overflows float64.
	ErrInvalidBox = errors.New("distancing: invalid bounding box")

	// ErrInvalidInput is returned when a box list document has the wrong shape.
	ErrInvalidInput = errors.New("distancing: malformed box list")

	// ErrInvalidOptions is returned when the reference height or threshold is unusable.
	ErrInvalidOptions = errors.New("distancing: invalid options")

	// ErrNotSquare is returned when a supplied distance matrix is not N×N.
	ErrNotSquare = errors.New("distancing: distance matrix is not square")

	// ErrUnknownStrategy is returned for an unrecognized estimator name.
	ErrUnknownStrategy = errors.New("distancing: unknown strategy")
)
