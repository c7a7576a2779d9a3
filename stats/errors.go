package stats

import "errors"

// Sentinel errors returned by the statistical functions. All failures are
// recoverable: callers check them with errors.Is and decide how to re-prompt
// for parameters.
var (
	// ErrInvalidLag indicates a requested lag count outside the valid range
	// for the given series length.
	ErrInvalidLag = errors.New("lag out of valid range")

	// ErrInsufficientData indicates the series is too short for the
	// requested statistical test.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateSeries indicates a zero-variance series or one containing
	// non-finite values. Returned instead of letting NaNs propagate into
	// downstream classification.
	ErrDegenerateSeries = errors.New("degenerate series")
)
