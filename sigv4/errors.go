package sigv4

import "errors"

// A closed error enumeration. Every exported entry point returns exactly
// one of these (wrapped with context via fmt.Errorf("...: %w", ...)) or
// nil.
var (
	// ErrInvalidParameter is returned when a required input is missing
	// or zero-length where a value is required.
	ErrInvalidParameter = errors.New("sigv4: invalid parameter")

	// ErrInsufficientMemory is returned when the arena or an output
	// buffer would overflow; the caller should enlarge Config.ProcessingLen.
	ErrInsufficientMemory = errors.New("sigv4: insufficient memory")

	// ErrISOFormatting is returned for a date parse or calendar
	// validation failure.
	ErrISOFormatting = errors.New("sigv4: invalid date format")

	// ErrMaxQueryPairCountExceeded is returned when the query string
	// has more parameters than Config.MaxQueryPairs.
	ErrMaxQueryPairCountExceeded = errors.New("sigv4: too many query parameters")

	// ErrMaxHeaderPairCountExceeded is returned when the headers have
	// more entries than Config.MaxHeaderPairs.
	ErrMaxHeaderPairCountExceeded = errors.New("sigv4: too many headers")

	// ErrHashError names a failure reported by the crypto interface. Sign
	// and SignQuery do not return it: they do not check the error results
	// of hash writes.
	ErrHashError = errors.New("sigv4: hash operation failed")
)
