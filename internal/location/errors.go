package location

import "errors"

var (
	// ErrNetwork reports a transport failure or timeout talking to a provider
	ErrNetwork = errors.New("location provider unavailable")

	// ErrNotFound reports a valid parent with no children, e.g. a country without states
	ErrNotFound = errors.New("no locations found")

	// ErrGeocode reports that no coordinates could be resolved for an address
	ErrGeocode = errors.New("geocoding failed")

	// ErrInvariantViolation reports a selection that would orphan a child tier
	// or reference an option that is not loaded. It indicates a caller defect.
	ErrInvariantViolation = errors.New("selection invariant violated")

	// ErrInvalidCode reports a missing or malformed ISO code
	ErrInvalidCode = errors.New("invalid ISO code")

	// ErrInvalidCoordinates reports a latitude or longitude outside its range
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
