package domain

// LoadState is the lifecycle state of a site.
type LoadState int

const (
	// StateUnloaded means no content is held.
	StateUnloaded LoadState = iota

	// StateLoading means a load is in flight.
	StateLoading

	// StateLoaded means the content graph is complete and validated.
	StateLoaded

	// StateUnloading means a reset is in flight.
	StateUnloading
)

// String returns the state name.
func (s LoadState) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateUnloading:
		return "unloading"
	default:
		return "unknown"
	}
}
