package sim

import "fmt"

// ConfigurationError reports a Config that must not be simulated.
// It is always returned before any worker goroutine starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// ResourceError reports that sample storage for a run could not be allocated.
// Any partially built state for the run is discarded.
type ResourceError struct {
	What     string
	Capacity int
	Cause    error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("cannot allocate %s for %d entries: %v", e.What, e.Capacity, e.Cause)
}

func (e *ResourceError) Unwrap() error {
	return e.Cause
}
