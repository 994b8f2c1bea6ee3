package catalog

import "fmt"

// NetworkError means the catalog text could not be retrieved at all
type NetworkError struct {
	Source string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching catalog from %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("fetching catalog from %s", e.Source)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new catalog network error
func NewNetworkError(source string, err error) *NetworkError {
	return &NetworkError{
		Source: source,
		Err:    err,
	}
}
