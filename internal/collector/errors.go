package collector

import "fmt"

// FetchError reports that the provider request failed. No database work was
// attempted.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch market data: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PersistError reports that schema creation, insert or commit failed. The
// transaction was rolled back.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist snapshot: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
