package domain

import "fmt"

// FetchError reports a scraping failure. StatusCode is zero for transport or parse errors.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s failed", e.URL)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError rejects a submission before any work is done.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned for lookups, deletes and stats on an unknown id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %s not found", e.ID)
}

// EmptyCommentsError is returned when stats are requested for a record without comments.
type EmptyCommentsError struct {
	ID string
}

func (e *EmptyCommentsError) Error() string {
	return fmt.Sprintf("record %s has no comments", e.ID)
}
