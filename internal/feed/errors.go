package feed

import (
	"errors"
	"fmt"
)

// ErrEmptyFeed means the feed was reachable and well-formed but had no
// usable items (none at all, or all were missing title/link). The UI shows
// query guidance for this one, unlike NetworkError/ParseError which get a
// technical warning.
var ErrEmptyFeed = errors.New("feed returned no items (query/source may be blocked or empty)")

// NetworkError wraps the last transport or status failure after all fetch
// attempts were exhausted.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("http error fetching feed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError means both the XML strategy and the tolerant fallback failed
// to produce an item list.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
