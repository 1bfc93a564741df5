// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"errors"
	"fmt"
)

// ErrNotFound is the single outcome for a question that cannot be shown,
// whatever the cause.
var ErrNotFound = errors.New("question not found")

// ErrEmptyText is returned by admin writes given blank question or choice text.
var ErrEmptyText = errors.New("text is required")

// ErrPubDateOutOfRange is returned for publication dates that cannot be
// stored as Unix nanoseconds (before 1678 or after 2262).
var ErrPubDateOutOfRange = errors.New("pub_date out of range")

// NotFoundReason tells logs why a lookup failed. It is never shown to clients.
type NotFoundReason string

const (
	ReasonMissing   NotFoundReason = "missing"
	ReasonNoPubDate NotFoundReason = "no_pub_date"
	ReasonFuture    NotFoundReason = "future"
	ReasonNoChoices NotFoundReason = "no_choices"
)

// NotFoundError carries the reason alongside ErrNotFound.
type NotFoundError struct {
	ID     int64
	Reason NotFoundReason
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("question %d not found (%s)", e.ID, e.Reason)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Reason extracts the NotFoundReason from err, or "" if err is not a
// not-found error.
func Reason(err error) NotFoundReason {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Reason
	}
	if errors.Is(err, ErrNotFound) {
		return ReasonMissing
	}
	return ""
}
