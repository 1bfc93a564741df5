// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"fmt"
	"time"

	"github.com/danielhkuo/mysite/models"
)

// RecentWindow is how far back a publication still counts as recent.
const RecentWindow = 24 * time.Hour

// WasPublishedRecently reports whether q was published in (now-24h, now].
// Questions without a publication date are never recent.
func WasPublishedRecently(q models.Question, now time.Time) bool {
	if !q.HasPubDate() {
		return false
	}
	return q.PubDate.After(now.Add(-RecentWindow)) && !q.PubDate.After(now)
}

// IsListable reports whether q may be shown to visitors: it must be
// published at or before now and own at least one choice.
func IsListable(q models.Question, now time.Time) bool {
	return unlistableReason(q, now) == ""
}

// CheckPubDate returns ErrPubDateOutOfRange when t has no Unix nanosecond
// representation. The zero time marks an undated question and is accepted.
func CheckPubDate(t time.Time) error {
	if t.IsZero() {
		return nil
	}
	if !time.Unix(0, t.UnixNano()).Equal(t) {
		return fmt.Errorf("%s: %w", t.Format(time.RFC3339), ErrPubDateOutOfRange)
	}
	return nil
}

// unlistableReason returns why q is hidden, or "" when it is listable.
func unlistableReason(q models.Question, now time.Time) NotFoundReason {
	switch {
	case !q.HasPubDate():
		return ReasonNoPubDate
	case q.PubDate.After(now):
		return ReasonFuture
	case len(q.Choices) == 0:
		return ReasonNoChoices
	}
	return ""
}
