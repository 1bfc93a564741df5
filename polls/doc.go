// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls decides which questions visitors may see.

# Publication Policy

Two predicates, both pure and evaluated against an explicit now:

	WasPublishedRecently(q, now) // pub date in (now-24h, now]
	IsListable(q, now)           // published at or before now, has a choice

A question with no pub date is neither recent nor listable.

# Viewing

	ListVisible(ctx, store, now)   // listable questions, newest first
	GetDetail(ctx, store, id, now) // one listable question or ErrNotFound

GetDetail collapses a missing id, a future or missing pub date, and an
empty choice list into ErrNotFound. Use Reason(err) to log the cause.

# Storage

Store is the read interface the viewing functions need. Repository adds the
administrative writes. MemoryStore implements Repository in process memory;
package db provides the SQL implementation.
*/
package polls
