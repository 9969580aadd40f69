package domain

import "errors"

var (
	// ErrGuildNotTracked is returned when an event references a guild
	// that was never loaded into the cache.
	ErrGuildNotTracked = errors.New("guild is not tracked")

	// ErrAttributionAmbiguous is returned when the state diff yields
	// zero or more than one candidate invite for a join.
	ErrAttributionAmbiguous = errors.New("cannot attribute join to an invite")

	// ErrFetchFailed wraps a failed authoritative invite-list fetch.
	ErrFetchFailed = errors.New("failed to fetch guild invites")
)
