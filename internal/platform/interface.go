package platform

import (
	"context"

	"invite-warden/internal/domain"
)

// Gateway is the chat platform's query surface. Implementations cross
// the process boundary; callers must not hold cache locks across these
// calls.
type Gateway interface {
	// GuildInvites fetches the authoritative invite list for a guild.
	GuildInvites(ctx context.Context, guildID string) ([]domain.Invite, error)

	// DeleteInvite revokes an invite by code.
	DeleteInvite(ctx context.Context, code string) error

	// RemoveMember kicks a member from a guild with a human-readable
	// reason.
	RemoveMember(ctx context.Context, guildID, userID, reason string) error
}

// EventSink consumes invite-lifecycle and guild-visibility
// notifications. Implementations mutate the invite cache.
type EventSink interface {
	HandleInviteCreate(invite domain.Invite)
	HandleInviteDelete(guildID, code string)
	HandleGuildVisible(ctx context.Context, guildID string)
	HandleGuildRemoved(guildID string)
}

// JoinSink consumes member-join notifications.
type JoinSink interface {
	HandleMemberJoin(ctx context.Context, join domain.MemberJoin)
}
