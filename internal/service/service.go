package service

import (
	"context"

	"invite-warden/internal/domain"
)

// EventIngestor applies invite-lifecycle and guild-visibility gateway
// notifications to the invite cache.
type EventIngestor interface {
	HandleInviteCreate(invite domain.Invite)
	HandleInviteDelete(guildID, code string)
	HandleGuildVisible(ctx context.Context, guildID string)
	HandleGuildRemoved(guildID string)
}

// InviteTracker attributes each member join to the invite it consumed.
type InviteTracker interface {
	HandleMemberJoin(ctx context.Context, join domain.MemberJoin)
}

// FailureEscalation is the compensating action taken when a join cannot
// be attributed safely: remove the member, best effort.
type FailureEscalation interface {
	RemoveMember(ctx context.Context, guildID, userID, reason string)
}

// InviteAdminService is the surface consumed by the command layer.
type InviteAdminService interface {
	QueryInvites(guildID, inviterID string) ([]domain.Invite, error)
	Revoke(ctx context.Context, guildID, code string, kickJoined bool) (int, error)
	RevokeAllByInviter(ctx context.Context, guildID, inviterID string, kickJoined bool) (int, int, error)
	MemberAttribution(ctx context.Context, guildID, userID string) (*domain.Attribution, error)
	InviterCodes(ctx context.Context, inviterID string) ([]string, error)
}
