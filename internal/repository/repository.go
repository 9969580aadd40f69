package repository

import (
	"context"

	"invite-warden/internal/domain"
)

type AttributionRepository interface {
	// Upsert writes an attribution record. (user, guild) is the natural
	// key; a conflict overwrites inviter, invite and used_at.
	Upsert(ctx context.Context, rec *domain.Attribution) error

	// GetByMember returns the attribution for one member of one guild,
	// or sql.ErrNoRows when none is stored.
	GetByMember(ctx context.Context, guildID, userID string) (*domain.Attribution, error)

	// ListCodesByInviter returns the distinct invite codes historically
	// credited to an inviter.
	ListCodesByInviter(ctx context.Context, inviterID string) ([]string, error)

	// ListMembersByInvite returns the user IDs whose stored attribution
	// points at the given invite code within a guild.
	ListMembersByInvite(ctx context.Context, guildID, code string) ([]string, error)
}
