package service

import (
	"context"
	"fmt"
	"sort"

	"invite-warden/internal/cache"
	"invite-warden/internal/domain"
	"invite-warden/internal/logger"
	"invite-warden/internal/platform"
	"invite-warden/internal/repository"
)

type inviteAdminService struct {
	cache   *cache.Store
	gateway platform.Gateway
	repo    repository.AttributionRepository
}

func NewInviteAdminService(cache *cache.Store, gateway platform.Gateway, repo repository.AttributionRepository) InviteAdminService {
	return &inviteAdminService{
		cache:   cache,
		gateway: gateway,
		repo:    repo,
	}
}

// QueryInvites lists the guild's cached invites, optionally filtered by
// inviter. Results are sorted by code for stable output.
func (s *inviteAdminService) QueryInvites(guildID, inviterID string) ([]domain.Invite, error) {
	snapshot, ok := s.cache.Snapshot(guildID)
	if !ok {
		return nil, domain.ErrGuildNotTracked
	}
	invites := make([]domain.Invite, 0, len(snapshot))
	for _, inv := range snapshot {
		if inviterID != "" && inv.InviterID != inviterID {
			continue
		}
		invites = append(invites, inv)
	}
	sort.Slice(invites, func(i, j int) bool { return invites[i].Code < invites[j].Code })
	return invites, nil
}

// Revoke deletes the invite on the platform, then eagerly drops it from
// the cache; the delete event that follows becomes an idempotent no-op.
// With kickJoined set, every member whose stored attribution points at
// the code is removed as well. Returns how many members were kicked.
func (s *inviteAdminService) Revoke(ctx context.Context, guildID, code string, kickJoined bool) (int, error) {
	if err := s.gateway.DeleteInvite(ctx, code); err != nil {
		return 0, fmt.Errorf("failed to delete invite %s: %w", code, err)
	}
	s.cache.Remove(guildID, code)
	logger.Info("invite revoked", "guild_id", guildID, "code", code)

	if !kickJoined {
		return 0, nil
	}
	users, err := s.repo.ListMembersByInvite(ctx, guildID, code)
	if err != nil {
		return 0, fmt.Errorf("failed to list members joined via %s: %w", code, err)
	}
	kicked := 0
	for _, userID := range users {
		reason := fmt.Sprintf("invite %s was revoked", code)
		if err := s.gateway.RemoveMember(ctx, guildID, userID, reason); err != nil {
			// Commonly the member already left; log and move on.
			logger.Warn("failed to kick member of revoked invite",
				"guild_id", guildID, "user_id", userID, "code", code, "error", err)
			continue
		}
		kicked++
	}
	return kicked, nil
}

// RevokeAllByInviter revokes every cached invite of the guild credited
// to one inviter. Returns how many invites were revoked and how many
// members were kicked.
func (s *inviteAdminService) RevokeAllByInviter(ctx context.Context, guildID, inviterID string, kickJoined bool) (int, int, error) {
	invites, err := s.QueryInvites(guildID, inviterID)
	if err != nil {
		return 0, 0, err
	}
	revoked, kicked := 0, 0
	for _, inv := range invites {
		n, err := s.Revoke(ctx, guildID, inv.Code, kickJoined)
		if err != nil {
			logger.Warn("failed to revoke invite", "guild_id", guildID, "code", inv.Code, "error", err)
			continue
		}
		revoked++
		kicked += n
	}
	return revoked, kicked, nil
}

func (s *inviteAdminService) MemberAttribution(ctx context.Context, guildID, userID string) (*domain.Attribution, error) {
	return s.repo.GetByMember(ctx, guildID, userID)
}

func (s *inviteAdminService) InviterCodes(ctx context.Context, inviterID string) ([]string, error) {
	return s.repo.ListCodesByInviter(ctx, inviterID)
}
