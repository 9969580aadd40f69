package service

import (
	"context"

	"invite-warden/internal/cache"
	"invite-warden/internal/domain"
	"invite-warden/internal/logger"
	"invite-warden/internal/platform"
)

type eventIngestor struct {
	cache   *cache.Store
	gateway platform.Gateway
}

func NewEventIngestor(cache *cache.Store, gateway platform.Gateway) EventIngestor {
	return &eventIngestor{
		cache:   cache,
		gateway: gateway,
	}
}

func (s *eventIngestor) HandleInviteCreate(invite domain.Invite) {
	if !s.cache.Insert(invite.GuildID, invite) {
		// Guild was never loaded; the next full load picks this invite up.
		logger.Debug("invite created in untracked guild", "guild_id", invite.GuildID, "code", invite.Code)
		return
	}
	logger.Debug("invite created", "guild_id", invite.GuildID, "code", invite.Code, "inviter_id", invite.InviterID)
}

func (s *eventIngestor) HandleInviteDelete(guildID, code string) {
	if !s.cache.Remove(guildID, code) {
		// Either the guild is untracked or the tracker already removed
		// the entry eagerly on revoke; both are fine.
		logger.Debug("delete event for unknown invite", "guild_id", guildID, "code", code)
		return
	}
	logger.Info("invite deleted", "guild_id", guildID, "code", code)
}

// HandleGuildVisible does a full authoritative load of the guild's
// invites and wholesale-replaces its cache entry. This is the sole
// source of truth for initial state.
func (s *eventIngestor) HandleGuildVisible(ctx context.Context, guildID string) {
	invites, err := s.gateway.GuildInvites(ctx, guildID)
	if err != nil {
		// The guild stays without a cache entry until the next
		// successful trigger; joins escalate in the meantime.
		logger.WarnContext(ctx, "failed to load invites for guild", "guild_id", guildID, "error", err)
		return
	}
	s.cache.Replace(guildID, inviteMap(invites))
	logger.Info("loaded guild invites", "guild_id", guildID, "invites", len(invites))
}

func (s *eventIngestor) HandleGuildRemoved(guildID string) {
	logger.Info("guild removed, dropping its invites", "guild_id", guildID)
	s.cache.RemoveGuild(guildID)
}

func inviteMap(invites []domain.Invite) map[string]domain.Invite {
	m := make(map[string]domain.Invite, len(invites))
	for _, inv := range invites {
		m[inv.Code] = inv
	}
	return m
}
