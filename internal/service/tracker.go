package service

import (
	"context"
	"fmt"
	"time"

	"invite-warden/internal/cache"
	"invite-warden/internal/domain"
	"invite-warden/internal/logger"
	"invite-warden/internal/platform"
	"invite-warden/internal/repository"
)

// trackerService is the attribution engine. On each member join it
// diffs the cached invite state against a fresh authoritative fetch to
// deduce the consumed invite. The diff is a best-effort heuristic, not
// a proof: concurrent joins racing against one stale snapshot can
// produce a false ambiguous result, which is handled by removal rather
// than guessed at.
//
// Correctness assumes the join notification arrives before the
// invite-delete notification of an exhausted single-use invite. The
// transport does not guarantee this, so the ambiguous case is deferred
// by graceWindow to let a racing delete event arrive and resolve it.
type trackerService struct {
	cache       *cache.Store
	gateway     platform.Gateway
	repo        repository.AttributionRepository
	escalation  FailureEscalation
	graceWindow time.Duration
}

func NewInviteTracker(
	cache *cache.Store,
	gateway platform.Gateway,
	repo repository.AttributionRepository,
	escalation FailureEscalation,
	graceWindow time.Duration,
) InviteTracker {
	return &trackerService{
		cache:       cache,
		gateway:     gateway,
		repo:        repo,
		escalation:  escalation,
		graceWindow: graceWindow,
	}
}

func (s *trackerService) HandleMemberJoin(ctx context.Context, join domain.MemberJoin) {
	log := logger.WithGuild(join.GuildID).With("user_id", join.UserID)
	log.Info("member joined, attributing invite")

	if join.IsBot {
		// Bots are added through the OAuth flow and consume no invite.
		log.Info("member is a bot, join not tracked")
		return
	}

	oldState, ok := s.cache.Snapshot(join.GuildID)
	if !ok {
		log.Warn("no invite state for guild", "error", domain.ErrGuildNotTracked)
		s.escalation.RemoveMember(ctx, join.GuildID, join.UserID, "invite tracking has no state for this guild")
		return
	}

	// The snapshot is taken before this fetch, so it still reflects the
	// pre-join state even if events mutate the cache meanwhile.
	fresh, err := s.gateway.GuildInvites(ctx, join.GuildID)
	if err != nil {
		log.Warn("cannot fetch invites for comparison", "error", err)
		s.escalation.RemoveMember(ctx, join.GuildID, join.UserID,
			fmt.Sprintf("cannot fetch invites for comparison: %v", err))
		return
	}
	newState := inviteMap(fresh)

	match, ok := s.matchInvite(join.GuildID, oldState, newState)
	if !ok {
		match, ok = s.resolveWithGrace(join.GuildID, oldState)
	}
	if !ok {
		log.Warn("could not attribute join", "error", domain.ErrAttributionAmbiguous,
			"cached", len(oldState), "fetched", len(newState))
		s.escalation.RemoveMember(ctx, join.GuildID, join.UserID, "failed to associate an invite with this member")
		return
	}

	rec := &domain.Attribution{
		UserID:     join.UserID,
		GuildID:    join.GuildID,
		InviterID:  match.InviterID,
		InviteCode: match.Code,
		UsedAt:     time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		log.Error("failed to record attribution", "error", err)
		s.escalation.RemoveMember(ctx, join.GuildID, join.UserID, "error recording invite attribution")
		return
	}
	log.Info("join attributed", "inviter_id", match.InviterID, "code", match.Code)
}

// matchInvite classifies the two states by cardinality and content.
// The second return is false when the result is ambiguous.
func (s *trackerService) matchInvite(guildID string, oldState, newState map[string]domain.Invite) (domain.Invite, bool) {
	switch {
	case len(newState) == len(oldState)-1:
		// Exactly one invite should have vanished: a single-use invite
		// spent its last use. Its cache entry is left for the delete
		// event that is expected to follow.
		missing := missingCodes(oldState, newState)
		if len(missing) != 1 {
			return domain.Invite{}, false
		}
		return oldState[missing[0]], true

	case len(newState) == len(oldState):
		// Same code set, so one invite's use counter must have ticked.
		var candidates []domain.Invite
		for code, fresh := range newState {
			old, ok := oldState[code]
			if ok && fresh.Uses == old.Uses+1 {
				candidates = append(candidates, fresh)
			}
		}
		if len(candidates) != 1 {
			return domain.Invite{}, false
		}
		match := candidates[0]
		s.cache.UpdateUses(guildID, match.Code, match.Uses)
		return match, true

	default:
		return domain.Invite{}, false
	}
}

// resolveWithGrace defers an ambiguous result briefly so a racing
// invite-delete event can arrive. If after the window exactly one of
// the snapshotted codes is gone from the cache, that invite is the
// match (the exhausted single-use case delivered out of order).
func (s *trackerService) resolveWithGrace(guildID string, oldState map[string]domain.Invite) (domain.Invite, bool) {
	if s.graceWindow <= 0 {
		return domain.Invite{}, false
	}
	time.Sleep(s.graceWindow)

	current, ok := s.cache.Snapshot(guildID)
	if !ok {
		return domain.Invite{}, false
	}
	missing := missingCodes(oldState, current)
	if len(missing) != 1 {
		return domain.Invite{}, false
	}
	logger.WithGuild(guildID).Info("ambiguous join resolved by late delete event", "code", missing[0])
	return oldState[missing[0]], true
}

func missingCodes(oldState, newState map[string]domain.Invite) []string {
	var missing []string
	for code := range oldState {
		if _, ok := newState[code]; !ok {
			missing = append(missing, code)
		}
	}
	return missing
}
