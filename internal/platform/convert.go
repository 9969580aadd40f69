package platform

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"invite-warden/internal/domain"
)

// The wire format encodes "never expires" as max_age = 0 and
// "unlimited uses" as max_uses = 0. Both are mapped to nil here so the
// rest of the system never sees the sentinels.

func expiryFromMaxAge(createdAt time.Time, maxAgeSeconds int) *time.Time {
	if maxAgeSeconds == 0 {
		return nil
	}
	t := createdAt.Add(time.Duration(maxAgeSeconds) * time.Second)
	return &t
}

func maxUsesFromWire(maxUses int) *int {
	if maxUses == 0 {
		return nil
	}
	return &maxUses
}

// inviteFromAPI converts a fetched invite. The guild ID is passed in
// because list responses do not always embed the guild object.
func inviteFromAPI(inv *discordgo.Invite, guildID string) domain.Invite {
	inviterID := ""
	if inv.Inviter != nil {
		inviterID = inv.Inviter.ID
	}
	if inv.Guild != nil {
		guildID = inv.Guild.ID
	}
	return domain.Invite{
		Code:      inv.Code,
		GuildID:   guildID,
		InviterID: inviterID,
		CreatedAt: inv.CreatedAt,
		ExpiresAt: expiryFromMaxAge(inv.CreatedAt, inv.MaxAge),
		MaxUses:   maxUsesFromWire(inv.MaxUses),
		Uses:      inv.Uses,
		Temporary: inv.Temporary,
	}
}

// inviteFromCreateEvent converts an invite-created event. The event's
// reported use count is always zero and is never trusted as cumulative,
// so Uses is pinned to 0 regardless of the payload.
func inviteFromCreateEvent(evt *discordgo.InviteCreate) domain.Invite {
	createdAt := evt.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	inviterID := ""
	if evt.Inviter != nil {
		inviterID = evt.Inviter.ID
	}
	return domain.Invite{
		Code:      evt.Code,
		GuildID:   evt.GuildID,
		InviterID: inviterID,
		CreatedAt: createdAt,
		ExpiresAt: expiryFromMaxAge(createdAt, evt.MaxAge),
		MaxUses:   maxUsesFromWire(evt.MaxUses),
		Uses:      0,
		Temporary: evt.Temporary,
	}
}
