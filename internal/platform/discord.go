package platform

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"invite-warden/internal/domain"
	"invite-warden/internal/logger"
)

// Discord implements Gateway over a discordgo session and fans gateway
// events out to the sinks.
type Discord struct {
	session *discordgo.Session
}

func NewDiscord(token string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildInvites
	return &Discord{session: session}, nil
}

// Open connects to the gateway. Handlers must be registered first so
// the initial guild-create burst is not missed.
func (d *Discord) Open() error {
	return d.session.Open()
}

func (d *Discord) Close() error {
	return d.session.Close()
}

func (d *Discord) GuildInvites(ctx context.Context, guildID string) ([]domain.Invite, error) {
	logger.DiscordCall("GuildInvites", "guild_id", guildID)
	raw, err := d.session.GuildInvites(guildID, discordgo.WithContext(ctx))
	logger.DiscordResult("GuildInvites", err, "guild_id", guildID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	invites := make([]domain.Invite, 0, len(raw))
	for _, inv := range raw {
		invites = append(invites, inviteFromAPI(inv, guildID))
	}
	return invites, nil
}

func (d *Discord) DeleteInvite(ctx context.Context, code string) error {
	logger.DiscordCall("InviteDelete", "code", code)
	_, err := d.session.InviteDelete(code, discordgo.WithContext(ctx))
	logger.DiscordResult("InviteDelete", err, "code", code)
	return err
}

func (d *Discord) RemoveMember(ctx context.Context, guildID, userID, reason string) error {
	logger.DiscordCall("GuildMemberDelete", "guild_id", guildID, "user_id", userID)
	err := d.session.GuildMemberDeleteWithReason(guildID, userID, reason, discordgo.WithContext(ctx))
	logger.DiscordResult("GuildMemberDelete", err, "guild_id", guildID, "user_id", userID)
	return err
}

// RegisterHandlers wires gateway events to the sinks. discordgo runs
// each handler invocation on its own goroutine, which gives the
// one-task-per-event scheduling the tracker is written against.
func (d *Discord) RegisterHandlers(events EventSink, joins JoinSink) {
	d.session.AddHandler(func(_ *discordgo.Session, evt *discordgo.InviteCreate) {
		events.HandleInviteCreate(inviteFromCreateEvent(evt))
	})
	d.session.AddHandler(func(_ *discordgo.Session, evt *discordgo.InviteDelete) {
		events.HandleInviteDelete(evt.GuildID, evt.Code)
	})
	d.session.AddHandler(func(_ *discordgo.Session, evt *discordgo.GuildCreate) {
		events.HandleGuildVisible(context.Background(), evt.ID)
	})
	d.session.AddHandler(func(_ *discordgo.Session, evt *discordgo.GuildDelete) {
		events.HandleGuildRemoved(evt.ID)
	})
	d.session.AddHandler(func(_ *discordgo.Session, evt *discordgo.GuildMemberAdd) {
		joins.HandleMemberJoin(context.Background(), domain.MemberJoin{
			UserID:  evt.User.ID,
			GuildID: evt.GuildID,
			IsBot:   evt.User.Bot,
		})
	})
}
