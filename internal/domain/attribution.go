package domain

import "time"

// Attribution is the durable fact that a member's join was credited to
// an invite code and its inviter. (UserID, GuildID) is the natural key;
// a rejoin overwrites the prior record.
type Attribution struct {
	UserID     string    `json:"user_id"`
	GuildID    string    `json:"guild_id"`
	InviterID  string    `json:"inviter_id"`
	InviteCode string    `json:"invite_code"`
	UsedAt     time.Time `json:"used_at"`
}
