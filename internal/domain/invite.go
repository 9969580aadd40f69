package domain

import "time"

// Invite is one platform invite code within one guild. ExpiresAt and
// MaxUses are nil when the invite never expires or has unlimited uses;
// the zero sentinels of the wire payloads are mapped to nil at the
// platform boundary.
type Invite struct {
	Code      string     `json:"code"`
	GuildID   string     `json:"guild_id"`
	InviterID string     `json:"inviter_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	MaxUses   *int       `json:"max_uses,omitempty"`
	Uses      int        `json:"uses"`
	Temporary bool       `json:"temporary"`
}

// MemberJoin is a member-joined gateway notification.
type MemberJoin struct {
	UserID  string
	GuildID string
	IsBot   bool
}
