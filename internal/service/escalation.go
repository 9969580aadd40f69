package service

import (
	"context"

	"invite-warden/internal/logger"
	"invite-warden/internal/platform"
)

type failureEscalation struct {
	gateway platform.Gateway
}

func NewFailureEscalation(gateway platform.Gateway) FailureEscalation {
	return &failureEscalation{gateway: gateway}
}

// RemoveMember kicks the member, best effort. A failed kick is logged
// and not retried; the member staying unattributed is a visible, logged
// condition rather than something to silently compensate further.
func (e *failureEscalation) RemoveMember(ctx context.Context, guildID, userID, reason string) {
	logger.WarnContext(ctx, "removing member after failed attribution",
		"guild_id", guildID, "user_id", userID, "reason", reason)
	if err := e.gateway.RemoveMember(ctx, guildID, userID, reason); err != nil {
		logger.WarnContext(ctx, "cannot kick member",
			"guild_id", guildID, "user_id", userID, "error", err)
	}
}
