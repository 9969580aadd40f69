package jobs

import (
	"context"

	"github.com/google/uuid"

	"invite-warden/internal/logger"
)

// ResyncGuildSnapshots re-fetches the authoritative invite list for
// every tracked guild and wholesale-replaces its cache entry. This
// heals drift from gateway events missed during reconnects. A guild
// whose fetch fails keeps its previous entry.
func (jr *JobRunner) ResyncGuildSnapshots() {
	jr.runWithRecovery("ResyncGuildSnapshots", func() {
		runID := uuid.NewString()
		guilds := jr.cache.Guilds()
		logger.Info("resyncing guild snapshots", "run_id", runID, "guilds", len(guilds))

		for _, guildID := range guilds {
			jr.ingestor.HandleGuildVisible(context.Background(), guildID)
		}
	})
}
