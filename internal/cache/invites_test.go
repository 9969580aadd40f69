package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"invite-warden/internal/cache"
	"invite-warden/internal/domain"
)

func invite(guildID, code string, uses int) domain.Invite {
	return domain.Invite{Code: code, GuildID: guildID, InviterID: "inviter-1", Uses: uses}
}

func TestStore_CreateThenDelete(t *testing.T) {
	s := cache.NewStore()
	s.Replace("g1", map[string]domain.Invite{})

	assert.True(t, s.Insert("g1", invite("g1", "abc", 0)))
	assert.True(t, s.Remove("g1", "abc"))

	snapshot, ok := s.Snapshot("g1")
	assert.True(t, ok)
	assert.Empty(t, snapshot)

	// removing again is a no-op
	assert.False(t, s.Remove("g1", "abc"))
}

func TestStore_UntrackedGuildIsNoOp(t *testing.T) {
	s := cache.NewStore()

	_, ok := s.Snapshot("unknown")
	assert.False(t, ok)

	assert.False(t, s.Insert("unknown", invite("unknown", "abc", 0)))
	assert.False(t, s.Remove("unknown", "abc"))
	s.UpdateUses("unknown", "abc", 3)
	s.RemoveGuild("unknown")
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := cache.NewStore()
	s.Replace("g1", map[string]domain.Invite{"abc": invite("g1", "abc", 1)})

	snapshot, ok := s.Snapshot("g1")
	assert.True(t, ok)

	s.UpdateUses("g1", "abc", 2)
	assert.Equal(t, 1, snapshot["abc"].Uses)

	fresh, _ := s.Snapshot("g1")
	assert.Equal(t, 2, fresh["abc"].Uses)
}

func TestStore_ReplaceOverwritesPartialState(t *testing.T) {
	s := cache.NewStore()
	s.Replace("g1", map[string]domain.Invite{"stale": invite("g1", "stale", 0)})

	s.Replace("g1", map[string]domain.Invite{"abc": invite("g1", "abc", 4)})

	snapshot, ok := s.Snapshot("g1")
	assert.True(t, ok)
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 4, snapshot["abc"].Uses)
}

func TestStore_UpdateUsesUnknownCode(t *testing.T) {
	s := cache.NewStore()
	s.Replace("g1", map[string]domain.Invite{"abc": invite("g1", "abc", 1)})

	s.UpdateUses("g1", "missing", 9)

	snapshot, _ := s.Snapshot("g1")
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 1, snapshot["abc"].Uses)
}

func TestStore_RemoveGuildDropsEverything(t *testing.T) {
	s := cache.NewStore()
	s.Replace("g1", map[string]domain.Invite{"abc": invite("g1", "abc", 0)})

	s.RemoveGuild("g1")

	_, ok := s.Snapshot("g1")
	assert.False(t, ok)
	assert.False(t, s.Insert("g1", invite("g1", "abc", 0)))
}

func TestStore_Guilds(t *testing.T) {
	s := cache.NewStore()
	s.Replace("g1", nil)
	s.Replace("g2", nil)
	s.Replace("g3", nil)

	guilds := s.Guilds()
	assert.ElementsMatch(t, []string{"g1", "g2", "g3"}, guilds)
}

func TestStore_ConcurrentGuilds(t *testing.T) {
	s := cache.NewStore()
	guilds := []string{"g1", "g2", "g3", "g4", "g5", "g6", "g7", "g8"}
	for _, g := range guilds {
		s.Replace(g, map[string]domain.Invite{"seed": invite(g, "seed", 0)})
	}

	var wg sync.WaitGroup
	for _, g := range guilds {
		wg.Add(1)
		go func(guildID string) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Insert(guildID, invite(guildID, "abc", i))
				s.UpdateUses(guildID, "abc", i+1)
				if snapshot, ok := s.Snapshot(guildID); ok {
					// a snapshot is never partially replaced
					assert.Contains(t, snapshot, "seed")
				}
				s.Remove(guildID, "abc")
			}
		}(g)
	}
	wg.Wait()

	for _, g := range guilds {
		snapshot, ok := s.Snapshot(g)
		assert.True(t, ok)
		assert.Contains(t, snapshot, "seed")
	}
}
