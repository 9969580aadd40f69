package cache

import (
	"hash/fnv"
	"sync"

	"invite-warden/internal/domain"
)

const shardCount = 32

// Store is the concurrent per-guild invite cache. Guilds are spread
// over a fixed number of shards so operations on distinct guilds rarely
// contend; within a guild, mutations are serialized by the shard lock.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu     sync.RWMutex
	guilds map[string]map[string]domain.Invite
}

func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].guilds = make(map[string]map[string]domain.Invite)
	}
	return s
}

func (s *Store) shardFor(guildID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(guildID))
	return &s.shards[h.Sum32()%shardCount]
}

// Snapshot returns a copy of the guild's invite map, so callers can
// diff against it without holding any lock. The second return is false
// when the guild was never loaded.
func (s *Store) Snapshot(guildID string) (map[string]domain.Invite, bool) {
	sh := s.shardFor(guildID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	invites, ok := sh.guilds[guildID]
	if !ok {
		return nil, false
	}
	snapshot := make(map[string]domain.Invite, len(invites))
	for code, inv := range invites {
		snapshot[code] = inv
	}
	return snapshot, true
}

// Replace atomically swaps in a full invite map for the guild,
// discarding whatever partial state may already exist.
func (s *Store) Replace(guildID string, invites map[string]domain.Invite) {
	m := make(map[string]domain.Invite, len(invites))
	for code, inv := range invites {
		m[code] = inv
	}
	sh := s.shardFor(guildID)
	sh.mu.Lock()
	sh.guilds[guildID] = m
	sh.mu.Unlock()
}

// Insert adds or overwrites one invite. A guild that was never loaded
// is left untracked; the next full load establishes its state.
func (s *Store) Insert(guildID string, inv domain.Invite) bool {
	sh := s.shardFor(guildID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	invites, ok := sh.guilds[guildID]
	if !ok {
		return false
	}
	invites[inv.Code] = inv
	return true
}

// Remove deletes one invite by code. Unknown guild or unknown code is
// a no-op; the guild may have been removed concurrently.
func (s *Store) Remove(guildID, code string) bool {
	sh := s.shardFor(guildID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	invites, ok := sh.guilds[guildID]
	if !ok {
		return false
	}
	if _, ok := invites[code]; !ok {
		return false
	}
	delete(invites, code)
	return true
}

// RemoveGuild drops the guild's entire entry.
func (s *Store) RemoveGuild(guildID string) {
	sh := s.shardFor(guildID)
	sh.mu.Lock()
	delete(sh.guilds, guildID)
	sh.mu.Unlock()
}

// UpdateUses sets the cached use counter for one invite. Unknown guild
// or code is a no-op.
func (s *Store) UpdateUses(guildID, code string, uses int) {
	sh := s.shardFor(guildID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	invites, ok := sh.guilds[guildID]
	if !ok {
		return
	}
	inv, ok := invites[code]
	if !ok {
		return
	}
	inv.Uses = uses
	invites[code] = inv
}

// Guilds lists every tracked guild ID.
func (s *Store) Guilds() []string {
	var ids []string
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for id := range sh.guilds {
			ids = append(ids, id)
		}
		sh.mu.RUnlock()
	}
	return ids
}
