package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invite-warden/internal/cache"
	"invite-warden/internal/domain"
	"invite-warden/internal/service"
)

func TestIngestor_CreateThenDelete(t *testing.T) {
	invites := trackedCache("g1")
	ingestor := service.NewEventIngestor(invites, new(MockGateway))

	ingestor.HandleInviteCreate(domain.Invite{Code: "C", GuildID: "g1", InviterID: "alice"})
	ingestor.HandleInviteDelete("g1", "C")

	snapshot, ok := invites.Snapshot("g1")
	assert.True(t, ok)
	assert.NotContains(t, snapshot, "C")
}

func TestIngestor_DeleteUnknownCodeIsNoOp(t *testing.T) {
	invites := trackedCache("g1")
	ingestor := service.NewEventIngestor(invites, new(MockGateway))

	ingestor.HandleInviteDelete("g1", "never-existed")
	ingestor.HandleInviteDelete("unknown-guild", "C")
}

func TestIngestor_GuildVisibleReplacesPartialState(t *testing.T) {
	invites := trackedCache("g1", domain.Invite{Code: "stale", GuildID: "g1"})
	gateway := new(MockGateway)
	ingestor := service.NewEventIngestor(invites, gateway)
	ctx := context.Background()

	gateway.On("GuildInvites", ctx, "g1").Return([]domain.Invite{
		{Code: "A", GuildID: "g1", InviterID: "alice", Uses: 2},
		{Code: "B", GuildID: "g1", InviterID: "bob", Uses: 0},
	}, nil)

	ingestor.HandleGuildVisible(ctx, "g1")

	snapshot, ok := invites.Snapshot("g1")
	assert.True(t, ok)
	assert.Len(t, snapshot, 2)
	assert.NotContains(t, snapshot, "stale")
	assert.Equal(t, 2, snapshot["A"].Uses)
}

func TestIngestor_GuildVisibleFetchFailure(t *testing.T) {
	invites := cache.NewStore()
	gateway := new(MockGateway)
	ingestor := service.NewEventIngestor(invites, gateway)
	ctx := context.Background()

	gateway.On("GuildInvites", ctx, "g1").Return(nil, assert.AnError)

	ingestor.HandleGuildVisible(ctx, "g1")

	// the guild stays untracked until the next successful trigger
	_, ok := invites.Snapshot("g1")
	assert.False(t, ok)
}

func TestIngestor_GuildVisibleFetchFailureKeepsExistingState(t *testing.T) {
	invites := trackedCache("g1", domain.Invite{Code: "A", GuildID: "g1"})
	gateway := new(MockGateway)
	ingestor := service.NewEventIngestor(invites, gateway)
	ctx := context.Background()

	gateway.On("GuildInvites", ctx, "g1").Return(nil, assert.AnError)

	ingestor.HandleGuildVisible(ctx, "g1")

	snapshot, ok := invites.Snapshot("g1")
	assert.True(t, ok)
	assert.Contains(t, snapshot, "A")
}

func TestIngestor_GuildRemoved(t *testing.T) {
	invites := trackedCache("g1", domain.Invite{Code: "A", GuildID: "g1"})
	ingestor := service.NewEventIngestor(invites, new(MockGateway))

	ingestor.HandleGuildRemoved("g1")

	_, ok := invites.Snapshot("g1")
	assert.False(t, ok)
}

func TestIngestor_CreateInUntrackedGuild(t *testing.T) {
	invites := cache.NewStore()
	gateway := new(MockGateway)
	ingestor := service.NewEventIngestor(invites, gateway)

	ingestor.HandleInviteCreate(domain.Invite{Code: "C", GuildID: "g1"})

	_, ok := invites.Snapshot("g1")
	assert.False(t, ok)
	gateway.AssertNotCalled(t, "GuildInvites", mock.Anything, mock.Anything)
}
