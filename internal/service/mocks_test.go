package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invite-warden/internal/domain"
)

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GuildInvites(ctx context.Context, guildID string) ([]domain.Invite, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invite), args.Error(1)
}

func (m *MockGateway) DeleteInvite(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockGateway) RemoveMember(ctx context.Context, guildID, userID, reason string) error {
	args := m.Called(ctx, guildID, userID, reason)
	return args.Error(0)
}

// MockAttributionRepo
type MockAttributionRepo struct {
	mock.Mock
}

func (m *MockAttributionRepo) Upsert(ctx context.Context, rec *domain.Attribution) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockAttributionRepo) GetByMember(ctx context.Context, guildID, userID string) (*domain.Attribution, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attribution), args.Error(1)
}

func (m *MockAttributionRepo) ListCodesByInviter(ctx context.Context, inviterID string) ([]string, error) {
	args := m.Called(ctx, inviterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAttributionRepo) ListMembersByInvite(ctx context.Context, guildID, code string) ([]string, error) {
	args := m.Called(ctx, guildID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockEscalation
type MockEscalation struct {
	mock.Mock
}

func (m *MockEscalation) RemoveMember(ctx context.Context, guildID, userID, reason string) {
	m.Called(ctx, guildID, userID, reason)
}
