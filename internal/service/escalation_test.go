package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invite-warden/internal/service"
)

func TestEscalation_RemovesMember(t *testing.T) {
	gateway := new(MockGateway)
	escalation := service.NewFailureEscalation(gateway)
	ctx := context.Background()

	gateway.On("RemoveMember", ctx, "g1", "u1", "some reason").Return(nil)

	escalation.RemoveMember(ctx, "g1", "u1", "some reason")

	gateway.AssertExpectations(t)
}

func TestEscalation_KickFailureIsNotRetried(t *testing.T) {
	gateway := new(MockGateway)
	escalation := service.NewFailureEscalation(gateway)
	ctx := context.Background()

	gateway.On("RemoveMember", ctx, "g1", "u1", mock.Anything).Return(assert.AnError)

	escalation.RemoveMember(ctx, "g1", "u1", "some reason")

	gateway.AssertNumberOfCalls(t, "RemoveMember", 1)
}
