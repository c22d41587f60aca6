package fanout_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/service/fanout"
	"jobscaffold-backend/tests/mocks"
)

func strPtr(s string) *string { return &s }

func TestResolve_RegisteredTokensWinOverLegacy(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	users := new(mocks.UserRepository)
	r := fanout.NewTargetResolver(tokens, users)

	userID := uuid.New()
	tokens.On("ListByUser", mock.Anything, userID).Return([]domain.DeviceToken{
		{UserID: userID, Token: "tok-1"},
		{UserID: userID, Token: "tok-2"},
	}, nil).Once()

	got, err := r.Resolve(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	users.AssertNotCalled(t, "GetByID")
}

func TestResolve_LegacyFallbackWhenNoTokens(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	users := new(mocks.UserRepository)
	r := fanout.NewTargetResolver(tokens, users)

	userID := uuid.New()
	tokens.On("ListByUser", mock.Anything, userID).Return([]domain.DeviceToken{}, nil).Once()
	users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:       userID,
		FCMToken: strPtr("legacy-tok"),
	}, nil).Once()

	got, err := r.Resolve(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "legacy-tok", got[0].Token)
	assert.Equal(t, userID, got[0].UserID)
}

func TestResolve_NoTokensNoLegacy(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	users := new(mocks.UserRepository)
	r := fanout.NewTargetResolver(tokens, users)

	userID := uuid.New()
	tokens.On("ListByUser", mock.Anything, userID).Return(nil, nil).Once()
	users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil).Once()

	got, err := r.Resolve(context.Background(), userID)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolve_UnknownUserIsNotAnError(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	users := new(mocks.UserRepository)
	r := fanout.NewTargetResolver(tokens, users)

	userID := uuid.New()
	tokens.On("ListByUser", mock.Anything, userID).Return(nil, nil).Once()
	users.On("GetByID", mock.Anything, userID).Return(nil, sql.ErrNoRows).Once()

	got, err := r.Resolve(context.Background(), userID)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolve_TokenStoreError(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	users := new(mocks.UserRepository)
	r := fanout.NewTargetResolver(tokens, users)

	userID := uuid.New()
	tokens.On("ListByUser", mock.Anything, userID).Return(nil, errors.New("db down")).Once()

	got, err := r.Resolve(context.Background(), userID)

	assert.Error(t, err)
	assert.Nil(t, got)
	users.AssertNotCalled(t, "GetByID")
}

func TestEmail_ReturnsAddress(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	users := new(mocks.UserRepository)
	r := fanout.NewTargetResolver(tokens, users)

	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:    userID,
		Email: "customer@example.com",
	}, nil).Once()

	addr, err := r.Email(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, "customer@example.com", addr)
}

func TestEmail_UnknownUserSkipsChannel(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	users := new(mocks.UserRepository)
	r := fanout.NewTargetResolver(tokens, users)

	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(nil, sql.ErrNoRows).Once()

	addr, err := r.Email(context.Background(), userID)

	assert.NoError(t, err)
	assert.Empty(t, addr)
}
