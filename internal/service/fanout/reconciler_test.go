package fanout_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/service/fanout"
	"jobscaffold-backend/tests/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func outcome(token string, success bool, code domain.ErrorCode) domain.DeliveryResult {
	return domain.DeliveryResult{
		Target:    domain.DeviceToken{Token: token},
		Success:   success,
		ErrorCode: code,
	}
}

func TestReconcile_RemovesOnlyPermanentFailures(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	r := fanout.NewReconciler(tokens, testLogger())

	userID := uuid.New()
	tokens.On("DeleteByUserAndToken", mock.Anything, userID, "dead-1").Return(int64(1), nil).Once()
	tokens.On("DeleteByUserAndToken", mock.Anything, userID, "dead-2").Return(int64(1), nil).Once()

	removed := r.Reconcile(context.Background(), userID, []domain.DeliveryResult{
		outcome("ok", true, ""),
		outcome("dead-1", false, domain.ErrTokenNotRegistered),
		outcome("dead-2", false, domain.ErrTokenInvalid),
		outcome("busy", false, domain.ErrRateLimited),
		outcome("down", false, domain.ErrUnavailable),
		outcome("boom", false, domain.ErrInternal),
	})

	assert.Equal(t, 2, removed)
	tokens.AssertExpectations(t)
	tokens.AssertNotCalled(t, "DeleteByUserAndToken", mock.Anything, userID, "busy")
	tokens.AssertNotCalled(t, "DeleteByUserAndToken", mock.Anything, userID, "down")
	tokens.AssertNotCalled(t, "DeleteByUserAndToken", mock.Anything, userID, "boom")
}

func TestReconcile_NoPermanentFailures(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	r := fanout.NewReconciler(tokens, testLogger())

	removed := r.Reconcile(context.Background(), uuid.New(), []domain.DeliveryResult{
		outcome("ok", true, ""),
		outcome("busy", false, domain.ErrRateLimited),
	})

	assert.Equal(t, 0, removed)
	tokens.AssertNotCalled(t, "DeleteByUserAndToken")
}

func TestReconcile_AlreadyRemovedTokenNotCounted(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	r := fanout.NewReconciler(tokens, testLogger())

	userID := uuid.New()
	tokens.On("DeleteByUserAndToken", mock.Anything, userID, "gone").Return(int64(0), nil).Once()

	removed := r.Reconcile(context.Background(), userID, []domain.DeliveryResult{
		outcome("gone", false, domain.ErrTokenNotRegistered),
	})

	assert.Equal(t, 0, removed)
}

func TestReconcile_OneFailingDeleteDoesNotBlockOthers(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	r := fanout.NewReconciler(tokens, testLogger())

	userID := uuid.New()
	tokens.On("DeleteByUserAndToken", mock.Anything, userID, "dead-1").Return(int64(0), errors.New("db down")).Once()
	tokens.On("DeleteByUserAndToken", mock.Anything, userID, "dead-2").Return(int64(1), nil).Once()

	removed := r.Reconcile(context.Background(), userID, []domain.DeliveryResult{
		outcome("dead-1", false, domain.ErrTokenInvalid),
		outcome("dead-2", false, domain.ErrTokenNotRegistered),
	})

	assert.Equal(t, 1, removed)
	tokens.AssertExpectations(t)
}

func TestReconcile_DuplicateTokenDeletedOnce(t *testing.T) {
	tokens := new(mocks.DeviceTokenRepository)
	r := fanout.NewReconciler(tokens, testLogger())

	userID := uuid.New()
	tokens.On("DeleteByUserAndToken", mock.Anything, userID, "dead").Return(int64(2), nil).Once()

	removed := r.Reconcile(context.Background(), userID, []domain.DeliveryResult{
		outcome("dead", false, domain.ErrTokenNotRegistered),
		outcome("dead", false, domain.ErrTokenInvalid),
	})

	assert.Equal(t, 1, removed)
	tokens.AssertNumberOfCalls(t, "DeleteByUserAndToken", 1)
}
