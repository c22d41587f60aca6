package fanout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/repository"
)

// TargetResolver turns a user id into that user's current delivery targets.
type TargetResolver struct {
	tokens repository.DeviceTokenRepository
	users  repository.UserRepository
}

func NewTargetResolver(tokens repository.DeviceTokenRepository, users repository.UserRepository) *TargetResolver {
	return &TargetResolver{tokens: tokens, users: users}
}

// Resolve returns the user's registered device tokens. When the user has
// none, it falls back to the single legacy token on the user row, a
// leftover from before per-device tracking; the fallback is never merged
// with registered tokens.
func (r *TargetResolver) Resolve(ctx context.Context, userID uuid.UUID) ([]domain.DeviceToken, error) {
	targets, err := r.tokens.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list device tokens: %w", err)
	}
	if len(targets) > 0 {
		return targets, nil
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("legacy token lookup: %w", err)
	}
	if user.FCMToken == nil || *user.FCMToken == "" {
		return nil, nil
	}

	return []domain.DeviceToken{{UserID: userID, Token: *user.FCMToken}}, nil
}

// Email returns the user's email address, or "" when the user has none on
// file. An empty address means the email channel is skipped, not an error.
func (r *TargetResolver) Email(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("email lookup: %w", err)
	}
	return user.Email, nil
}
