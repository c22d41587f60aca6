package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"jobscaffold-backend/internal/domain"
)

// DeviceTokenRepository reads and prunes the push-target store. Token
// registration is done by the clients and is not part of this service.
type DeviceTokenRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DeviceToken, error)
	// DeleteByUserAndToken removes every row matching the pair and returns
	// the number of rows deleted. Deleting an absent token is a no-op.
	DeleteByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (int64, error)
}

type deviceTokenRepository struct {
	db *sqlx.DB
}

func NewDeviceTokenRepository(db *sqlx.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

func (r *deviceTokenRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DeviceToken, error) {
	var tokens []domain.DeviceToken
	query := `SELECT * FROM device_tokens WHERE user_id = $1 ORDER BY created_at`
	err := r.db.SelectContext(ctx, &tokens, query, userID)
	return tokens, err
}

func (r *deviceTokenRepository) DeleteByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (int64, error) {
	query := `DELETE FROM device_tokens WHERE user_id = $1 AND token = $2`
	res, err := r.db.ExecContext(ctx, query, userID, token)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
