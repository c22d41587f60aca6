package fanout

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/repository"
)

// Reconciler removes delivery targets the push provider reported as
// permanently dead. Transient failures are logged and left alone; the
// notification itself is never replayed, so there is nothing to retry.
type Reconciler struct {
	tokens repository.DeviceTokenRepository
	logger *slog.Logger
}

func NewReconciler(tokens repository.DeviceTokenRepository, logger *slog.Logger) *Reconciler {
	return &Reconciler{tokens: tokens, logger: logger}
}

// Reconcile deletes every stored token that failed with a permanent error
// code and returns the number of distinct tokens removed. Deletions run
// concurrently and independently; one failing delete never blocks the
// others. Re-running against already-removed tokens is a no-op.
func (r *Reconciler) Reconcile(ctx context.Context, userID uuid.UUID, outcomes []domain.DeliveryResult) int {
	failed := make(map[string]domain.ErrorCode)
	for _, o := range outcomes {
		if o.Success {
			continue
		}
		if o.ErrorCode.Permanent() {
			failed[o.Target.Token] = o.ErrorCode
		} else {
			r.logger.Debug("transient push failure, keeping token",
				"user_id", userID, "code", o.ErrorCode)
		}
	}
	if len(failed) == 0 {
		return 0
	}

	var removed atomic.Int64
	var wg sync.WaitGroup
	for token, code := range failed {
		wg.Add(1)
		go func(token string, code domain.ErrorCode) {
			defer wg.Done()
			n, err := r.tokens.DeleteByUserAndToken(ctx, userID, token)
			if err != nil {
				r.logger.Warn("failed to remove dead token",
					"user_id", userID, "code", code, "error", err)
				return
			}
			if n > 0 {
				r.logger.Info("removed dead token",
					"user_id", userID, "code", code, "rows", n)
				removed.Add(1)
			}
		}(token, code)
	}
	wg.Wait()

	return int(removed.Load())
}
