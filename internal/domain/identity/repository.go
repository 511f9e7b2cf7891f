package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// RunnerRepository provides access to runner records
type RunnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Runner, error)
	FindByPhone(ctx context.Context, phone string) (*Runner, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Runner, int64, error)
	Save(ctx context.Context, runner *Runner) error
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	// FindIDsByReferredBy returns the IDs of runners whose referral reference
	// equals the given value. Referral counts and earnings are derived from
	// this set, not stored.
	FindIDsByReferredBy(ctx context.Context, referredBy string) ([]uuid.UUID, error)
	CountByReferredBy(ctx context.Context, referredBy string) (int64, error)
}
