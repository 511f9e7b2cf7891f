package activity

import (
	"context"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// Repository provides access to activity records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Activity, error)
	FindByRunnerID(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]Activity, int64, error)
	Save(ctx context.Context, act *Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
}
