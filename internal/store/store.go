package store

import (
	"context"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

// Store is the local snapshot persistence for the activity cache. The
// app saves the registry after successful syncs and hydrates from the
// snapshot at startup so the UI has data before the first round trip.
type Store interface {
	UpsertActivities(ctx context.Context, activities []model.Activity) error
	GetActivities(ctx context.Context) ([]model.Activity, error)
	GetActivityByID(ctx context.Context, id string) (*model.Activity, error)
	DeleteActivity(ctx context.Context, id string) error

	// ReplaceAll swaps the whole snapshot for the given set atomically.
	ReplaceAll(ctx context.Context, activities []model.Activity) error

	Close() error
}
