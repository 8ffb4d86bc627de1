package core

import "context"

// Repository is the storage of one API resource. T is the record, Q its query filter.
type Repository[T any, Q any] interface {
	Query(ctx context.Context, qf Q) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, obj T) (T, error)
	Update(ctx context.Context, obj T) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}
