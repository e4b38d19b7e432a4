package school

import "context"

type SchoolRepository interface {
	Create(ctx context.Context, s School) (School, error)
	GetByID(ctx context.Context, id string) (School, error)
	Update(ctx context.Context, s School) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]School, error)
}
