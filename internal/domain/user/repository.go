package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByOAuth(ctx context.Context, provider, providerID string) (User, error)
	Update(ctx context.Context, u User) error
	UpdateRole(ctx context.Context, id string, role Role) error
	List(ctx context.Context, role *Role, page, limit int) ([]User, int64, error)
}
