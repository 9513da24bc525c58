package identity

import "context"

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByPIN(ctx context.Context, pin string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context) ([]*User, error)
}
