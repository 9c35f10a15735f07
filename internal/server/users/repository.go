package users

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*User, error)
	Save(ctx context.Context, user *User) (*User, error)
	ListAdmins(ctx context.Context) ([]*User, error)
}
