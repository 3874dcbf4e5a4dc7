package repository

import (
	"context"

	"user-directory/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// UserRepository is the durable keyed store for user records. Emails are
// expected to arrive already normalized; lookups never leak driver errors,
// missing rows surface as domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetActiveByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcludingID(ctx context.Context, email string, id int64) (bool, error)
	ListActive(ctx context.Context) ([]entity.User, error)
	SearchByName(ctx context.Context, fragment string) ([]entity.User, error)
}
