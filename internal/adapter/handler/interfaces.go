package handler

import (
	"context"

	"user-directory/internal/domain/entity"
	"user-directory/internal/usecase/auth"
	"user-directory/internal/usecase/avatar"
	"user-directory/internal/usecase/user"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type UserService interface {
	Create(ctx context.Context, input user.CreateInput) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListAll(ctx context.Context) ([]entity.User, error)
	SearchByName(ctx context.Context, fragment string) ([]entity.User, error)
	Update(ctx context.Context, id int64, input user.UpdateInput) (*entity.User, error)
	Deactivate(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, *entity.User, error)
}

type AvatarService interface {
	Upload(ctx context.Context, input avatar.UploadInput) (*entity.User, error)
}
