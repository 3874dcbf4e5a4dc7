package auth

import (
	"context"
	"time"

	"user-directory/internal/adapter/repository"
	"user-directory/internal/domain"
	"user-directory/internal/domain/entity"
	"user-directory/internal/infrastructure/auth"
)

type Service struct {
	userRepo       repository.UserRepository
	jwtSvc         *auth.JWTService
	passwordHasher *auth.PasswordHasher
}

func NewService(userRepo repository.UserRepository, jwtSvc *auth.JWTService, passwordHasher *auth.PasswordHasher) *Service {
	return &Service{
		userRepo:       userRepo,
		jwtSvc:         jwtSvc,
		passwordHasher: passwordHasher,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Login verifies the password against the stored bcrypt hash. Lookup
// failures and bad passwords are indistinguishable to the caller, and
// deactivated users cannot log in.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, *entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := s.passwordHasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtSvc.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt}, user, nil
}
