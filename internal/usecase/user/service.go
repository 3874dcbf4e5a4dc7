package user

import (
	"context"
	"fmt"

	"user-directory/internal/adapter/repository"
	"user-directory/internal/domain"
	"user-directory/internal/domain/entity"
	"user-directory/internal/infrastructure/auth"
)

type Service struct {
	userRepo       repository.UserRepository
	passwordHasher *auth.PasswordHasher
}

func NewService(userRepo repository.UserRepository, passwordHasher *auth.PasswordHasher) *Service {
	return &Service{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
	}
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
}

// Create registers a new active user. The repository's unique index backs up
// the existence check, so a concurrent create with the same email loses with
// ErrEmailAlreadyExists rather than producing a duplicate.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.User, error) {
	email := entity.NormalizeEmail(input.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := entity.NewUser(input.Name, email)
	user.PasswordHash = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID returns the user only while active; deactivated users read as
// not found.
func (s *Service) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.userRepo.GetActiveByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) ListAll(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.ListActive(ctx)
}

func (s *Service) SearchByName(ctx context.Context, fragment string) ([]entity.User, error) {
	matches, err := s.userRepo.SearchByName(ctx, fragment)
	if err != nil {
		return nil, err
	}

	active := make([]entity.User, 0, len(matches))
	for _, u := range matches {
		if u.Active {
			active = append(active, u)
		}
	}
	return active, nil
}

type UpdateInput struct {
	Name  *string
	Email *string
}

// Update applies a partial update to an active user. A changed email is
// checked for uniqueness against every other record, active or not.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*entity.User, error) {
	user, err := s.userRepo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := entity.NormalizeEmail(*input.Email)
		if email != "" && email != user.Email {
			taken, err := s.userRepo.ExistsByEmailExcludingID(ctx, email, id)
			if err != nil {
				return nil, fmt.Errorf("checking email: %w", err)
			}
			if taken {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
	}

	user.ApplyUpdate(input.Name, input.Email)
	user.Touch()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Deactivate soft-deletes the user. An already-inactive user reads as not
// found, matching the lookup behavior of the rest of the read surface.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.Active {
		return domain.ErrUserNotFound
	}

	user.Deactivate()

	return s.userRepo.Update(ctx, user)
}

func (s *Service) Reactivate(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Active {
		return nil, domain.ErrUserAlreadyActive
	}

	user.Reactivate()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.userRepo.ExistsByEmail(ctx, entity.NormalizeEmail(email))
}

func (s *Service) EmailExistsForOtherUser(ctx context.Context, email string, id int64) (bool, error) {
	return s.userRepo.ExistsByEmailExcludingID(ctx, entity.NormalizeEmail(email), id)
}
