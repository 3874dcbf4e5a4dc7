package avatar

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"user-directory/internal/adapter/repository"
	"user-directory/internal/adapter/storage"
	"user-directory/internal/domain/entity"
)

type Service struct {
	userRepo       repository.UserRepository
	storage        storage.ImageStorage
	imageProcessor storage.ImageProcessor
}

func NewService(userRepo repository.UserRepository, imageStorage storage.ImageStorage, imageProcessor storage.ImageProcessor) *Service {
	return &Service{
		userRepo:       userRepo,
		storage:        imageStorage,
		imageProcessor: imageProcessor,
	}
}

type UploadInput struct {
	UserID      int64
	File        io.Reader
	Filename    string
	ContentType string
}

// Upload resizes the image, stores it under a fresh object key and records
// the public URL on the user. Only active users can change their avatar.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*entity.User, error) {
	user, err := s.userRepo.GetActiveByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	processed, size, _, _, err := s.imageProcessor.Process(input.File)
	if err != nil {
		return nil, fmt.Errorf("processing image: %w", err)
	}

	ext := path.Ext(input.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("avatars/%d/%s%s", input.UserID, uuid.New().String(), ext)

	if err := s.storage.Upload(ctx, key, processed, input.ContentType, size); err != nil {
		return nil, fmt.Errorf("uploading to storage: %w", err)
	}

	user.AvatarURL = s.storage.GetURL(key)
	user.Touch()

	if err := s.userRepo.Update(ctx, user); err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	return user, nil
}
