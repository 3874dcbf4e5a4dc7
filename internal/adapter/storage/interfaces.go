package storage

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

type ImageStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	GetURL(key string) string
	Delete(ctx context.Context, key string) error
}

type ImageProcessor interface {
	Process(reader io.Reader) (io.Reader, int64, int, int, error)
}
