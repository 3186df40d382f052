package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

// UploadPropertyImageInput — файл из админки.
type UploadPropertyImageInput struct {
	PropertyID  string
	FileName    string
	ContentType string
	Data        []byte
	IsPrimary   bool
}

type UploadPropertyImageUseCase interface {
	Execute(ctx context.Context, input UploadPropertyImageInput) (*domain.PropertyImage, error)
}

type SetPrimaryImageUseCase interface {
	Execute(ctx context.Context, propertyID, imageID string) error
}

type DeletePropertyImageUseCase interface {
	Execute(ctx context.Context, imageID string) error
}
