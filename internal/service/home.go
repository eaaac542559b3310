package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

type HomeImageCreateRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	Caption  string `json:"caption"`
}

func CreateHomeImage(ctx context.Context, images storage.HomeImageRepository, req HomeImageCreateRequest, now time.Time) (*internal.HomeImage, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	image := internal.HomeImage{
		ID:        uuid.NewString(),
		ImageURL:  req.ImageURL,
		Caption:   req.Caption,
		CreatedAt: now,
	}
	if err := images.SaveHomeImage(ctx, &image); err != nil {
		return nil, err
	}
	return &image, nil
}
