package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

type FashionItemCreateRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	Category string `json:"category" validate:"required"`
	Color    string `json:"color"`
}

type OutfitCreateRequest struct {
	Date    string   `json:"date" validate:"required,datetime=2006-01-02"`
	Items   []string `json:"items" validate:"required,min=1"`
	Weather string   `json:"weather"`
}

func CreateFashionItem(ctx context.Context, fashion storage.FashionRepository, req FashionItemCreateRequest, now time.Time) (*internal.FashionItem, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	item := internal.FashionItem{
		ID:        uuid.NewString(),
		ImageURL:  req.ImageURL,
		Category:  req.Category,
		Color:     req.Color,
		CreatedAt: now,
	}
	if err := fashion.SaveFashionItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func CreateOutfit(ctx context.Context, fashion storage.FashionRepository, req OutfitCreateRequest, now time.Time) (*internal.Outfit, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	outfit := internal.Outfit{
		ID:        uuid.NewString(),
		Date:      req.Date,
		Items:     req.Items,
		Weather:   req.Weather,
		CreatedAt: now,
	}
	if err := fashion.SaveOutfit(ctx, &outfit); err != nil {
		return nil, err
	}
	return &outfit, nil
}
