package service

import (
	"context"
	"errors"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

type SettingsUpdateRequest struct {
	Theme        *string `json:"theme,omitempty" validate:"omitempty,oneof=purple blue green pink orange"`
	SoundEnabled *bool   `json:"soundEnabled,omitempty"`
	OpenAIAPIKey *string `json:"openaiApiKey,omitempty"`
}

// GetSettings returns the singleton document, or defaults when it has
// never been written.
func GetSettings(ctx context.Context, repo storage.SettingsRepository) (*internal.Settings, error) {
	settings, err := repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return internal.DefaultSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateSettings applies a partial update, lazily creating the document
// from defaults on first write. Untouched fields keep their values.
func UpdateSettings(ctx context.Context, repo storage.SettingsRepository, req *SettingsUpdateRequest) (*internal.Settings, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	settings, err := GetSettings(ctx, repo)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.SoundEnabled != nil {
		settings.SoundEnabled = *req.SoundEnabled
	}
	if req.OpenAIAPIKey != nil {
		settings.OpenAIAPIKey = *req.OpenAIAPIKey
	}
	settings.ID = internal.SettingsID

	if err := repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
