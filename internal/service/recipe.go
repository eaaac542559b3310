package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/scrape"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

type RecipeCreateRequest struct {
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	CookingTime int      `json:"cookingTime,omitempty" validate:"gte=0"`
	Source      string   `json:"source,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsFavorite  bool     `json:"isFavorite,omitempty"`
}

type RecipeUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	CookingTime *int     `json:"cookingTime,omitempty" validate:"omitempty,gte=0"`
	Source      *string  `json:"source,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsFavorite  *bool    `json:"isFavorite,omitempty"`
}

type RecipeListFilter struct {
	Name     string
	Tag      string
	Favorite *bool
}

func CreateRecipe(ctx context.Context, recipes storage.RecipeRepository, req *RecipeCreateRequest, now time.Time) (*internal.Recipe, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	recipe := &internal.Recipe{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Ingredients: orEmpty(req.Ingredients),
		Steps:       orEmpty(req.Steps),
		CookingTime: req.CookingTime,
		Source:      req.Source,
		Tags:        orEmpty(req.Tags),
		IsFavorite:  req.IsFavorite,
		TimesCooked: 0,
		CreatedAt:   now,
	}
	if err := recipes.SaveRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func UpdateRecipe(ctx context.Context, recipes storage.RecipeRepository, id string, req *RecipeUpdateRequest) (*internal.Recipe, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	recipe, err := recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Ingredients != nil {
		recipe.Ingredients = req.Ingredients
	}
	if req.Steps != nil {
		recipe.Steps = req.Steps
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	if req.Source != nil {
		recipe.Source = *req.Source
	}
	if req.Tags != nil {
		recipe.Tags = req.Tags
	}
	if req.IsFavorite != nil {
		recipe.IsFavorite = *req.IsFavorite
	}

	if err := recipes.SaveRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// RecordCooking bumps the cook counter; it never decreases.
func RecordCooking(ctx context.Context, recipes storage.RecipeRepository, id string) (*internal.Recipe, error) {
	recipe, err := recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.TimesCooked++
	if err := recipes.SaveRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// FilterRecipes applies conjunctive list filters: case-insensitive name
// substring, exact tag, favorite flag.
func FilterRecipes(recipes []internal.Recipe, f RecipeListFilter) []internal.Recipe {
	out := []internal.Recipe{}
	name := strings.ToLower(f.Name)
	for _, r := range recipes {
		if name != "" && !strings.Contains(strings.ToLower(r.Name), name) {
			continue
		}
		if f.Tag != "" && !containsString(r.Tags, f.Tag) {
			continue
		}
		if f.Favorite != nil && r.IsFavorite != *f.Favorite {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ImportRecipe scrapes an external recipe page and persists the result.
func ImportRecipe(ctx context.Context, scraper scrape.Scraper, recipes storage.RecipeRepository, url string, now time.Time) (*internal.Recipe, error) {
	scraped, err := scraper.Scrape(ctx, url)
	if err != nil {
		return nil, internal.ErrInvalidState("failed to import recipe: " + err.Error())
	}
	recipe := &internal.Recipe{
		ID:          uuid.NewString(),
		Name:        scraped.Name,
		Ingredients: orEmpty(scraped.Ingredients),
		Steps:       orEmpty(scraped.Steps),
		CookingTime: scraped.CookingTime,
		Source:      url,
		Tags:        orEmpty(scraped.Tags),
		TimesCooked: 0,
		CreatedAt:   now,
	}
	if err := recipes.SaveRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
