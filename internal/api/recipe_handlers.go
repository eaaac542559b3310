package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/service"
)

func ListRecipes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipes, err := app.Store().ListRecipes(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch recipes")
			return
		}
		filter := service.RecipeListFilter{
			Name: c.Query("name"),
			Tag:  c.Query("tag"),
		}
		if v := c.Query("favorite"); v != "" {
			favorite := v == "true"
			filter.Favorite = &favorite
		}
		HandleSuccess(c, app.Logger(), service.FilterRecipes(recipes, filter), nil)
	}
}

func GetRecipe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipe, err := app.Store().GetRecipe(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to fetch recipe")
			return
		}
		HandleSuccess(c, app.Logger(), recipe, nil)
	}
}

func CreateRecipe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RecipeCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		recipe, err := service.CreateRecipe(c.Request.Context(), app.Store(), &req, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create recipe")
			return
		}
		HandleCreated(c, app.Logger(), recipe)
	}
}

func UpdateRecipe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RecipeUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		recipe, err := service.UpdateRecipe(c.Request.Context(), app.Store(), c.Param("id"), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to update recipe")
			return
		}
		HandleSuccess(c, app.Logger(), recipe, nil)
	}
}

func DeleteRecipe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Store().DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to delete recipe")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"message": "Recipe deleted successfully"}, nil)
	}
}

func RecordCooking(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipe, err := service.RecordCooking(c.Request.Context(), app.Store(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to record cooking")
			return
		}
		HandleSuccess(c, app.Logger(), recipe, nil)
	}
}

type RecipeImportRequest struct {
	URL string `json:"url"`
}

func ImportRecipe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecipeImportRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
			HandleError(c, app.Logger(), internal.ErrInvalidState("url required"), 400, "Invalid request")
			return
		}
		recipe, err := service.ImportRecipe(c.Request.Context(), app.Scraper(), app.Store(), req.URL, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to import recipe")
			return
		}
		HandleCreated(c, app.Logger(), recipe)
	}
}

type RecipeSuggestRequest struct {
	Ingredients []string `json:"ingredients"`
}

func SuggestRecipes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecipeSuggestRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Ingredients) == 0 {
			HandleError(c, app.Logger(), internal.ErrInvalidState("ingredients required"), 400, "Invalid request")
			return
		}
		suggestion, err := app.Suggester().Suggest(c.Request.Context(), req.Ingredients)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to get suggestion")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"suggestion": suggestion}, nil)
	}
}
