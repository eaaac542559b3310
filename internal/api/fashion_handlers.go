package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal/service"
)

func ListFashionItems(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := app.Store().ListFashionItems(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to list fashion items")
			return
		}
		HandleSuccess(c, app.Logger(), items, nil)
	}
}

func CreateFashionItem(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.FashionItemCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request body")
			return
		}
		item, err := service.CreateFashionItem(c.Request.Context(), app.Store(), req, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create fashion item")
			return
		}
		HandleCreated(c, app.Logger(), item)
	}
}

func ListOutfits(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		outfits, err := app.Store().ListOutfits(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to list outfits")
			return
		}
		HandleSuccess(c, app.Logger(), outfits, nil)
	}
}

func CreateOutfit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.OutfitCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request body")
			return
		}
		outfit, err := service.CreateOutfit(c.Request.Context(), app.Store(), req, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create outfit")
			return
		}
		HandleCreated(c, app.Logger(), outfit)
	}
}
