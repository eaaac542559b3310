package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal/service"
)

func GetSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := service.GetSettings(c.Request.Context(), app.Store())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch settings")
			return
		}
		HandleSuccess(c, app.Logger(), settings, nil)
	}
}

func UpdateSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SettingsUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		settings, err := service.UpdateSettings(c.Request.Context(), app.Store(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to update settings")
			return
		}
		HandleSuccess(c, app.Logger(), settings, nil)
	}
}
