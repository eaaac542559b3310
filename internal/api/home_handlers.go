package api

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/service"
)

// GetRandomHomeImage picks one image at random from the rotation pool.
func GetRandomHomeImage(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		images, err := app.Store().ListHomeImages(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to list home images")
			return
		}
		if len(images) == 0 {
			HandleError(c, app.Logger(), internal.ErrNotFound("no home images registered"), 404, "No images")
			return
		}
		HandleSuccess(c, app.Logger(), images[rand.Intn(len(images))], nil)
	}
}

func CreateHomeImage(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.HomeImageCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request body")
			return
		}
		image, err := service.CreateHomeImage(c.Request.Context(), app.Store(), req, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create home image")
			return
		}
		HandleCreated(c, app.Logger(), image)
	}
}

// GetDashboard aggregates the home screen payload. Weather is best effort:
// a failed lookup yields a null field, not an error response.
func GetDashboard(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var image *internal.HomeImage
		images, err := app.Store().ListHomeImages(ctx)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to list home images")
			return
		}
		if len(images) > 0 {
			picked := images[rand.Intn(len(images))]
			image = &picked
		}

		var weather map[string]any
		if w, err := app.Weather().Current(ctx); err != nil {
			requestID := c.GetString(requestIDKey)
			app.Logger().Warnf("[request_id=%s] Weather lookup failed: %v", requestID, err)
		} else {
			weather = w
		}

		HandleSuccess(c, app.Logger(), gin.H{
			"image":   image,
			"weather": weather,
		}, nil)
	}
}
