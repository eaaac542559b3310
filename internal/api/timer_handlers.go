package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/service"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

func ListTimers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		timers, err := app.Store().ListTimers(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch timers")
			return
		}
		HandleSuccess(c, app.Logger(), timers, nil)
	}
}

func CreateTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.TimerCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateTimerCreateRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}
		timer, err := service.CreateTimer(c.Request.Context(), app.Store(), &req, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create timer")
			return
		}
		HandleCreated(c, app.Logger(), timer)
	}
}

func UpdateTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.TimerUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		timer, err := service.UpdateTimer(c.Request.Context(), app.Store(), c.Param("id"), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to update timer")
			return
		}
		HandleSuccess(c, app.Logger(), timer, nil)
	}
}

func DeleteTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := service.DeleteTimer(c.Request.Context(), app.Store(), app.Sessions(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to delete timer")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"message": "Timer deleted successfully"}, nil)
	}
}

func ToggleTimerFavorite(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		timer, err := service.ToggleFavorite(c.Request.Context(), app.Store(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to toggle favorite")
			return
		}
		HandleSuccess(c, app.Logger(), timer, nil)
	}
}

type ReorderRequest struct {
	TimerIDs []string `json:"timerIds"`
}

func ReorderTimers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ReorderTimers(c.Request.Context(), app.Store(), req.TimerIDs); err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to reorder timers")
			return
		}
		timers, err := app.Store().ListTimers(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch timers")
			return
		}
		HandleSuccess(c, app.Logger(), timers, nil)
	}
}

func StartTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt, err := service.StartTimer(c.Request.Context(), app.Store(), app.Sessions(), c.Param("id"), time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to start timer")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{
			"message":   "Timer started",
			"timerId":   c.Param("id"),
			"startTime": startedAt,
		}, nil)
	}
}

func StopTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := service.StopTimer(
			c.Request.Context(), app.Store(), app.Store(), app.Sessions(),
			c.Param("id"), c.Query("tag"), c.Query("stamp"), c.Query("comment"), time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to stop timer")
			return
		}
		if record == nil {
			HandleSuccess(c, app.Logger(), gin.H{"message": "Timer stopped"}, nil)
			return
		}
		HandleSuccess(c, app.Logger(), record, nil)
	}
}

func GetTimerRecords(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := app.Store().GetTimer(c.Request.Context(), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Timer not found")
			return
		}
		records, err := app.Store().ListRecords(c.Request.Context(), storage.RecordFilter{TimerID: c.Param("id")})
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records")
			return
		}
		HandleSuccess(c, app.Logger(), records, nil)
	}
}

func ListAllTags(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := app.Store().ListTags(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch tags")
			return
		}
		HandleSuccess(c, app.Logger(), tags, nil)
	}
}

type TagCreateRequest struct {
	Name string `json:"name"`
}

func CreateTag(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TagCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			HandleError(c, app.Logger(), internal.ErrInvalidState("tag name required"), 400, "Invalid request")
			return
		}
		tag := &internal.Tag{ID: uuid.NewString(), Name: req.Name, CreatedAt: time.Now()}
		if err := app.Store().SaveTag(c.Request.Context(), tag); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save tag")
			return
		}
		HandleCreated(c, app.Logger(), tag)
	}
}
