package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/service"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

func CreatePomodoroSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PomodoroCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		session, err := service.CreatePomodoroSession(c.Request.Context(), app.Store(), &req, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create session")
			return
		}
		HandleCreated(c, app.Logger(), session)
	}
}

func ListPomodoroSessions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		filter := storage.SessionFilter{
			TimerID: c.Query("timerId"),
			Status:  c.Query("status"),
			Limit:   limit,
		}
		sessions, err := app.Store().ListSessions(c.Request.Context(), filter)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sessions")
			return
		}
		HandleSuccess(c, app.Logger(), sessions, nil)
	}
}

func GetPomodoroSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := app.Store().GetSession(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to fetch session")
			return
		}
		HandleSuccess(c, app.Logger(), session, nil)
	}
}

func UpdatePomodoroSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PomodoroUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		session, err := service.UpdatePomodoroSession(c.Request.Context(), app.Store(), c.Param("id"), &req, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to update session")
			return
		}
		HandleSuccess(c, app.Logger(), session, nil)
	}
}

func DeletePomodoroSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Store().DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to delete session")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"message": "Session deleted successfully"}, nil)
	}
}

func PomodoroStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := storage.SessionFilter{
			TimerID: c.Query("timerId"),
			Status:  internal.PomodoroCompleted,
		}
		sessions, err := app.Store().ListSessions(c.Request.Context(), filter)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sessions for stats")
			return
		}
		HandleSuccess(c, app.Logger(), service.CalculatePomodoroStats(sessions, time.Now().UTC()), nil)
	}
}

func MarkTimerPomodoro(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		timer, err := service.MarkTimerPomodoro(c.Request.Context(), app.Store(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to set pomodoro mode")
			return
		}
		HandleSuccess(c, app.Logger(), timer, nil)
	}
}
