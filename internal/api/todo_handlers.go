package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal/service"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

func ListTodos(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 100
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		filter := storage.TodoFilter{
			Priority: c.Query("priority"),
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
			Limit:    limit,
		}
		if v := c.Query("completed"); v != "" {
			completed := v == "true"
			filter.Completed = &completed
		}
		todos, err := app.Store().ListTodos(c.Request.Context(), filter)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch todos")
			return
		}
		HandleSuccess(c, app.Logger(), todos, nil)
	}
}

func GetTodo(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		todo, err := app.Store().GetTodo(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to fetch todo")
			return
		}
		HandleSuccess(c, app.Logger(), todo, nil)
	}
}

func CreateTodo(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.TodoCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		todo, err := service.CreateTodo(c.Request.Context(), app.Store(), &req, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create todo")
			return
		}
		HandleCreated(c, app.Logger(), todo)
	}
}

func UpdateTodo(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.TodoUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		todo, err := service.UpdateTodo(c.Request.Context(), app.Store(), c.Param("id"), &req, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to update todo")
			return
		}
		HandleSuccess(c, app.Logger(), todo, nil)
	}
}

func DeleteTodo(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Store().DeleteTodo(c.Request.Context(), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to delete todo")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"message": "Todo deleted successfully"}, nil)
	}
}

func CompleteTodo(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		todo, successor, err := service.CompleteTodo(c.Request.Context(), app.Store(), c.Param("id"), time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to complete todo")
			return
		}
		var meta map[string]any
		if successor != nil {
			meta = map[string]any{"generated": successor}
		}
		HandleSuccess(c, app.Logger(), todo, meta)
	}
}

func GenerateRecurringTodos(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := service.GenerateRecurringTodos(c.Request.Context(), app.Store(), time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to generate recurring todos")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"generated": count}, nil)
	}
}

func ListTodoCategories(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		todos, err := app.Store().ListTodos(c.Request.Context(), storage.TodoFilter{})
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch todos")
			return
		}
		HandleSuccess(c, app.Logger(), service.TodoCategories(todos), nil)
	}
}

func ListTodoTags(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		todos, err := app.Store().ListTodos(c.Request.Context(), storage.TodoFilter{})
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch todos")
			return
		}
		HandleSuccess(c, app.Logger(), service.TodoTags(todos), nil)
	}
}
