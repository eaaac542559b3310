package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal/auth"
	"github.com/kearth1516-lgtm/my-app/internal/config"
)

// BuildRouter wires every route group, the CORS policy, and the auth
// middleware into a ready-to-serve engine.
func BuildRouter(app App, tokens *auth.TokenService, cfg *config.Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(auth.Middleware(tokens))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Timer App Backend API", "status": "running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")

	api.POST("/auth/login", Login(app, tokens))

	timers := api.Group("/timers")
	{
		timers.GET("", ListTimers(app))
		timers.POST("", CreateTimer(app))
		timers.GET("/tags/all", ListAllTags(app))
		timers.POST("/tags", CreateTag(app))
		timers.POST("/reorder", ReorderTimers(app))
		timers.PUT("/:id", UpdateTimer(app))
		timers.DELETE("/:id", DeleteTimer(app))
		timers.PUT("/:id/favorite", ToggleTimerFavorite(app))
		timers.POST("/:id/start", StartTimer(app))
		timers.POST("/:id/stop", StopTimer(app))
		timers.GET("/:id/records", GetTimerRecords(app))
	}

	records := api.Group("/records")
	{
		records.GET("", ListRecords(app))
		records.POST("", CreateRecord(app))
		records.POST("/manual", CreateManualRecord(app))
		records.GET("/stats/summary", RecordsSummary(app))
		records.GET("/:id", GetRecord(app))
		records.PUT("/:id", UpdateRecord(app))
		records.DELETE("/:id", DeleteRecord(app))
	}

	pomodoro := api.Group("/pomodoro")
	{
		pomodoro.POST("/sessions", CreatePomodoroSession(app))
		pomodoro.GET("/sessions", ListPomodoroSessions(app))
		pomodoro.GET("/sessions/:id", GetPomodoroSession(app))
		pomodoro.PUT("/sessions/:id", UpdatePomodoroSession(app))
		pomodoro.DELETE("/sessions/:id", DeletePomodoroSession(app))
		pomodoro.GET("/stats", PomodoroStats(app))
		pomodoro.POST("/timers/:id/pomodoro", MarkTimerPomodoro(app))
	}

	todos := api.Group("/todos")
	{
		todos.GET("", ListTodos(app))
		todos.POST("", CreateTodo(app))
		todos.POST("/recurring/generate", GenerateRecurringTodos(app))
		todos.GET("/categories", ListTodoCategories(app))
		todos.GET("/tags", ListTodoTags(app))
		todos.GET("/:id", GetTodo(app))
		todos.PUT("/:id", UpdateTodo(app))
		todos.DELETE("/:id", DeleteTodo(app))
		todos.POST("/:id/complete", CompleteTodo(app))
	}

	api.GET("/settings", GetSettings(app))
	api.PUT("/settings", UpdateSettings(app))

	recipes := api.Group("/recipes")
	{
		recipes.GET("", ListRecipes(app))
		recipes.POST("", CreateRecipe(app))
		recipes.POST("/import", ImportRecipe(app))
		recipes.POST("/suggest", SuggestRecipes(app))
		recipes.GET("/:id", GetRecipe(app))
		recipes.PUT("/:id", UpdateRecipe(app))
		recipes.DELETE("/:id", DeleteRecipe(app))
		recipes.POST("/:id/cook", RecordCooking(app))
	}

	api.POST("/upload/image", UploadImage(app, cfg.UploadDir))

	home := api.Group("/home")
	{
		home.GET("/images", GetRandomHomeImage(app))
		home.POST("/images", CreateHomeImage(app))
		home.GET("/dashboard", GetDashboard(app))
	}

	fashion := api.Group("/fashion")
	{
		fashion.GET("/items", ListFashionItems(app))
		fashion.POST("/items", CreateFashionItem(app))
		fashion.GET("/outfits", ListOutfits(app))
		fashion.POST("/outfits", CreateOutfit(app))
	}

	return r
}
