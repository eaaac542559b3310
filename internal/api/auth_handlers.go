package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal/auth"
	"github.com/kearth1516-lgtm/my-app/internal/response"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(app App, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		token, err := tokens.Login(req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.Unauthorized("Invalid username or password"))
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{
			"accessToken": token,
			"tokenType":   "bearer",
		}, nil)
	}
}
