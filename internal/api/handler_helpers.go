package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/response"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

// errStatus maps service/storage errors onto the HTTP taxonomy: missing
// documents are 404, validation failures and lifecycle violations 400,
// everything else 500.
func errStatus(err error) int {
	if errors.Is(err, storage.ErrNotFound) {
		return 404
	}
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return 400
	}
	return internal.StatusOf(err)
}

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString(requestIDKey)
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString(requestIDKey)
	logger.Debugf("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}

func HandleCreated(c *gin.Context, logger internal.Logger, data interface{}) {
	requestID := c.GetString(requestIDKey)
	logger.Debugf("[request_id=%s] Created", requestID)
	c.JSON(201, response.Success(data, nil))
}
