package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal/service"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

func ListRecords(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := storage.RecordFilter{
			TimerID:   c.Query("timerId"),
			Tag:       c.Query("tag"),
			StartDate: c.Query("startDate"),
			EndDate:   c.Query("endDate"),
		}
		records, err := app.Store().ListRecords(c.Request.Context(), filter)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records")
			return
		}
		HandleSuccess(c, app.Logger(), records, nil)
	}
}

func GetRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := app.Store().GetRecord(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to fetch record")
			return
		}
		HandleSuccess(c, app.Logger(), record, nil)
	}
}

func CreateRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RecordCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		record, err := service.CreateRecord(c.Request.Context(), app.Store(), &req, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create record")
			return
		}
		HandleCreated(c, app.Logger(), record)
	}
}

func CreateManualRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ManualRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		record, err := service.CreateManualRecord(c.Request.Context(), app.Store(), &req, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to create manual record")
			return
		}
		HandleCreated(c, app.Logger(), record)
	}
}

func UpdateRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RecordUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		record, err := service.UpdateRecord(c.Request.Context(), app.Store(), c.Param("id"), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to update record")
			return
		}
		HandleSuccess(c, app.Logger(), record, nil)
	}
}

func DeleteRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Store().DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, errStatus(err), "Failed to delete record")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"message": "Record deleted successfully"}, nil)
	}
}

func RecordsSummary(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := storage.RecordFilter{
			TimerID: c.Query("timerId"),
			Tag:     c.Query("tag"),
		}
		records, err := app.Store().ListRecords(c.Request.Context(), filter)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records for summary")
			return
		}
		HandleSuccess(c, app.Logger(), service.SummarizeRecords(records), nil)
	}
}
