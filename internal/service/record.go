package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

// NoTagBucket groups untagged records in summaries.
const NoTagBucket = "no tag"

// NewRecordID keeps the timestamp-based id scheme of the records
// collection.
func NewRecordID(now time.Time) string {
	return fmt.Sprintf("record-%d", now.UnixMilli())
}

type RecordCreateRequest struct {
	TimerID   string    `json:"timerId" validate:"required"`
	TimerName string    `json:"timerName" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	Duration  int       `json:"duration" validate:"gte=0"`
	Date      string    `json:"date" validate:"required"`
	Tag       string    `json:"tag,omitempty"`
	Stamp     string    `json:"stamp,omitempty"`
	Comment   string    `json:"comment,omitempty"`
}

// ManualRecordRequest carries a full datetime in Date; the record's end
// time is set to it and the date is derived from it.
type ManualRecordRequest struct {
	TimerID   string `json:"timerId" validate:"required"`
	TimerName string `json:"timerName" validate:"required"`
	Duration  int    `json:"duration" validate:"gte=0"`
	Date      string `json:"date" validate:"required"`
	Tag       string `json:"tag,omitempty"`
}

type RecordUpdateRequest struct {
	Duration *int    `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Date     *string `json:"date,omitempty"`
	Tag      *string `json:"tag,omitempty"`
}

func CreateRecord(ctx context.Context, records storage.RecordRepository, req *RecordCreateRequest, now time.Time) (*internal.Record, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	record := &internal.Record{
		ID:        NewRecordID(now),
		TimerID:   req.TimerID,
		TimerName: req.TimerName,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		Date:      req.Date,
		Tag:       req.Tag,
		Stamp:     req.Stamp,
		Comment:   req.Comment,
	}
	if err := records.SaveRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func CreateManualRecord(ctx context.Context, records storage.RecordRepository, req *ManualRecordRequest, now time.Time) (*internal.Record, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	end, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, internal.ErrInvalidState("date must be an RFC3339 datetime")
	}
	record := &internal.Record{
		ID:        NewRecordID(now),
		TimerID:   req.TimerID,
		TimerName: req.TimerName,
		StartTime: end,
		EndTime:   end,
		Duration:  req.Duration,
		Date:      end.Format("2006-01-02"),
		Tag:       req.Tag,
	}
	if err := records.SaveRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateRecord edits duration, date, or tag. A new duration recomputes the
// end time; a new date shifts start and end while keeping the time of day.
func UpdateRecord(ctx context.Context, records storage.RecordRepository, id string, req *RecordUpdateRequest) (*internal.Record, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	record, err := records.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Duration != nil {
		record.Duration = *req.Duration
		record.EndTime = record.StartTime.Add(time.Duration(*req.Duration) * time.Second)
	}
	if req.Date != nil {
		day, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, internal.ErrInvalidState("date must be YYYY-MM-DD")
		}
		old := record.StartTime
		start := time.Date(day.Year(), day.Month(), day.Day(),
			old.Hour(), old.Minute(), old.Second(), 0, old.Location())
		record.StartTime = start
		record.EndTime = start.Add(time.Duration(record.Duration) * time.Second)
		record.Date = *req.Date
	}
	if req.Tag != nil {
		record.Tag = *req.Tag
	}

	if err := records.SaveRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

type TimerBucket struct {
	TimerID       string `json:"timerId"`
	TimerName     string `json:"timerName"`
	Count         int    `json:"count"`
	TotalDuration int    `json:"totalDuration"`
}

type TagBucket struct {
	Tag           string `json:"tag"`
	Count         int    `json:"count"`
	TotalDuration int    `json:"totalDuration"`
}

type RecordSummary struct {
	TotalCount      int           `json:"totalCount"`
	TotalDuration   int           `json:"totalDuration"`
	AverageDuration float64       `json:"averageDuration"`
	ByTimer         []TimerBucket `json:"byTimer"`
	ByTag           []TagBucket   `json:"byTag"`
}

// SummarizeRecords aggregates totals plus per-timer and per-tag breakdowns.
// Buckets appear in order of first occurrence; untagged records fall into
// the NoTagBucket.
func SummarizeRecords(records []internal.Record) RecordSummary {
	summary := RecordSummary{
		ByTimer: []TimerBucket{},
		ByTag:   []TagBucket{},
	}
	timerIdx := make(map[string]int)
	tagIdx := make(map[string]int)

	for _, r := range records {
		summary.TotalCount++
		summary.TotalDuration += r.Duration

		i, ok := timerIdx[r.TimerID]
		if !ok {
			i = len(summary.ByTimer)
			timerIdx[r.TimerID] = i
			summary.ByTimer = append(summary.ByTimer, TimerBucket{
				TimerID:   r.TimerID,
				TimerName: r.TimerName,
			})
		}
		summary.ByTimer[i].Count++
		summary.ByTimer[i].TotalDuration += r.Duration

		tag := r.Tag
		if tag == "" {
			tag = NoTagBucket
		}
		j, ok := tagIdx[tag]
		if !ok {
			j = len(summary.ByTag)
			tagIdx[tag] = j
			summary.ByTag = append(summary.ByTag, TagBucket{Tag: tag})
		}
		summary.ByTag[j].Count++
		summary.ByTag[j].TotalDuration += r.Duration
	}

	if summary.TotalCount > 0 {
		summary.AverageDuration = float64(summary.TotalDuration) / float64(summary.TotalCount)
	}
	return summary
}
