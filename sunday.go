package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ---------------------------------------------------------------
// Sunday service events
// ---------------------------------------------------------------

type SundayEventRequest struct {
	EventTitle string     `json:"event_title"`
	EventDate  string     `json:"event_date"`
	CreatedBy  *uuid.UUID `json:"created_by"`
}

func (app *App) CreateSundayEvent(c *gin.Context) {
	var body SundayEventRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		strings.TrimSpace(body.EventTitle) == "" || body.EventDate == "" || body.CreatedBy == nil {
		jsonError(c, http.StatusBadRequest, "Event title, event date and created_by user ID are required.")
		return
	}

	date, err := parseDate(body.EventDate)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid event date (use RFC3339 or YYYY-MM-DD)")
		return
	}

	event := SundayServiceEvent{
		EventTitle: strings.TrimSpace(body.EventTitle),
		EventDate:  date,
		CreatedBy:  *body.CreatedBy,
	}
	if err := app.DB.Create(&event).Error; err != nil {
		storeError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (app *App) ListSundayEvents(c *gin.Context) {
	var events []SundayServiceEvent
	if err := app.DB.Order("event_date DESC").Find(&events).Error; err != nil {
		storeError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (app *App) UpdateSundayEvent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var body SundayEventRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		strings.TrimSpace(body.EventTitle) == "" || body.EventDate == "" {
		jsonError(c, http.StatusBadRequest, "Event title and event date are required.")
		return
	}

	date, err := parseDate(body.EventDate)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid event date (use RFC3339 or YYYY-MM-DD)")
		return
	}

	var event SundayServiceEvent
	if err := app.DB.First(&event, "id = ?", id).Error; err != nil {
		storeError(c, err, "Event not found")
		return
	}

	event.EventTitle = strings.TrimSpace(body.EventTitle)
	event.EventDate = date
	if err := app.DB.Save(&event).Error; err != nil {
		storeError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteSundayEvent removes the event and every report filed under it
// in one transaction, so a failed delete never strands child rows.
func (app *App) DeleteSundayEvent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var event SundayServiceEvent
	if err := app.DB.First(&event, "id = ?", id).Error; err != nil {
		storeError(c, err, "Event not found")
		return
	}

	err := app.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&SundayServiceReport{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		storeError(c, err, "Event not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------
// Sunday service reports
// ---------------------------------------------------------------

type SundayReportRequest struct {
	EventID         *uuid.UUID      `json:"event_id"`
	ChapterID       *uuid.UUID      `json:"chapter_id"`
	SubmittedBy     *uuid.UUID      `json:"submitted_by"`
	Attendance      int             `json:"attendance"`
	FirstTimers     int             `json:"first_timers"`
	NewConverts     int             `json:"new_converts"`
	HolyGhostFilled int             `json:"holy_ghost_filled"`
	Offering        decimal.Decimal `json:"offering"`
	Tithe           decimal.Decimal `json:"tithe"`
}

// SubmitSundayReport is a plain insert: one report per (event, chapter),
// and a second submission is a conflict the caller resolves by editing
// the existing report.
func (app *App) SubmitSundayReport(c *gin.Context) {
	var body SundayReportRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.EventID == nil || body.ChapterID == nil || body.SubmittedBy == nil {
		jsonError(c, http.StatusBadRequest, "event_id, chapter_id, and submitted_by are required.")
		return
	}

	report := SundayServiceReport{
		EventID:         *body.EventID,
		ChapterID:       *body.ChapterID,
		SubmittedBy:     *body.SubmittedBy,
		Attendance:      body.Attendance,
		FirstTimers:     body.FirstTimers,
		NewConverts:     body.NewConverts,
		HolyGhostFilled: body.HolyGhostFilled,
		Offering:        body.Offering,
		Tithe:           body.Tithe,
	}
	if err := app.DB.Create(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			jsonError(c, http.StatusConflict, "A report for this chapter has already been submitted for this event.")
			return
		}
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusCreated, report)
}

type sundayReportView struct {
	SundayServiceReport
	ChapterName string `json:"chapter_name"`
	GroupName   string `json:"group_name"`
}

func (app *App) GetSundayReportsForEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var views []sundayReportView
	err := app.DB.Model(&SundayServiceReport{}).
		Select("sunday_service_reports.*, chapters.chapter_name, groups.group_name").
		Joins("JOIN chapters ON chapters.id = sunday_service_reports.chapter_id").
		Joins("JOIN groups ON groups.id = chapters.group_id").
		Where("sunday_service_reports.event_id = ?", eventID).
		Order("groups.group_name, chapters.chapter_name").
		Scan(&views).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, views)
}

func (app *App) UpdateSundayReport(c *gin.Context) {
	id, ok := parseUUIDParam(c, "reportId")
	if !ok {
		return
	}

	var body SundayReportRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.SubmittedBy == nil {
		jsonError(c, http.StatusBadRequest, "submitted_by (the user ID of the editor) is required.")
		return
	}

	var report SundayServiceReport
	if err := app.DB.First(&report, "id = ?", id).Error; err != nil {
		storeError(c, err, "Report not found")
		return
	}

	report.Attendance = body.Attendance
	report.FirstTimers = body.FirstTimers
	report.NewConverts = body.NewConverts
	report.HolyGhostFilled = body.HolyGhostFilled
	report.Offering = body.Offering
	report.Tithe = body.Tithe
	report.SubmittedBy = *body.SubmittedBy

	if err := app.DB.Save(&report).Error; err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, report)
}
