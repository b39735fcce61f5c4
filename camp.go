package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ---------------------------------------------------------------
// Camp events
// ---------------------------------------------------------------

type CampEventRequest struct {
	CampTitle string     `json:"camp_title"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	CreatedBy *uuid.UUID `json:"created_by"`
}

func (app *App) CreateCampEvent(c *gin.Context) {
	var body CampEventRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		strings.TrimSpace(body.CampTitle) == "" || body.CreatedBy == nil {
		jsonError(c, http.StatusBadRequest, "Camp title and created_by user ID are required.")
		return
	}

	event := CampEvent{CampTitle: strings.TrimSpace(body.CampTitle), CreatedBy: *body.CreatedBy}
	if body.StartDate != "" {
		start, err := parseDate(body.StartDate)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid start date (use RFC3339 or YYYY-MM-DD)")
			return
		}
		event.StartDate = start
	}
	if body.EndDate != "" {
		end, err := parseDate(body.EndDate)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid end date (use RFC3339 or YYYY-MM-DD)")
			return
		}
		event.EndDate = end
	}

	if err := app.DB.Create(&event).Error; err != nil {
		storeError(c, err, "Camp event not found")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (app *App) ListCampEvents(c *gin.Context) {
	var events []CampEvent
	if err := app.DB.Order("start_date DESC").Find(&events).Error; err != nil {
		storeError(c, err, "Camp event not found")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (app *App) UpdateCampEvent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "campId")
	if !ok {
		return
	}

	var body CampEventRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.CampTitle) == "" {
		jsonError(c, http.StatusBadRequest, "Camp title is required.")
		return
	}

	var event CampEvent
	if err := app.DB.First(&event, "id = ?", id).Error; err != nil {
		storeError(c, err, "Camp event not found")
		return
	}

	event.CampTitle = strings.TrimSpace(body.CampTitle)
	if body.StartDate != "" {
		if start, err := parseDate(body.StartDate); err == nil {
			event.StartDate = start
		}
	}
	if body.EndDate != "" {
		if end, err := parseDate(body.EndDate); err == nil {
			event.EndDate = end
		}
	}

	if err := app.DB.Save(&event).Error; err != nil {
		storeError(c, err, "Camp event not found")
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteCampEvent removes a camp and every attendance row, summary and
// attendee filed under it, all in one transaction.
func (app *App) DeleteCampEvent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "campId")
	if !ok {
		return
	}

	var event CampEvent
	if err := app.DB.First(&event, "id = ?", id).Error; err != nil {
		storeError(c, err, "Camp event not found")
		return
	}

	err := app.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("camp_id = ?", event.ID).Delete(&CampChapterAttendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("camp_id = ?", event.ID).Delete(&CampGroupSummary{}).Error; err != nil {
			return err
		}
		if err := tx.Where("camp_id = ?", event.ID).Delete(&CampAttendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		storeError(c, err, "Camp event not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------
// Daily chapter attendance — UPSERT on (camp, chapter, date)
// ---------------------------------------------------------------

type CampAttendanceRequest struct {
	CampID          *uuid.UUID `json:"camp_id"`
	ChapterID       *uuid.UUID `json:"chapter_id"`
	SubmittedBy     *uuid.UUID `json:"submitted_by"`
	ReportDate      string     `json:"report_date"`
	AttendanceCount *int       `json:"attendance_count"`
}

func (app *App) SubmitCampAttendance(c *gin.Context) {
	var body CampAttendanceRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.CampID == nil || body.ChapterID == nil || body.SubmittedBy == nil ||
		body.ReportDate == "" || body.AttendanceCount == nil {
		jsonError(c, http.StatusBadRequest, "camp_id, chapter_id, submitted_by, report_date, and attendance_count are required.")
		return
	}

	date, err := parseDate(body.ReportDate)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid report date (use RFC3339 or YYYY-MM-DD)")
		return
	}

	row := CampChapterAttendance{
		CampID:          *body.CampID,
		ChapterID:       *body.ChapterID,
		ReportDate:      date,
		SubmittedBy:     *body.SubmittedBy,
		AttendanceCount: *body.AttendanceCount,
	}

	// Single atomic insert-or-update on the natural key; two concurrent
	// submissions for the same key can never double-insert.
	err = app.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "camp_id"}, {Name: "chapter_id"}, {Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"attendance_count", "submitted_by", "last_updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		storeError(c, err, "Camp event not found")
		return
	}

	var stored CampChapterAttendance
	err = app.DB.Where("camp_id = ? AND chapter_id = ? AND report_date = ?",
		row.CampID, row.ChapterID, row.ReportDate).First(&stored).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, stored)
}

// ---------------------------------------------------------------
// Group camp summaries — UPSERT on (camp, group)
// ---------------------------------------------------------------

type CampSummaryRequest struct {
	CampID            *uuid.UUID `json:"camp_id"`
	GroupID           *uuid.UUID `json:"group_id"`
	SubmittedBy       *uuid.UUID `json:"submitted_by"`
	TotalPastors      int        `json:"total_pastors"`
	TotalCoordinators int        `json:"total_coordinators"`
	TotalLeaders      int        `json:"total_leaders"`
	TotalMembers      int        `json:"total_members"`
	TotalFirstTimers  int        `json:"total_first_timers"`
	TotalBaptised     int        `json:"total_baptised"`
}

func (app *App) SubmitCampSummary(c *gin.Context) {
	var body CampSummaryRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.CampID == nil || body.GroupID == nil || body.SubmittedBy == nil {
		jsonError(c, http.StatusBadRequest, "camp_id, group_id, and submitted_by are required.")
		return
	}

	row := CampGroupSummary{
		CampID:            *body.CampID,
		GroupID:           *body.GroupID,
		SubmittedBy:       *body.SubmittedBy,
		TotalPastors:      body.TotalPastors,
		TotalCoordinators: body.TotalCoordinators,
		TotalLeaders:      body.TotalLeaders,
		TotalMembers:      body.TotalMembers,
		TotalFirstTimers:  body.TotalFirstTimers,
		TotalBaptised:     body.TotalBaptised,
	}

	err := app.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "camp_id"}, {Name: "group_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_pastors", "total_coordinators", "total_leaders", "total_members",
			"total_first_timers", "total_baptised", "submitted_by", "last_updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		storeError(c, err, "Camp event not found")
		return
	}

	var stored CampGroupSummary
	err = app.DB.Where("camp_id = ? AND group_id = ?", row.CampID, row.GroupID).First(&stored).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, stored)
}

// ---------------------------------------------------------------
// Full camp report — the aggregation reader
// ---------------------------------------------------------------

type campAttendanceView struct {
	CampChapterAttendance
	ChapterName string `json:"chapter_name"`
	GroupName   string `json:"group_name"`
}

type campSummaryView struct {
	CampGroupSummary
	GroupName string `json:"group_name"`
}

// GetFullCampReport assembles the composite camp view. The three reads
// touch disjoint tables, so they run concurrently; the response is only
// sent once all of them have returned.
func (app *App) GetFullCampReport(c *gin.Context) {
	campID, ok := parseUUIDParam(c, "campId")
	if !ok {
		return
	}

	var (
		attendance []campAttendanceView
		summaries  []campSummaryView
		attendees  []CampAttendee
	)

	g, ctx := errgroup.WithContext(c.Request.Context())

	g.Go(func() error {
		return app.DB.WithContext(ctx).Model(&CampChapterAttendance{}).
			Select("camp_chapter_attendances.*, chapters.chapter_name, groups.group_name").
			Joins("JOIN chapters ON chapters.id = camp_chapter_attendances.chapter_id").
			Joins("JOIN groups ON groups.id = chapters.group_id").
			Where("camp_chapter_attendances.camp_id = ?", campID).
			Order("camp_chapter_attendances.report_date, groups.group_name").
			Scan(&attendance).Error
	})

	g.Go(func() error {
		return app.DB.WithContext(ctx).Model(&CampGroupSummary{}).
			Select("camp_group_summaries.*, groups.group_name").
			Joins("JOIN groups ON groups.id = camp_group_summaries.group_id").
			Where("camp_group_summaries.camp_id = ?", campID).
			Order("groups.group_name").
			Scan(&summaries).Error
	})

	g.Go(func() error {
		return app.DB.WithContext(ctx).
			Where("camp_id = ?", campID).
			Order("full_name").
			Find(&attendees).Error
	})

	if err := g.Wait(); err != nil {
		storeError(c, err, "Camp event not found")
		return
	}

	if attendance == nil {
		attendance = []campAttendanceView{}
	}
	if summaries == nil {
		summaries = []campSummaryView{}
	}
	if attendees == nil {
		attendees = []CampAttendee{}
	}

	c.JSON(http.StatusOK, gin.H{
		"daily_attendance": attendance,
		"group_summaries":  summaries,
		"attendees":        attendees,
	})
}

// ---------------------------------------------------------------
// Attendee bulk import — replaces the (camp, group) batch atomically
// ---------------------------------------------------------------

func (app *App) UploadCampAttendees(c *gin.Context) {
	campID, ok := parseUUIDParam(c, "campId")
	if !ok {
		return
	}

	file, err := c.FormFile("attendeeFile")
	if err != nil {
		jsonError(c, http.StatusBadRequest, "No file was uploaded.")
		return
	}

	groupID, err := uuid.Parse(c.PostForm("group_id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "uploaded_by (user ID) and group_id are required.")
		return
	}
	uploadedBy, err := uuid.Parse(c.PostForm("uploaded_by"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "uploaded_by (user ID) and group_id are required.")
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("attendee upload: open file: %v", err)
		jsonError(c, http.StatusInternalServerError, "Failed to process CSV file.")
		return
	}
	defer src.Close()

	rows, err := parseCSV(src)
	if err != nil {
		log.Printf("attendee upload: parse: %v", err)
		jsonError(c, http.StatusBadRequest, "Failed to process CSV file.")
		return
	}
	if len(rows) == 0 {
		jsonError(c, http.StatusBadRequest, "CSV file is empty or contains no data rows.")
		return
	}

	attendees := make([]CampAttendee, 0, len(rows))
	for _, row := range rows {
		chapterName := row["chapter"]
		a := CampAttendee{
			CampID:      campID,
			GroupID:     groupID,
			Title:       row["title"],
			FullName:    row["full name"],
			ChapterName: chapterName,
			ChapterID:   app.lookupChapterID(chapterName),
			GotTshirt:   cellYes(row, "got the t-shirt"),
			UploadedBy:  uploadedBy,
		}
		attendees = append(attendees, a)
	}

	// All-or-nothing replace of the (camp, group) scope: the previous
	// batch survives intact unless the whole new batch commits.
	err = app.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("camp_id = ? AND group_id = ?", campID, groupID).Delete(&CampAttendee{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(attendees, 200).Error
	})
	if err != nil {
		log.Printf("attendee upload: transaction: %v", err)
		jsonError(c, http.StatusInternalServerError, "Failed to process CSV file.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("%d attendees successfully uploaded.", len(attendees))})
}

// lookupChapterID resolves a chapter display name to its id. An
// unresolved name yields a null reference instead of failing the row;
// missing chapter linkage does not block attendee creation.
func (app *App) lookupChapterID(name string) *uuid.UUID {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	var chapter Chapter
	if err := app.DB.Where("chapter_name = ?", name).First(&chapter).Error; err != nil {
		return nil
	}
	return &chapter.ID
}
