package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type PFCCReportRequest struct {
	CellLeaderID          *uuid.UUID      `json:"cell_leader_id"`
	ReportDate            string          `json:"report_date"`
	CellName              string          `json:"cell_name"`
	SubmittedBy           *uuid.UUID      `json:"submitted_by"`
	CellAttendance        int             `json:"cell_attendance"`
	CellFirstTimers       int             `json:"cell_first_timers"`
	NewConverts           int             `json:"new_converts"`
	Offering              decimal.Decimal `json:"offering"`
	CellChurchAttendance  int             `json:"cell_church_attendance"`
	CellChurchFirstTimers int             `json:"cell_church_first_timers"`
	SoulsReached          int             `json:"souls_reached"`
	SoulsSaved            int             `json:"souls_saved"`
	SoulsRetained         int             `json:"souls_retained"`
}

// SubmitPFCCReport is an insert-or-update on (cell leader, report date).
// Cell leaders routinely resubmit after corrections from their chapter
// officer, so the second submission must land on the same row.
func (app *App) SubmitPFCCReport(c *gin.Context) {
	var body PFCCReportRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.CellLeaderID == nil || body.SubmittedBy == nil ||
		body.ReportDate == "" || body.CellName == "" {
		jsonError(c, http.StatusBadRequest, "cell_leader_id, report_date, cell_name, and submitted_by are required.")
		return
	}

	date, err := parseDate(body.ReportDate)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid report date (use RFC3339 or YYYY-MM-DD)")
		return
	}

	row := PFCCReport{
		CellLeaderID:          *body.CellLeaderID,
		ReportDate:            date,
		CellName:              body.CellName,
		SubmittedBy:           *body.SubmittedBy,
		CellAttendance:        body.CellAttendance,
		CellFirstTimers:       body.CellFirstTimers,
		NewConverts:           body.NewConverts,
		Offering:              body.Offering,
		CellChurchAttendance:  body.CellChurchAttendance,
		CellChurchFirstTimers: body.CellChurchFirstTimers,
		SoulsReached:          body.SoulsReached,
		SoulsSaved:            body.SoulsSaved,
		SoulsRetained:         body.SoulsRetained,
	}

	err = app.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cell_leader_id"}, {Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cell_name", "cell_attendance", "cell_first_timers", "new_converts", "offering",
			"cell_church_attendance", "cell_church_first_timers",
			"souls_reached", "souls_saved", "souls_retained",
			"submitted_by", "last_updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}

	var stored PFCCReport
	err = app.DB.Where("cell_leader_id = ? AND report_date = ?", row.CellLeaderID, row.ReportDate).First(&stored).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, stored)
}

type pfccReportView struct {
	PFCCReport
	CellLeaderName string `json:"cell_leader_name"`
	ChapterName    string `json:"chapter_name"`
	GroupName      string `json:"group_name"`
}

func (app *App) ListPFCCReports(c *gin.Context) {
	q := app.DB.Model(&PFCCReport{}).
		Select("pfcc_reports.*, users.full_name AS cell_leader_name, chapters.chapter_name, groups.group_name").
		Joins("JOIN users ON users.id = pfcc_reports.cell_leader_id").
		Joins("LEFT JOIN chapters ON chapters.id = users.chapter_id").
		Joins("LEFT JOIN groups ON groups.id = chapters.group_id")

	if cl := c.Query("cell_leader_id"); cl != "" {
		id, err := uuid.Parse(cl)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid cell_leader_id")
			return
		}
		q = q.Where("pfcc_reports.cell_leader_id = ?", id)
	}
	if from := c.Query("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid from date")
			return
		}
		q = q.Where("pfcc_reports.report_date >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid to date")
			return
		}
		q = q.Where("pfcc_reports.report_date <= ?", t)
	}

	var reports []pfccReportView
	if err := q.Order("pfcc_reports.report_date DESC, users.full_name").Scan(&reports).Error; err != nil {
		storeError(c, err, "Report not found")
		return
	}
	if reports == nil {
		reports = []pfccReportView{}
	}
	c.JSON(http.StatusOK, reports)
}

func (app *App) GetPFCCReport(c *gin.Context) {
	id, ok := parseUUIDParam(c, "reportId")
	if !ok {
		return
	}
	var report PFCCReport
	if err := app.DB.First(&report, "id = ?", id).Error; err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (app *App) DeletePFCCReport(c *gin.Context) {
	id, ok := parseUUIDParam(c, "reportId")
	if !ok {
		return
	}
	res := app.DB.Delete(&PFCCReport{}, "id = ?", id)
	if res.Error != nil {
		storeError(c, res.Error, "Report not found")
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "Report not found")
		return
	}
	c.Status(http.StatusNoContent)
}
