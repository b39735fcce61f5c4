package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ---------------------------------------------------------------
// Monthly group finance reports — UPSERT on (group, month)
// ---------------------------------------------------------------

type MonthlyGroupReportRequest struct {
	GroupID            *uuid.UUID      `json:"group_id"`
	ReportMonth        string          `json:"report_month"`
	SubmittedBy        *uuid.UUID      `json:"submitted_by"`
	GeneralOfferings   decimal.Decimal `json:"general_offerings"`
	SeedOfferings      decimal.Decimal `json:"seed_offerings"`
	AlterSeeds         decimal.Decimal `json:"alter_seeds"`
	Tithes             decimal.Decimal `json:"tithes"`
	FirstFruits        decimal.Decimal `json:"first_fruits"`
	Thanksgiving       decimal.Decimal `json:"thanksgiving"`
	CommunionOffering  decimal.Decimal `json:"communion_offering"`
	NumberOfTithers    int             `json:"number_of_tithers"`
	NumberOfNewTithers int             `json:"number_of_new_tithers"`
}

func (app *App) SubmitMonthlyGroupReport(c *gin.Context) {
	var body MonthlyGroupReportRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.GroupID == nil || body.SubmittedBy == nil || body.ReportMonth == "" {
		jsonError(c, http.StatusBadRequest, "group_id, report_month, and submitted_by are required.")
		return
	}

	month, err := parseMonth(body.ReportMonth)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid report month (use YYYY-MM)")
		return
	}

	row := FinanceMonthlyGroupReport{
		GroupID:            *body.GroupID,
		ReportMonth:        month,
		SubmittedBy:        *body.SubmittedBy,
		GeneralOfferings:   body.GeneralOfferings,
		SeedOfferings:      body.SeedOfferings,
		AlterSeeds:         body.AlterSeeds,
		Tithes:             body.Tithes,
		FirstFruits:        body.FirstFruits,
		Thanksgiving:       body.Thanksgiving,
		CommunionOffering:  body.CommunionOffering,
		NumberOfTithers:    body.NumberOfTithers,
		NumberOfNewTithers: body.NumberOfNewTithers,
	}

	err = app.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "group_id"}, {Name: "report_month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"general_offerings", "seed_offerings", "alter_seeds", "tithes",
			"first_fruits", "thanksgiving", "communion_offering",
			"number_of_tithers", "number_of_new_tithers",
			"submitted_by", "last_updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		storeError(c, err, "Group not found")
		return
	}

	var stored FinanceMonthlyGroupReport
	err = app.DB.Where("group_id = ? AND report_month = ?", row.GroupID, row.ReportMonth).First(&stored).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, stored)
}

type monthlyGroupReportView struct {
	FinanceMonthlyGroupReport
	GroupName string `json:"group_name"`
}

func (app *App) ListMonthlyGroupReports(c *gin.Context) {
	q := app.DB.Model(&FinanceMonthlyGroupReport{}).
		Select("finance_monthly_group_reports.*, groups.group_name").
		Joins("JOIN groups ON groups.id = finance_monthly_group_reports.group_id")

	if gid := c.Query("group_id"); gid != "" {
		id, err := uuid.Parse(gid)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid group_id")
			return
		}
		q = q.Where("finance_monthly_group_reports.group_id = ?", id)
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid year")
			return
		}
		start, end := yearRange(year)
		q = q.Where("finance_monthly_group_reports.report_month >= ? AND finance_monthly_group_reports.report_month < ?", start, end)
	}

	var reports []monthlyGroupReportView
	if err := q.Order("finance_monthly_group_reports.report_month, groups.group_name").Scan(&reports).Error; err != nil {
		storeError(c, err, "Report not found")
		return
	}
	if reports == nil {
		reports = []monthlyGroupReportView{}
	}
	c.JSON(http.StatusOK, reports)
}

func (app *App) DeleteMonthlyGroupReport(c *gin.Context) {
	id, ok := parseUUIDParam(c, "reportId")
	if !ok {
		return
	}
	res := app.DB.Delete(&FinanceMonthlyGroupReport{}, "id = ?", id)
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

// ---------------------------------------------------------------
// Pastor tithe records — UPSERT on (pastor, year)
// ---------------------------------------------------------------

type PastorTitheRequest struct {
	PastorUserID *uuid.UUID      `json:"pastor_user_id"`
	RecordYear   int             `json:"record_year"`
	GroupID      *uuid.UUID      `json:"group_id"`
	SubmittedBy  *uuid.UUID      `json:"submitted_by"`
	FirstFruits  decimal.Decimal `json:"first_fruits"`
	JanTithe     decimal.Decimal `json:"jan_tithe"`
	FebTithe     decimal.Decimal `json:"feb_tithe"`
	MarTithe     decimal.Decimal `json:"mar_tithe"`
	AprTithe     decimal.Decimal `json:"apr_tithe"`
	MayTithe     decimal.Decimal `json:"may_tithe"`
	JunTithe     decimal.Decimal `json:"jun_tithe"`
	JulTithe     decimal.Decimal `json:"jul_tithe"`
	AugTithe     decimal.Decimal `json:"aug_tithe"`
	SepTithe     decimal.Decimal `json:"sep_tithe"`
	OctTithe     decimal.Decimal `json:"oct_tithe"`
	NovTithe     decimal.Decimal `json:"nov_tithe"`
	DecTithe     decimal.Decimal `json:"dec_tithe"`
}

func (app *App) SubmitPastorTitheRecord(c *gin.Context) {
	var body PastorTitheRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.PastorUserID == nil || body.GroupID == nil || body.SubmittedBy == nil || body.RecordYear == 0 {
		jsonError(c, http.StatusBadRequest, "pastor_user_id, record_year, group_id, and submitted_by are required.")
		return
	}

	var pastor User
	if err := app.DB.First(&pastor, "id = ?", *body.PastorUserID).Error; err != nil {
		storeError(c, err, "The specified pastor does not exist.")
		return
	}

	row := FinancePastorTitheRecord{
		PastorUserID: *body.PastorUserID,
		RecordYear:   body.RecordYear,
		GroupID:      *body.GroupID,
		SubmittedBy:  *body.SubmittedBy,
		FirstFruits:  body.FirstFruits,
		JanTithe:     body.JanTithe, FebTithe: body.FebTithe, MarTithe: body.MarTithe,
		AprTithe: body.AprTithe, MayTithe: body.MayTithe, JunTithe: body.JunTithe,
		JulTithe: body.JulTithe, AugTithe: body.AugTithe, SepTithe: body.SepTithe,
		OctTithe: body.OctTithe, NovTithe: body.NovTithe, DecTithe: body.DecTithe,
	}

	// group_id is in the update set: resubmitting under a different group
	// re-parents the record instead of stranding it.
	err := app.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pastor_user_id"}, {Name: "record_year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"group_id", "first_fruits",
			"jan_tithe", "feb_tithe", "mar_tithe", "apr_tithe", "may_tithe", "jun_tithe",
			"jul_tithe", "aug_tithe", "sep_tithe", "oct_tithe", "nov_tithe", "dec_tithe",
			"submitted_by", "last_updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		storeError(c, err, "The specified pastor does not exist.")
		return
	}

	var stored FinancePastorTitheRecord
	err = app.DB.Where("pastor_user_id = ? AND record_year = ?", row.PastorUserID, row.RecordYear).First(&stored).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, stored)
}

type pastorTitheView struct {
	FinancePastorTitheRecord
	PastorName string `json:"pastor_name"`
	GroupName  string `json:"group_name"`
}

func (app *App) ListPastorTitheRecords(c *gin.Context) {
	q := app.DB.Model(&FinancePastorTitheRecord{}).
		Select("finance_pastor_tithe_records.*, users.full_name AS pastor_name, groups.group_name").
		Joins("JOIN users ON users.id = finance_pastor_tithe_records.pastor_user_id").
		Joins("JOIN groups ON groups.id = finance_pastor_tithe_records.group_id")

	if gid := c.Query("group_id"); gid != "" {
		id, err := uuid.Parse(gid)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid group_id")
			return
		}
		q = q.Where("finance_pastor_tithe_records.group_id = ?", id)
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid year")
			return
		}
		q = q.Where("finance_pastor_tithe_records.record_year = ?", year)
	}

	var records []pastorTitheView
	if err := q.Order("groups.group_name, users.full_name").Scan(&records).Error; err != nil {
		storeError(c, err, "Report not found")
		return
	}
	if records == nil {
		records = []pastorTitheView{}
	}
	c.JSON(http.StatusOK, records)
}

func (app *App) DeletePastorTitheRecord(c *gin.Context) {
	id, ok := parseUUIDParam(c, "recordId")
	if !ok {
		return
	}
	res := app.DB.Delete(&FinancePastorTitheRecord{}, "id = ?", id)
	if res.Error != nil {
		storeError(c, res.Error, "Record not found")
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "Record not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------
// Zonal remittances — UPSERT on (item, year)
// ---------------------------------------------------------------

type ZonalRemittanceRequest struct {
	ItemName    string          `json:"item_name"`
	RecordYear  int             `json:"record_year"`
	SubmittedBy *uuid.UUID      `json:"submitted_by"`
	JanAmount   decimal.Decimal `json:"jan_amount"`
	FebAmount   decimal.Decimal `json:"feb_amount"`
	MarAmount   decimal.Decimal `json:"mar_amount"`
	AprAmount   decimal.Decimal `json:"apr_amount"`
	MayAmount   decimal.Decimal `json:"may_amount"`
	JunAmount   decimal.Decimal `json:"jun_amount"`
	JulAmount   decimal.Decimal `json:"jul_amount"`
	AugAmount   decimal.Decimal `json:"aug_amount"`
	SepAmount   decimal.Decimal `json:"sep_amount"`
	OctAmount   decimal.Decimal `json:"oct_amount"`
	NovAmount   decimal.Decimal `json:"nov_amount"`
	DecAmount   decimal.Decimal `json:"dec_amount"`
}

func (app *App) SubmitZonalRemittance(c *gin.Context) {
	var body ZonalRemittanceRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		strings.TrimSpace(body.ItemName) == "" || body.RecordYear == 0 || body.SubmittedBy == nil {
		jsonError(c, http.StatusBadRequest, "item_name, record_year, and submitted_by are required.")
		return
	}

	row := ZonalRemittance{
		ItemName:    strings.TrimSpace(body.ItemName),
		RecordYear:  body.RecordYear,
		SubmittedBy: *body.SubmittedBy,
		JanAmount:   body.JanAmount, FebAmount: body.FebAmount, MarAmount: body.MarAmount,
		AprAmount: body.AprAmount, MayAmount: body.MayAmount, JunAmount: body.JunAmount,
		JulAmount: body.JulAmount, AugAmount: body.AugAmount, SepAmount: body.SepAmount,
		OctAmount: body.OctAmount, NovAmount: body.NovAmount, DecAmount: body.DecAmount,
	}

	err := app.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_name"}, {Name: "record_year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"jan_amount", "feb_amount", "mar_amount", "apr_amount", "may_amount", "jun_amount",
			"jul_amount", "aug_amount", "sep_amount", "oct_amount", "nov_amount", "dec_amount",
			"submitted_by", "last_updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		storeError(c, err, "Record not found")
		return
	}

	var stored ZonalRemittance
	err = app.DB.Where("item_name = ? AND record_year = ?", row.ItemName, row.RecordYear).First(&stored).Error
	if err != nil {
		storeError(c, err, "Record not found")
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (app *App) ListZonalRemittances(c *gin.Context) {
	q := app.DB.Model(&ZonalRemittance{})
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid year")
			return
		}
		q = q.Where("record_year = ?", year)
	}

	var records []ZonalRemittance
	if err := q.Order("record_year, item_name").Find(&records).Error; err != nil {
		storeError(c, err, "Record not found")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (app *App) DeleteZonalRemittance(c *gin.Context) {
	id, ok := parseUUIDParam(c, "recordId")
	if !ok {
		return
	}
	res := app.DB.Delete(&ZonalRemittance{}, "id = ?", id)
	if res.Error != nil {
		storeError(c, res.Error, "Record not found")
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "Record not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------
// Individual records — CSV bulk import scoped by (group, year)
// ---------------------------------------------------------------

var titheMonthColumns = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

func (app *App) UploadIndividualRecords(c *gin.Context) {
	file, err := c.FormFile("recordsFile")
	if err != nil {
		jsonError(c, http.StatusBadRequest, "No file was uploaded.")
		return
	}

	groupID, err := uuid.Parse(c.PostForm("group_id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "group_id, record_year, and uploaded_by are required.")
		return
	}
	uploadedBy, err := uuid.Parse(c.PostForm("uploaded_by"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "group_id, record_year, and uploaded_by are required.")
		return
	}
	recordYear, err := strconv.Atoi(c.PostForm("record_year"))
	if err != nil || recordYear < 2000 {
		jsonError(c, http.StatusBadRequest, "group_id, record_year, and uploaded_by are required.")
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("individual records upload: open file: %v", err)
		jsonError(c, http.StatusInternalServerError, "Failed to process CSV file.")
		return
	}
	defer src.Close()

	rows, err := parseCSV(src)
	if err != nil {
		log.Printf("individual records upload: parse: %v", err)
		jsonError(c, http.StatusBadRequest, "Failed to process CSV file.")
		return
	}
	if len(rows) == 0 {
		jsonError(c, http.StatusBadRequest, "CSV file is empty or contains no data rows.")
		return
	}

	records := make([]FinanceIndividualRecord, 0, len(rows))
	for _, row := range rows {
		fullName := strings.TrimSpace(row["name"] + " " + row["surname"])
		rec := FinanceIndividualRecord{
			GroupID:        groupID,
			ChapterID:      app.lookupChapterID(row["chapter"]),
			RecordYear:     recordYear,
			Title:          row["title"],
			FullName:       fullName,
			ContactNumber:  row["contact number"],
			LeadershipRole: row["leadership role"],
			IsNewTither:    cellYes(row, "new tither?"),
			FirstFruits:    cellAmount(row, "first fruits"),
			Thanksgiving:   cellAmount(row, "thanksgiving"),
		}
		months := []*decimal.Decimal{
			&rec.JanTithe, &rec.FebTithe, &rec.MarTithe, &rec.AprTithe,
			&rec.MayTithe, &rec.JunTithe, &rec.JulTithe, &rec.AugTithe,
			&rec.SepTithe, &rec.OctTithe, &rec.NovTithe, &rec.DecTithe,
		}
		for i, col := range titheMonthColumns {
			*months[i] = cellAmount(row, col)
		}
		rec.UploadedBy = uploadedBy
		records = append(records, rec)
	}

	// Replace the (group, year) batch atomically so a re-upload of a
	// corrected sheet is idempotent.
	err = app.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ? AND record_year = ?", groupID, recordYear).Delete(&FinanceIndividualRecord{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(records, 200).Error
	})
	if err != nil {
		log.Printf("individual records upload: transaction: %v", err)
		jsonError(c, http.StatusInternalServerError, "Failed to process CSV file.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("%d individual records successfully uploaded for group %s for the year %d.",
			len(records), groupID, recordYear),
	})
}

func (app *App) ListIndividualRecords(c *gin.Context) {
	q := app.DB.Model(&FinanceIndividualRecord{})

	if gid := c.Query("group_id"); gid != "" {
		id, err := uuid.Parse(gid)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid group_id")
			return
		}
		q = q.Where("group_id = ?", id)
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid year")
			return
		}
		q = q.Where("record_year = ?", year)
	}
	if cid := c.Query("chapter_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid chapter_id")
			return
		}
		q = q.Where("chapter_id = ?", id)
	}

	var records []FinanceIndividualRecord
	if err := q.Order("full_name").Find(&records).Error; err != nil {
		storeError(c, err, "Record not found")
		return
	}
	c.JSON(http.StatusOK, records)
}
