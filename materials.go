package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// ---------------------------------------------------------------
// Book catalogue
// ---------------------------------------------------------------

type BookRequest struct {
	BookTitle string          `json:"book_title"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	CreatedBy *uuid.UUID      `json:"created_by"`
}

func (app *App) CreateBook(c *gin.Context) {
	var body BookRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		strings.TrimSpace(body.BookTitle) == "" || body.CreatedBy == nil {
		jsonError(c, http.StatusBadRequest, "Book title and created_by user ID are required.")
		return
	}

	book := Book{
		BookTitle: strings.TrimSpace(body.BookTitle),
		Category:  strings.TrimSpace(body.Category),
		Price:     body.Price,
		CreatedBy: *body.CreatedBy,
	}
	if err := app.DB.Create(&book).Error; err != nil {
		storeError(c, err, "Book not found")
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (app *App) ListBooks(c *gin.Context) {
	q := app.DB.Model(&Book{})
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	var books []Book
	if err := q.Order("book_title").Find(&books).Error; err != nil {
		storeError(c, err, "Book not found")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (app *App) UpdateBook(c *gin.Context) {
	id, ok := parseUUIDParam(c, "bookId")
	if !ok {
		return
	}

	var body BookRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.BookTitle) == "" {
		jsonError(c, http.StatusBadRequest, "Book title is required.")
		return
	}

	var book Book
	if err := app.DB.First(&book, "id = ?", id).Error; err != nil {
		storeError(c, err, "Book not found")
		return
	}

	book.BookTitle = strings.TrimSpace(body.BookTitle)
	if body.Category != "" {
		book.Category = strings.TrimSpace(body.Category)
	}
	if !body.Price.IsZero() {
		book.Price = body.Price
	}

	if err := app.DB.Save(&book).Error; err != nil {
		storeError(c, err, "Book not found")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (app *App) DeleteBook(c *gin.Context) {
	id, ok := parseUUIDParam(c, "bookId")
	if !ok {
		return
	}
	res := app.DB.Delete(&Book{}, "id = ?", id)
	if res.Error != nil {
		storeError(c, res.Error, "Book not found")
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "Book not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------
// Monthly book order reports — UPSERT on (group, month)
// ---------------------------------------------------------------

type BookReportRequest struct {
	GroupID          *uuid.UUID      `json:"group_id"`
	ReportMonth      string          `json:"report_month"`
	SubmittedBy      *uuid.UUID      `json:"submitted_by"`
	BooksOrdered     int             `json:"books_ordered"`
	MiniBooksOrdered int             `json:"mini_books_ordered"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	BookNamesDetails string          `json:"book_names_details"`
}

func (app *App) SubmitBookReport(c *gin.Context) {
	var body BookReportRequest
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

	row := MinistryMaterialBookReport{
		GroupID:          *body.GroupID,
		ReportMonth:      month,
		SubmittedBy:      *body.SubmittedBy,
		BooksOrdered:     body.BooksOrdered,
		MiniBooksOrdered: body.MiniBooksOrdered,
		TotalAmount:      body.TotalAmount,
		BookNamesDetails: body.BookNamesDetails,
	}

	err = app.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "group_id"}, {Name: "report_month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"books_ordered", "mini_books_ordered", "total_amount",
			"book_names_details", "submitted_by", "last_updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		storeError(c, err, "Group not found")
		return
	}

	var stored MinistryMaterialBookReport
	err = app.DB.Where("group_id = ? AND report_month = ?", row.GroupID, row.ReportMonth).First(&stored).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, stored)
}

type bookReportView struct {
	MinistryMaterialBookReport
	GroupName string `json:"group_name"`
}

func (app *App) ListBookReports(c *gin.Context) {
	q := app.DB.Model(&MinistryMaterialBookReport{}).
		Select("ministry_material_book_reports.*, groups.group_name").
		Joins("JOIN groups ON groups.id = ministry_material_book_reports.group_id")

	if gid := c.Query("group_id"); gid != "" {
		id, err := uuid.Parse(gid)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid group_id")
			return
		}
		q = q.Where("ministry_material_book_reports.group_id = ?", id)
	}

	var reports []bookReportView
	if err := q.Order("ministry_material_book_reports.report_month, groups.group_name").Scan(&reports).Error; err != nil {
		storeError(c, err, "Report not found")
		return
	}
	if reports == nil {
		reports = []bookReportView{}
	}
	c.JSON(http.StatusOK, reports)
}

// ---------------------------------------------------------------
// PCDL subscriptions — append-only entries, no natural key
// ---------------------------------------------------------------

type PcdlSubscriptionRequest struct {
	GroupID          *uuid.UUID      `json:"group_id"`
	ChapterID        *uuid.UUID      `json:"chapter_id"`
	Title            string          `json:"title"`
	FullName         string          `json:"full_name"`
	ContactNumber    string          `json:"contact_number"`
	KcHandle         string          `json:"kc_handle"`
	LeadershipRole   string          `json:"leadership_role"`
	SubscriptionType string          `json:"subscription_type"`
	Commitment       decimal.Decimal `json:"commitment"`
	SubmittedBy      *uuid.UUID      `json:"submitted_by"`
}

func (app *App) CreatePcdlSubscription(c *gin.Context) {
	var body PcdlSubscriptionRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.GroupID == nil || body.SubmittedBy == nil || strings.TrimSpace(body.FullName) == "" {
		jsonError(c, http.StatusBadRequest, "group_id, full_name, and submitted_by are required.")
		return
	}

	sub := PcdlSubscription{
		GroupID:          *body.GroupID,
		ChapterID:        body.ChapterID,
		Title:            body.Title,
		FullName:         strings.TrimSpace(body.FullName),
		ContactNumber:    body.ContactNumber,
		KcHandle:         body.KcHandle,
		LeadershipRole:   body.LeadershipRole,
		SubscriptionType: body.SubscriptionType,
		Commitment:       body.Commitment,
		SubmittedBy:      *body.SubmittedBy,
	}
	if err := app.DB.Create(&sub).Error; err != nil {
		storeError(c, err, "Group not found")
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (app *App) ListPcdlSubscriptions(c *gin.Context) {
	q := app.DB.Model(&PcdlSubscription{})

	if gid := c.Query("group_id"); gid != "" {
		id, err := uuid.Parse(gid)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid group_id")
			return
		}
		q = q.Where("group_id = ?", id)
	}
	if st := c.Query("subscription_type"); st != "" {
		q = q.Where("subscription_type = ?", st)
	}

	var subs []PcdlSubscription
	if err := q.Order("full_name").Find(&subs).Error; err != nil {
		storeError(c, err, "Subscription not found")
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (app *App) DeletePcdlSubscription(c *gin.Context) {
	id, ok := parseUUIDParam(c, "subId")
	if !ok {
		return
	}
	res := app.DB.Delete(&PcdlSubscription{}, "id = ?", id)
	if res.Error != nil {
		storeError(c, res.Error, "Subscription not found")
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "Subscription not found")
		return
	}
	c.Status(http.StatusNoContent)
}
