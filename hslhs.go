package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type HSLHSReportRequest struct {
	GroupID      *uuid.UUID `json:"group_id"`
	ProgramTitle string     `json:"program_title"`
	SubmittedBy  *uuid.UUID `json:"submitted_by"`

	AttTotalIndividual        int `json:"att_total_individual"`
	AttTotalFirstTimers       int `json:"att_total_first_timers"`
	AttTotalNewConverts       int `json:"att_total_new_converts"`
	AttGeneralTotal           int `json:"att_general_total"`
	AttTotalVirtualCenter     int `json:"att_total_virtual_center"`
	AttTotalPhysicalCenter    int `json:"att_total_physical_center"`
	AttTotalFamilyCenter      int `json:"att_total_family_center"`
	AttTotalHospitalCenter    int `json:"att_total_hospital_center"`
	AttTotalOtherCenter       int `json:"att_total_other_center"`
	AttPhysicalCentersCount   int `json:"att_physical_centers_count"`
	AttVirtualCentersCount    int `json:"att_virtual_centers_count"`
	AttFamilyCentersCount     int `json:"att_family_centers_count"`
	AttHospitalCentersCount   int `json:"att_hospital_centers_count"`
	AttTargetedCountriesCount int `json:"att_targeted_countries_count"`
	AttTestimonies            int `json:"att_testimonies"`

	HeraldTotal                   int `json:"herald_total"`
	HeraldBulkRegistrations       int `json:"herald_bulk_registrations"`
	HeraldAmplifyRegistrations    int `json:"herald_amplify_registrations"`
	HeraldTotalZonalRegistrations int `json:"herald_total_zonal_registrations"`
	HeraldCountriesAmplified      int `json:"herald_countries_amplified"`

	OnlineSoulsReached int `json:"online_souls_reached"`
	OnlineSoulsWon     int `json:"online_souls_won"`
	OnlineVideosPosted int `json:"online_videos_posted"`
	OnlineFlyersPosted int `json:"online_flyers_posted"`
	OnlineViews        int `json:"online_views"`
	OnlineLikes        int `json:"online_likes"`
	OnlineComments     int `json:"online_comments"`
	OnlineFollowers    int `json:"online_followers"`

	FeedbackCallsReceived    int `json:"feedback_calls_received"`
	FeedbackTextsReceived    int `json:"feedback_texts_received"`
	FeedbackPeopleReachedOut int `json:"feedback_people_reached_out"`

	FlyersDistributed    int `json:"flyers_distributed"`
	MagazinesDistributed int `json:"magazines_distributed"`
	HealingOutreaches    int `json:"healing_outreaches"`
	HoursPrayed          int `json:"hours_prayed"`
	CelebritiesReached   int `json:"celebrities_reached"`
	DignitariesReached   int `json:"dignitaries_reached"`
}

// hslhsUpdateColumns is the fixed update set for resubmissions. Extending
// the report means adding the field to the model, the request struct, and
// this list together.
var hslhsUpdateColumns = []string{
	"att_total_individual", "att_total_first_timers", "att_total_new_converts",
	"att_general_total", "att_total_virtual_center", "att_total_physical_center",
	"att_total_family_center", "att_total_hospital_center", "att_total_other_center",
	"att_physical_centers_count", "att_virtual_centers_count", "att_family_centers_count",
	"att_hospital_centers_count", "att_targeted_countries_count", "att_testimonies",
	"herald_total", "herald_bulk_registrations", "herald_amplify_registrations",
	"herald_total_zonal_registrations", "herald_countries_amplified",
	"online_souls_reached", "online_souls_won", "online_videos_posted",
	"online_flyers_posted", "online_views", "online_likes", "online_comments",
	"online_followers",
	"feedback_calls_received", "feedback_texts_received", "feedback_people_reached_out",
	"flyers_distributed", "magazines_distributed", "healing_outreaches",
	"hours_prayed", "celebrities_reached", "dignitaries_reached",
	"submitted_by", "last_updated_at",
}

func (app *App) SubmitHSLHSReport(c *gin.Context) {
	var body HSLHSReportRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.GroupID == nil || body.SubmittedBy == nil || strings.TrimSpace(body.ProgramTitle) == "" {
		jsonError(c, http.StatusBadRequest, "group_id, program_title, and submitted_by are required.")
		return
	}

	row := HSLHSReport{
		GroupID:      *body.GroupID,
		ProgramTitle: strings.TrimSpace(body.ProgramTitle),
		SubmittedBy:  *body.SubmittedBy,

		AttTotalIndividual:        body.AttTotalIndividual,
		AttTotalFirstTimers:       body.AttTotalFirstTimers,
		AttTotalNewConverts:       body.AttTotalNewConverts,
		AttGeneralTotal:           body.AttGeneralTotal,
		AttTotalVirtualCenter:     body.AttTotalVirtualCenter,
		AttTotalPhysicalCenter:    body.AttTotalPhysicalCenter,
		AttTotalFamilyCenter:      body.AttTotalFamilyCenter,
		AttTotalHospitalCenter:    body.AttTotalHospitalCenter,
		AttTotalOtherCenter:       body.AttTotalOtherCenter,
		AttPhysicalCentersCount:   body.AttPhysicalCentersCount,
		AttVirtualCentersCount:    body.AttVirtualCentersCount,
		AttFamilyCentersCount:     body.AttFamilyCentersCount,
		AttHospitalCentersCount:   body.AttHospitalCentersCount,
		AttTargetedCountriesCount: body.AttTargetedCountriesCount,
		AttTestimonies:            body.AttTestimonies,

		HeraldTotal:                   body.HeraldTotal,
		HeraldBulkRegistrations:       body.HeraldBulkRegistrations,
		HeraldAmplifyRegistrations:    body.HeraldAmplifyRegistrations,
		HeraldTotalZonalRegistrations: body.HeraldTotalZonalRegistrations,
		HeraldCountriesAmplified:      body.HeraldCountriesAmplified,

		OnlineSoulsReached: body.OnlineSoulsReached,
		OnlineSoulsWon:     body.OnlineSoulsWon,
		OnlineVideosPosted: body.OnlineVideosPosted,
		OnlineFlyersPosted: body.OnlineFlyersPosted,
		OnlineViews:        body.OnlineViews,
		OnlineLikes:        body.OnlineLikes,
		OnlineComments:     body.OnlineComments,
		OnlineFollowers:    body.OnlineFollowers,

		FeedbackCallsReceived:    body.FeedbackCallsReceived,
		FeedbackTextsReceived:    body.FeedbackTextsReceived,
		FeedbackPeopleReachedOut: body.FeedbackPeopleReachedOut,

		FlyersDistributed:    body.FlyersDistributed,
		MagazinesDistributed: body.MagazinesDistributed,
		HealingOutreaches:    body.HealingOutreaches,
		HoursPrayed:          body.HoursPrayed,
		CelebritiesReached:   body.CelebritiesReached,
		DignitariesReached:   body.DignitariesReached,
	}

	err := app.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "program_title"}},
		DoUpdates: clause.AssignmentColumns(hslhsUpdateColumns),
	}).Create(&row).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}

	var stored HSLHSReport
	err = app.DB.Where("group_id = ? AND program_title = ?", row.GroupID, row.ProgramTitle).First(&stored).Error
	if err != nil {
		storeError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, stored)
}

type hslhsReportView struct {
	HSLHSReport
	GroupName string `json:"group_name"`
}

func (app *App) ListHSLHSReports(c *gin.Context) {
	q := app.DB.Model(&HSLHSReport{}).
		Select("hslhs_reports.*, groups.group_name").
		Joins("JOIN groups ON groups.id = hslhs_reports.group_id")

	if gid := c.Query("group_id"); gid != "" {
		id, err := uuid.Parse(gid)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid group_id")
			return
		}
		q = q.Where("hslhs_reports.group_id = ?", id)
	}
	if title := c.Query("program_title"); title != "" {
		q = q.Where("LOWER(hslhs_reports.program_title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}

	var reports []hslhsReportView
	if err := q.Order("groups.group_name, hslhs_reports.program_title").Scan(&reports).Error; err != nil {
		storeError(c, err, "Report not found")
		return
	}
	if reports == nil {
		reports = []hslhsReportView{}
	}
	c.JSON(http.StatusOK, reports)
}

func (app *App) DeleteHSLHSReport(c *gin.Context) {
	id, ok := parseUUIDParam(c, "reportId")
	if !ok {
		return
	}
	res := app.DB.Delete(&HSLHSReport{}, "id = ?", id)
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
