package main

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCamp(t *testing.T, app *App, title string) CampEvent {
	t.Helper()
	camp := CampEvent{CampTitle: title, CreatedBy: uuid.New()}
	require.NoError(t, app.DB.Create(&camp).Error)
	return camp
}

func TestSubmitCampAttendanceUpserts(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleChapterAdmin)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	camp := seedCamp(t, app, "Leaders Camp 2026")

	body := map[string]interface{}{
		"camp_id":          camp.ID,
		"chapter_id":       chapter.ID,
		"submitted_by":     uuid.New(),
		"report_date":      "2026-04-10",
		"attendance_count": 50,
	}

	w := doJSON(t, r, http.MethodPost, "/api/reports/camp/attendance", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Resubmit the same (camp, chapter, date) with a corrected count.
	body["attendance_count"] = 75
	w = doJSON(t, r, http.MethodPost, "/api/reports/camp/attendance", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rows []CampChapterAttendance
	require.NoError(t, app.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 75, rows[0].AttendanceCount)
}

func TestSubmitCampAttendanceDifferentDaysAreDistinct(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleGroupAdmin)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	camp := seedCamp(t, app, "Leaders Camp 2026")

	for _, date := range []string{"2026-04-10", "2026-04-11"} {
		w := doJSON(t, r, http.MethodPost, "/api/reports/camp/attendance", token, map[string]interface{}{
			"camp_id":          camp.ID,
			"chapter_id":       chapter.ID,
			"submitted_by":     uuid.New(),
			"report_date":      date,
			"attendance_count": 40,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var count int64
	require.NoError(t, app.DB.Model(&CampChapterAttendance{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSubmitCampSummaryUpserts(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleGroupAdmin)

	group := seedGroup(t, app, "Group One")
	camp := seedCamp(t, app, "Leaders Camp 2026")

	body := map[string]interface{}{
		"camp_id":       camp.ID,
		"group_id":      group.ID,
		"submitted_by":  uuid.New(),
		"total_pastors": 3,
		"total_members": 90,
	}

	w := doJSON(t, r, http.MethodPost, "/api/reports/camp/summary", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body["total_members"] = 110
	body["total_first_timers"] = 12
	w = doJSON(t, r, http.MethodPost, "/api/reports/camp/summary", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rows []CampGroupSummary
	require.NoError(t, app.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 110, rows[0].TotalMembers)
	assert.Equal(t, 12, rows[0].TotalFirstTimers)
	assert.Equal(t, 3, rows[0].TotalPastors)
}

const attendeeCSV = "Title,Full Name,Chapter,Got the T-shirt\n" +
	"Bro,John Doe,Central,yes\n" +
	"Sis,Jane Doe,Central,NO\n" +
	"Pst,Sam Oko,Unknown Chapter,Yes\n"

func TestUploadCampAttendeesReplacesBatch(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleGroupAdmin)

	group := seedGroup(t, app, "Group One")
	seedChapter(t, app, "Central", group.ID)
	camp := seedCamp(t, app, "Leaders Camp 2026")

	fields := map[string]string{
		"group_id":    group.ID.String(),
		"uploaded_by": uuid.New().String(),
	}
	path := "/api/reports/camp/" + camp.ID.String() + "/attendees/upload"

	w := doUpload(t, r, path, token, "attendeeFile", attendeeCSV, fields)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Equal(t, "3 attendees successfully uploaded.", resp["message"])

	// Re-uploading the same sheet replaces the batch instead of stacking.
	w = doUpload(t, r, path, token, "attendeeFile", attendeeCSV, fields)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var attendees []CampAttendee
	require.NoError(t, app.DB.Find(&attendees).Error)
	require.Len(t, attendees, 3)

	byName := make(map[string]CampAttendee, len(attendees))
	for _, a := range attendees {
		byName[a.FullName] = a
	}
	assert.True(t, byName["John Doe"].GotTshirt)
	assert.False(t, byName["Jane Doe"].GotTshirt)
	assert.NotNil(t, byName["John Doe"].ChapterID)
	// Unresolved chapter names keep the raw text with a null reference.
	assert.Nil(t, byName["Sam Oko"].ChapterID)
	assert.Equal(t, "Unknown Chapter", byName["Sam Oko"].ChapterName)
}

func TestUploadCampAttendeesRejectsEmptyFile(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleGroupAdmin)

	group := seedGroup(t, app, "Group One")
	camp := seedCamp(t, app, "Leaders Camp 2026")

	w := doUpload(t, r, "/api/reports/camp/"+camp.ID.String()+"/attendees/upload", token,
		"attendeeFile", "Title,Full Name,Chapter,Got the T-shirt\n", map[string]string{
			"group_id":    group.ID.String(),
			"uploaded_by": uuid.New().String(),
		})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFullCampReport(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleCellLeader)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	camp := seedCamp(t, app, "Leaders Camp 2026")

	date, err := parseDate("2026-04-10")
	require.NoError(t, err)
	require.NoError(t, app.DB.Create(&CampChapterAttendance{
		CampID: camp.ID, ChapterID: chapter.ID, ReportDate: date,
		SubmittedBy: uuid.New(), AttendanceCount: 64,
	}).Error)
	require.NoError(t, app.DB.Create(&CampGroupSummary{
		CampID: camp.ID, GroupID: group.ID, SubmittedBy: uuid.New(), TotalMembers: 64,
	}).Error)
	require.NoError(t, app.DB.Create(&CampAttendee{
		CampID: camp.ID, GroupID: group.ID, FullName: "John Doe", UploadedBy: uuid.New(),
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/reports/camp/"+camp.ID.String()+"/full-report", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		DailyAttendance []map[string]interface{} `json:"daily_attendance"`
		GroupSummaries  []map[string]interface{} `json:"group_summaries"`
		Attendees       []map[string]interface{} `json:"attendees"`
	}
	decodeBody(t, w, &resp)

	require.Len(t, resp.DailyAttendance, 1)
	assert.Equal(t, "Central", resp.DailyAttendance[0]["chapter_name"])
	assert.Equal(t, "Group One", resp.DailyAttendance[0]["group_name"])
	require.Len(t, resp.GroupSummaries, 1)
	assert.Equal(t, "Group One", resp.GroupSummaries[0]["group_name"])
	require.Len(t, resp.Attendees, 1)
}

func TestGetFullCampReportEmptyCamp(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleCellLeader)
	camp := seedCamp(t, app, "Leaders Camp 2026")

	w := doJSON(t, r, http.MethodGet, "/api/reports/camp/"+camp.ID.String()+"/full-report", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Empty sections come back as [], never null.
	assert.Contains(t, w.Body.String(), `"daily_attendance":[]`)
	assert.Contains(t, w.Body.String(), `"group_summaries":[]`)
	assert.Contains(t, w.Body.String(), `"attendees":[]`)
}

func TestDeleteCampEventCascades(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleZonalAdmin)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	camp := seedCamp(t, app, "Leaders Camp 2026")

	date, err := parseDate("2026-04-10")
	require.NoError(t, err)
	require.NoError(t, app.DB.Create(&CampChapterAttendance{
		CampID: camp.ID, ChapterID: chapter.ID, ReportDate: date, SubmittedBy: uuid.New(),
	}).Error)
	require.NoError(t, app.DB.Create(&CampAttendee{
		CampID: camp.ID, GroupID: group.ID, FullName: "John Doe", UploadedBy: uuid.New(),
	}).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/reports/camp/events/"+camp.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var attendance, attendees, camps int64
	require.NoError(t, app.DB.Model(&CampChapterAttendance{}).Count(&attendance).Error)
	require.NoError(t, app.DB.Model(&CampAttendee{}).Count(&attendees).Error)
	require.NoError(t, app.DB.Model(&CampEvent{}).Count(&camps).Error)
	assert.Zero(t, attendance)
	assert.Zero(t, attendees)
	assert.Zero(t, camps)
}
