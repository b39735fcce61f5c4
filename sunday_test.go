package main

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSundayEvent(t *testing.T, app *App, title string) SundayServiceEvent {
	t.Helper()
	ev := SundayServiceEvent{EventTitle: title, CreatedBy: uuid.New()}
	var err error
	ev.EventDate, err = parseDate("2026-08-02")
	require.NoError(t, err)
	require.NoError(t, app.DB.Create(&ev).Error)
	return ev
}

func TestSubmitSundayReportRejectsDuplicate(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleChapterAdmin)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	event := seedSundayEvent(t, app, "First Sunday Service")

	body := map[string]interface{}{
		"event_id":     event.ID,
		"chapter_id":   chapter.ID,
		"submitted_by": uuid.New(),
		"attendance":   120,
		"offering":     "350.75",
	}

	w := doJSON(t, r, http.MethodPost, "/api/reports/sunday", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same (event, chapter) again is a conflict, not a silent overwrite.
	w = doJSON(t, r, http.MethodPost, "/api/reports/sunday", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, app.DB.Model(&SundayServiceReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateSundayReport(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleGroupAdmin)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	event := seedSundayEvent(t, app, "First Sunday Service")

	report := SundayServiceReport{
		EventID: event.ID, ChapterID: chapter.ID,
		SubmittedBy: uuid.New(), Attendance: 100,
	}
	require.NoError(t, app.DB.Create(&report).Error)

	w := doJSON(t, r, http.MethodPut, "/api/reports/sunday/"+report.ID.String(), token, map[string]interface{}{
		"submitted_by": uuid.New(),
		"attendance":   135,
		"first_timers": 7,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored SundayServiceReport
	require.NoError(t, app.DB.First(&stored, "id = ?", report.ID).Error)
	assert.Equal(t, 135, stored.Attendance)
	assert.Equal(t, 7, stored.FirstTimers)
}

func TestGetSundayReportsForEventJoinsNames(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleCellLeader)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	event := seedSundayEvent(t, app, "First Sunday Service")

	report := SundayServiceReport{EventID: event.ID, ChapterID: chapter.ID, SubmittedBy: uuid.New(), Attendance: 80}
	require.NoError(t, app.DB.Create(&report).Error)

	w := doJSON(t, r, http.MethodGet, "/api/reports/sunday/event/"+event.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []map[string]interface{}
	decodeBody(t, w, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "Central", views[0]["chapter_name"])
	assert.Equal(t, "Group One", views[0]["group_name"])
}

func TestDeleteSundayEventCascadesReports(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleZonalAdmin)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	event := seedSundayEvent(t, app, "First Sunday Service")

	report := SundayServiceReport{EventID: event.ID, ChapterID: chapter.ID, SubmittedBy: uuid.New()}
	require.NoError(t, app.DB.Create(&report).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/reports/sunday/events/"+event.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var reports, events int64
	require.NoError(t, app.DB.Model(&SundayServiceReport{}).Count(&reports).Error)
	require.NoError(t, app.DB.Model(&SundayServiceEvent{}).Count(&events).Error)
	assert.Zero(t, reports)
	assert.Zero(t, events)
}
