package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPFCCReportUpserts(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleCellLeader)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	leader := seedUser(t, app, "cellleader1", &chapter.ID)

	body := map[string]interface{}{
		"cell_leader_id":  leader.ID,
		"report_date":     "2026-06-14",
		"cell_name":       "Victory Cell",
		"submitted_by":    leader.ID,
		"cell_attendance": 12,
		"offering":        "45.00",
	}

	w := doJSON(t, r, http.MethodPost, "/api/reports/pfcc", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body["cell_attendance"] = 15
	body["souls_saved"] = 2
	w = doJSON(t, r, http.MethodPost, "/api/reports/pfcc", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rows []PFCCReport
	require.NoError(t, app.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 15, rows[0].CellAttendance)
	assert.Equal(t, 2, rows[0].SoulsSaved)
	assert.Equal(t, "Victory Cell", rows[0].CellName)
}

func TestSubmitPFCCReportDistinctWeeks(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleCellLeader)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	leader := seedUser(t, app, "cellleader1", &chapter.ID)

	for _, date := range []string{"2026-06-14", "2026-06-21"} {
		w := doJSON(t, r, http.MethodPost, "/api/reports/pfcc", token, map[string]interface{}{
			"cell_leader_id": leader.ID,
			"report_date":    date,
			"cell_name":      "Victory Cell",
			"submitted_by":   leader.ID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var count int64
	require.NoError(t, app.DB.Model(&PFCCReport{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestListPFCCReportsJoinsOrgNames(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleZonalPFCCManager)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	leader := seedUser(t, app, "cellleader1", &chapter.ID)

	date, err := parseDate("2026-06-14")
	require.NoError(t, err)
	require.NoError(t, app.DB.Create(&PFCCReport{
		CellLeaderID: leader.ID, ReportDate: date, CellName: "Victory Cell", SubmittedBy: leader.ID,
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/reports/pfcc", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var views []map[string]interface{}
	decodeBody(t, w, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "Test cellleader1", views[0]["cell_leader_name"])
	assert.Equal(t, "Central", views[0]["chapter_name"])
	assert.Equal(t, "Group One", views[0]["group_name"])
}

func TestDeletePFCCReportNeedsManagerRole(t *testing.T) {
	app, r := newTestApp(t)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	leader := seedUser(t, app, "cellleader1", &chapter.ID)

	date, err := parseDate("2026-06-14")
	require.NoError(t, err)
	report := PFCCReport{CellLeaderID: leader.ID, ReportDate: date, CellName: "Victory Cell", SubmittedBy: leader.ID}
	require.NoError(t, app.DB.Create(&report).Error)

	// Cell leaders submit but never delete.
	w := doJSON(t, r, http.MethodDelete, "/api/reports/pfcc/"+report.ID.String(), tokenFor(t, app, RoleCellLeader), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/reports/pfcc/"+report.ID.String(), tokenFor(t, app, RoleZonalPFCCManager), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, app.DB.Model(&PFCCReport{}).Count(&count).Error)
	assert.Zero(t, count)
}
