package main

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookRejectsDuplicateTitle(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleZonalMaterialsManager)

	body := map[string]interface{}{
		"book_title": "Rhapsody of Realities",
		"category":   "Devotional",
		"price":      "3.50",
		"created_by": uuid.New(),
	}

	w := doJSON(t, r, http.MethodPost, "/api/materials/books", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/materials/books", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, app.DB.Model(&Book{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitBookReportUpserts(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleGroupMaterialsOfficer)

	group := seedGroup(t, app, "Group One")

	body := map[string]interface{}{
		"group_id":      group.ID,
		"report_month":  "2026-07",
		"submitted_by":  uuid.New(),
		"books_ordered": 200,
		"total_amount":  "700.00",
	}

	w := doJSON(t, r, http.MethodPost, "/api/materials/book-reports", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body["books_ordered"] = 250
	body["mini_books_ordered"] = 40
	w = doJSON(t, r, http.MethodPost, "/api/materials/book-reports", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rows []MinistryMaterialBookReport
	require.NoError(t, app.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 250, rows[0].BooksOrdered)
	assert.Equal(t, 40, rows[0].MiniBooksOrdered)
	assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("700.00")))
}

func TestPcdlSubscriptionLifecycle(t *testing.T) {
	app, r := newTestApp(t)
	token := tokenFor(t, app, RoleGroupMaterialsOfficer)

	group := seedGroup(t, app, "Group One")

	w := doJSON(t, r, http.MethodPost, "/api/materials/pcdl-subscriptions", token, map[string]interface{}{
		"group_id":          group.ID,
		"full_name":         "John Doe",
		"subscription_type": "Gold",
		"commitment":        "25.00",
		"submitted_by":      uuid.New(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sub PcdlSubscription
	decodeBody(t, w, &sub)
	require.NotEqual(t, uuid.Nil, sub.ID)

	w = doJSON(t, r, http.MethodGet, "/api/materials/pcdl-subscriptions?subscription_type=Gold", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []PcdlSubscription
	decodeBody(t, w, &subs)
	require.Len(t, subs, 1)

	w = doJSON(t, r, http.MethodDelete, "/api/materials/pcdl-subscriptions/"+sub.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, app.DB.Model(&PcdlSubscription{}).Count(&count).Error)
	assert.Zero(t, count)
}
