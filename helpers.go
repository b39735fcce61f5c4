package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func jsonError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}

// storeError maps a gorm error to the API's status taxonomy. The
// fallback branch logs the full cause server-side and returns a generic
// message so internals never leak to the caller.
func storeError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		jsonError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		jsonError(c, http.StatusConflict, "A record with this key already exists.")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		jsonError(c, http.StatusNotFound, "A referenced record does not exist.")
	default:
		log.Printf("database error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		jsonError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

// parseDate accepts RFC3339 or YYYY-MM-DD, same as the event forms send.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseMonth normalizes a month-granularity key to the first of the
// month so the {group, month} unique index compares equal across
// submissions. Accepts YYYY-MM or any full date within the month.
func parseMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// yearRange gives the half-open [Jan 1, Jan 1 next year) bounds used to
// filter date columns by year without dialect-specific EXTRACT calls.
func yearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
