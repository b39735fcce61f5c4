package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChapterRequest struct {
	ChapterName string     `json:"chapter_name"`
	GroupID     *uuid.UUID `json:"group_id"`
}

// chapterView is what list/get return: the chapter plus its group name.
type chapterView struct {
	ID          uuid.UUID `json:"id"`
	ChapterName string    `json:"chapter_name"`
	GroupID     uuid.UUID `json:"group_id"`
	GroupName   string    `json:"group_name"`
}

func (app *App) CreateChapter(c *gin.Context) {
	var body ChapterRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.ChapterName) == "" || body.GroupID == nil {
		jsonError(c, http.StatusBadRequest, "Chapter name and group ID are required")
		return
	}

	// The group reference must point at an existing group.
	var group Group
	if err := app.DB.First(&group, "id = ?", *body.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "The specified group does not exist.")
			return
		}
		storeError(c, err, "Group not found")
		return
	}

	chapter := Chapter{ChapterName: strings.TrimSpace(body.ChapterName), GroupID: *body.GroupID}
	if err := app.DB.Create(&chapter).Error; err != nil {
		storeError(c, err, "Chapter not found")
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

func (app *App) ListChapters(c *gin.Context) {
	var views []chapterView
	err := app.DB.Model(&Chapter{}).
		Select("chapters.id, chapters.chapter_name, chapters.group_id, groups.group_name").
		Joins("LEFT JOIN groups ON groups.id = chapters.group_id").
		Order("groups.group_name, chapters.chapter_name").
		Scan(&views).Error
	if err != nil {
		storeError(c, err, "Chapter not found")
		return
	}
	c.JSON(http.StatusOK, views)
}

func (app *App) GetChapter(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var view chapterView
	err := app.DB.Model(&Chapter{}).
		Select("chapters.id, chapters.chapter_name, chapters.group_id, groups.group_name").
		Joins("LEFT JOIN groups ON groups.id = chapters.group_id").
		Where("chapters.id = ?", id).
		First(&view).Error
	if err != nil {
		storeError(c, err, "Chapter not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (app *App) UpdateChapter(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var body ChapterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.ChapterName) == "" && body.GroupID == nil {
		jsonError(c, http.StatusBadRequest, "At least one field (chapter_name or group_id) is required to update.")
		return
	}

	if body.GroupID != nil {
		var group Group
		if err := app.DB.First(&group, "id = ?", *body.GroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				jsonError(c, http.StatusNotFound, "The specified group does not exist.")
				return
			}
			storeError(c, err, "Group not found")
			return
		}
	}

	var chapter Chapter
	if err := app.DB.First(&chapter, "id = ?", id).Error; err != nil {
		storeError(c, err, "Chapter not found")
		return
	}

	if name := strings.TrimSpace(body.ChapterName); name != "" {
		chapter.ChapterName = name
	}
	if body.GroupID != nil {
		chapter.GroupID = *body.GroupID
	}

	if err := app.DB.Save(&chapter).Error; err != nil {
		storeError(c, err, "Chapter not found")
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (app *App) DeleteChapter(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	res := app.DB.Delete(&Chapter{}, "id = ?", id)
	if res.Error != nil {
		storeError(c, res.Error, "Chapter not found")
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "Chapter not found")
		return
	}
	c.Status(http.StatusNoContent)
}
