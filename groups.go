package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type GroupRequest struct {
	GroupName string `json:"group_name"`
}

func (app *App) CreateGroup(c *gin.Context) {
	var body GroupRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.GroupName) == "" {
		jsonError(c, http.StatusBadRequest, "Group name is required")
		return
	}

	group := Group{GroupName: strings.TrimSpace(body.GroupName)}
	if err := app.DB.Create(&group).Error; err != nil {
		storeError(c, err, "Group not found")
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (app *App) ListGroups(c *gin.Context) {
	var groups []Group
	if err := app.DB.Order("group_name").Find(&groups).Error; err != nil {
		storeError(c, err, "Group not found")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (app *App) GetGroup(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var group Group
	if err := app.DB.First(&group, "id = ?", id).Error; err != nil {
		storeError(c, err, "Group not found")
		return
	}
	c.JSON(http.StatusOK, group)
}

func (app *App) UpdateGroup(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var body GroupRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.GroupName) == "" {
		jsonError(c, http.StatusBadRequest, "Group name is required")
		return
	}

	var group Group
	if err := app.DB.First(&group, "id = ?", id).Error; err != nil {
		storeError(c, err, "Group not found")
		return
	}

	group.GroupName = strings.TrimSpace(body.GroupName)
	if err := app.DB.Save(&group).Error; err != nil {
		storeError(c, err, "Group not found")
		return
	}
	c.JSON(http.StatusOK, group)
}

func (app *App) DeleteGroup(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	res := app.DB.Delete(&Group{}, "id = ?", id)
	if res.Error != nil {
		storeError(c, res.Error, "Group not found")
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "Group not found")
		return
	}
	c.Status(http.StatusNoContent)
}
