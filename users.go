package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRequest struct {
	KingschatUsername string     `json:"kingschat_username"`
	FullName          string     `json:"full_name"`
	Email             string     `json:"email"`
	ContactNumber     string     `json:"contact_number"`
	ChapterID         *uuid.UUID `json:"chapter_id"`
}

type userView struct {
	ID                uuid.UUID  `json:"id"`
	KingschatUsername string     `json:"kingschat_username"`
	FullName          string     `json:"full_name"`
	Email             string     `json:"email"`
	ContactNumber     string     `json:"contact_number"`
	AvatarURL         string     `json:"avatar_url"`
	ChapterID         *uuid.UUID `json:"chapter_id"`
	ChapterName       *string    `json:"chapter_name"`
	GroupName         *string    `json:"group_name"`
}

func (app *App) CreateUser(c *gin.Context) {
	var body UserRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		strings.TrimSpace(body.KingschatUsername) == "" ||
		strings.TrimSpace(body.FullName) == "" ||
		body.ChapterID == nil {
		jsonError(c, http.StatusBadRequest, "KingsChat handle, full name and chapter ID are required.")
		return
	}

	var chapter Chapter
	if err := app.DB.First(&chapter, "id = ?", *body.ChapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "The specified chapter does not exist.")
			return
		}
		storeError(c, err, "Chapter not found")
		return
	}

	user := User{
		KingschatUsername: strings.TrimSpace(body.KingschatUsername),
		FullName:          strings.TrimSpace(body.FullName),
		Email:             body.Email,
		ContactNumber:     body.ContactNumber,
		ChapterID:         body.ChapterID,
	}
	if err := app.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			jsonError(c, http.StatusConflict, "A user with this KingsChat username already exists.")
			return
		}
		storeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func userViewQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&User{}).
		Select(`users.id, users.kingschat_username, users.full_name, users.email,
			users.contact_number, users.avatar_url, users.chapter_id,
			chapters.chapter_name, groups.group_name`).
		Joins("LEFT JOIN chapters ON chapters.id = users.chapter_id").
		Joins("LEFT JOIN groups ON groups.id = chapters.group_id")
}

func (app *App) ListUsers(c *gin.Context) {
	var views []userView
	if err := userViewQuery(app.DB).Order("users.full_name").Scan(&views).Error; err != nil {
		storeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, views)
}

func (app *App) GetUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var view userView
	if err := userViewQuery(app.DB).Where("users.id = ?", id).First(&view).Error; err != nil {
		storeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (app *App) UpdateUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var body UserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var user User
	if err := app.DB.First(&user, "id = ?", id).Error; err != nil {
		storeError(c, err, "User not found")
		return
	}

	// Only provided fields change.
	if v := strings.TrimSpace(body.KingschatUsername); v != "" {
		user.KingschatUsername = v
	}
	if v := strings.TrimSpace(body.FullName); v != "" {
		user.FullName = v
	}
	if body.Email != "" {
		user.Email = body.Email
	}
	if body.ContactNumber != "" {
		user.ContactNumber = body.ContactNumber
	}
	if body.ChapterID != nil {
		user.ChapterID = body.ChapterID
	}

	if err := app.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			jsonError(c, http.StatusConflict, "A user with this KingsChat username already exists.")
			return
		}
		storeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (app *App) DeleteUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	res := app.DB.Delete(&User{}, "id = ?", id)
	if res.Error != nil {
		storeError(c, res.Error, "User not found")
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "User not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------
// Roles
// ---------------------------------------------------------------

func (app *App) CreateRole(c *gin.Context) {
	var body struct {
		RoleName string `json:"role_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.RoleName) == "" {
		jsonError(c, http.StatusBadRequest, "Role name is required")
		return
	}

	role := RoleRecord{RoleName: strings.TrimSpace(body.RoleName)}
	if err := app.DB.Create(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			jsonError(c, http.StatusConflict, "A role with this name already exists.")
			return
		}
		storeError(c, err, "Role not found")
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (app *App) ListRoles(c *gin.Context) {
	var roles []RoleRecord
	if err := app.DB.Order("id").Find(&roles).Error; err != nil {
		storeError(c, err, "Role not found")
		return
	}
	c.JSON(http.StatusOK, roles)
}

// AssignUserRoles replaces the user's role set wholesale: delete the
// existing assignments, insert the new ones, one transaction. This is
// deliberately a "replace set" operation, not incremental add/remove.
func (app *App) AssignUserRoles(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		Roles []uint `json:"roles"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.Roles) == 0 {
		jsonError(c, http.StatusBadRequest, "An array of role IDs is required.")
		return
	}

	var user User
	if err := app.DB.First(&user, "id = ?", userID).Error; err != nil {
		storeError(c, err, "User not found")
		return
	}

	var count int64
	if err := app.DB.Model(&RoleRecord{}).Where("id IN ?", body.Roles).Count(&count).Error; err != nil {
		storeError(c, err, "Role not found")
		return
	}
	if count != int64(len(body.Roles)) {
		jsonError(c, http.StatusNotFound, "One or more role IDs do not exist.")
		return
	}

	err := app.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&UserRole{}).Error; err != nil {
			return err
		}
		assignments := make([]UserRole, 0, len(body.Roles))
		for _, roleID := range body.Roles {
			assignments = append(assignments, UserRole{UserID: userID, RoleID: roleID})
		}
		return tx.Create(&assignments).Error
	})
	if err != nil {
		storeError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Roles successfully assigned to user %s", userID)})
}

func (app *App) GetUserRoles(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var roles []RoleRecord
	err := app.DB.Model(&RoleRecord{}).
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ?", userID).
		Find(&roles).Error
	if err != nil {
		storeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, roles)
}
