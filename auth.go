package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateToken signs the session credential: a short-lived HS256 JWT
// carrying the internal user id, username and role names.
func (app *App) GenerateToken(userID uuid.UUID, username string, roles RoleSet) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID.String(),
		"username": username,
		"roles":    roles.Strings(),
		"exp":      time.Now().Add(app.Config.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(app.Config.JWTSecret))
}

type LoginRequest struct {
	AccessToken string `json:"access_token"`
}

// Login handles the KingsChat flow: the client sends the access token
// it got from the third-party login, we exchange it for a verified
// profile, check the user is provisioned here, and issue a session JWT.
func (app *App) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AccessToken == "" {
		jsonError(c, http.StatusBadRequest, "KingsChat access token is required.")
		return
	}

	profile, err := app.KC.FetchProfile(c.Request.Context(), req.AccessToken)
	if err != nil {
		if errors.Is(err, ErrGatewayUnauthorized) {
			jsonError(c, http.StatusUnauthorized, "Invalid or expired KingsChat access token.")
			return
		}
		log.Printf("KingsChat login error: %v", err)
		jsonError(c, http.StatusInternalServerError, "An error occurred during the login process.")
		return
	}

	// Users are provisioned by an admin beforehand; login never creates
	// one. The avatar is refreshed on every login to keep it current.
	var user User
	if err := app.DB.Where("kingschat_username = ?", profile.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusForbidden, "User is not authorized to access this application.")
			return
		}
		storeError(c, err, "User not found.")
		return
	}
	if profile.Avatar != "" && profile.Avatar != user.AvatarURL {
		if err := app.DB.Model(&user).Update("avatar_url", profile.Avatar).Error; err != nil {
			storeError(c, err, "User not found.")
			return
		}
		user.AvatarURL = profile.Avatar
	}

	roles, err := app.userRoles(user.ID)
	if err != nil {
		storeError(c, err, "User not found.")
		return
	}

	token, err := app.GenerateToken(user.ID, user.KingschatUsername, roles)
	if err != nil {
		log.Printf("token signing error: %v", err)
		jsonError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	var chapterName string
	if user.ChapterID != nil {
		var ch Chapter
		if err := app.DB.First(&ch, "id = ?", *user.ChapterID).Error; err == nil {
			chapterName = ch.ChapterName
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"full_name":    user.FullName,
			"username":     user.KingschatUsername,
			"avatar_url":   user.AvatarURL,
			"roles":        roles.Strings(),
			"chapter_id":   user.ChapterID,
			"chapter_name": chapterName,
		},
	})
}

// userRoles loads the caller's role names through the assignment table.
func (app *App) userRoles(userID uuid.UUID) (RoleSet, error) {
	var names []string
	err := app.DB.Model(&RoleRecord{}).
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ?", userID).
		Pluck("roles.role_name", &names).Error
	if err != nil {
		return nil, err
	}
	return RoleSetFromStrings(names), nil
}
