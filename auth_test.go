package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthedEcho is a minimal router exposing what AuthMiddleware decoded.
func newAuthedEcho(app *App) *gin.Engine {
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(app.Config.JWTSecret), func(c *gin.Context) {
		ident, _ := getIdentity(c)
		c.JSON(http.StatusOK, gin.H{"username": ident.Username, "roles": ident.Roles.Strings()})
	})
	return r
}

// fakeKingsChat serves the profile endpoint: a fixed access token maps
// to a fixed profile, anything else is rejected.
func fakeKingsChat(t *testing.T, accessToken, username, avatar string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/developer/api/profile" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+accessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"profile":{"username":"` + username + `","avatar":"` + avatar + `"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginIssuesUsableToken(t *testing.T) {
	app, r := newTestApp(t)
	app.KC = NewKingsChatClient(fakeKingsChat(t, "kc-token", "johndoe", "https://cdn.example/avatar.png").URL)

	group := seedGroup(t, app, "Group One")
	chapter := seedChapter(t, app, "Central", group.ID)
	user := seedUser(t, app, "johndoe", &chapter.ID)
	require.NoError(t, app.DB.Create(&UserRole{UserID: user.ID, RoleID: roleID(t, app, RoleZonalAdmin)}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{"access_token": "kc-token"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username    string   `json:"username"`
			AvatarURL   string   `json:"avatar_url"`
			Roles       []string `json:"roles"`
			ChapterName string   `json:"chapter_name"`
		} `json:"user"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "johndoe", resp.User.Username)
	assert.Equal(t, []string{"Zonal Admin"}, resp.User.Roles)
	assert.Equal(t, "Central", resp.User.ChapterName)
	// The avatar refreshes from the gateway on every login.
	assert.Equal(t, "https://cdn.example/avatar.png", resp.User.AvatarURL)

	// The issued token works against a role-gated endpoint.
	w = doJSON(t, r, http.MethodPost, "/api/groups", resp.Token, map[string]string{"group_name": "Group Two"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestLoginRejectsBadAccessToken(t *testing.T) {
	app, r := newTestApp(t)
	app.KC = NewKingsChatClient(fakeKingsChat(t, "kc-token", "johndoe", "").URL)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{"access_token": "wrong-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsUnprovisionedUser(t *testing.T) {
	app, r := newTestApp(t)
	app.KC = NewKingsChatClient(fakeKingsChat(t, "kc-token", "stranger", "").URL)

	// The gateway knows the profile but no admin created the user here.
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{"access_token": "kc-token"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, app.DB.Model(&User{}).Count(&count).Error)
	assert.Zero(t, count, "login must never provision a user")
}

func TestLoginRequiresAccessToken(t *testing.T) {
	_, r := newTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	user := seedUser(t, app, "johndoe", nil)
	token, err := app.GenerateToken(user.ID, "johndoe", RoleSet{RoleDeveloper, RoleCellLeader})
	require.NoError(t, err)

	// The middleware must accept its own mint.
	r := newAuthedEcho(app)
	w := doJSON(t, r, http.MethodGet, "/whoami", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ident struct {
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	decodeBody(t, w, &ident)
	assert.Equal(t, "johndoe", ident.Username)
	assert.ElementsMatch(t, []string{"Developer", "Cell Leader"}, ident.Roles)
}
