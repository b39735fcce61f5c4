package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App carries the process-wide dependencies. There is no other shared
// state across requests; sessions live entirely in the signed token.
type App struct {
	DB     *gorm.DB
	Config *Config
	KC     *KingsChatClient

	apiLimiter   *RateLimiter
	loginLimiter *RateLimiter
}

func NewApp(db *gorm.DB, cfg *Config) *App {
	return &App{
		DB:           db,
		Config:       cfg,
		KC:           NewKingsChatClient(cfg.KCAPIBase),
		apiLimiter:   NewRateLimiter(cfg.APIRateLimit, cfg.APIRateWindow),
		loginLimiter: NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow),
	}
}

func (app *App) SetupRoutes(r *gin.Engine) {

	// Public, with the stricter login budget
	auth := r.Group("/api/auth")
	auth.Use(app.loginLimiter.Middleware("Too many login attempts from this IP, please try again in 1 hour."))
	auth.POST("/login", app.Login)

	// Everything else requires a session credential
	api := r.Group("/api")
	api.Use(app.apiLimiter.Middleware("Too many requests from this IP, please try again in 15 minutes."))
	api.Use(AuthMiddleware(app.Config.JWTSecret))
	{
		// GROUPS
		groups := api.Group("/groups")
		groups.POST("", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.CreateGroup)
		groups.GET("", app.ListGroups)
		groups.GET("/:id", app.GetGroup)
		groups.PUT("/:id", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.UpdateGroup)
		groups.DELETE("/:id", RequireRoles(RoleDeveloper), app.DeleteGroup)

		// CHAPTERS
		chapters := api.Group("/chapters")
		chapters.POST("", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.CreateChapter)
		chapters.GET("", app.ListChapters)
		chapters.GET("/:id", app.GetChapter)
		chapters.PUT("/:id", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.UpdateChapter)
		chapters.DELETE("/:id", RequireRoles(RoleDeveloper), app.DeleteChapter)

		// USERS + ROLES
		users := api.Group("/users")
		users.POST("/roles", RequireRoles(RoleDeveloper), app.CreateRole)
		users.GET("/roles", app.ListRoles)
		users.POST("", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.CreateUser)
		users.GET("", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.ListUsers)
		users.GET("/:id", app.GetUser)
		users.PUT("/:id", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.UpdateUser)
		users.DELETE("/:id", RequireRoles(RoleDeveloper), app.DeleteUser)
		users.POST("/:id/roles", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.AssignUserRoles)
		users.GET("/:id/roles", app.GetUserRoles)

		// SUNDAY SERVICE
		sunday := api.Group("/reports/sunday")
		sunday.POST("/events", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.CreateSundayEvent)
		sunday.GET("/events", app.ListSundayEvents)
		sunday.PUT("/events/:id", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.UpdateSundayEvent)
		sunday.DELETE("/events/:id", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.DeleteSundayEvent)
		sunday.POST("", RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleGroupAdmin, RoleChapterAdmin), app.SubmitSundayReport)
		sunday.GET("/event/:eventId", app.GetSundayReportsForEvent)
		sunday.PUT("/:reportId", RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleGroupAdmin, RoleChapterAdmin), app.UpdateSundayReport)

		// CAMP
		camp := api.Group("/reports/camp")
		camp.POST("/events", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.CreateCampEvent)
		camp.GET("/events", app.ListCampEvents)
		camp.PUT("/events/:campId", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.UpdateCampEvent)
		camp.DELETE("/events/:campId", RequireRoles(RoleDeveloper, RoleZonalAdmin), app.DeleteCampEvent)
		camp.POST("/attendance", RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleGroupAdmin, RoleChapterAdmin), app.SubmitCampAttendance)
		camp.POST("/summary", RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleGroupAdmin), app.SubmitCampSummary)
		camp.GET("/:campId/full-report", app.GetFullCampReport)
		camp.POST("/:campId/attendees/upload", RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleGroupAdmin), app.UploadCampAttendees)

		// PFCC
		pfcc := api.Group("/reports/pfcc")
		pfcc.POST("", RequireRoles(
			RoleDeveloper, RoleZonalAdmin, RoleZonalPFCCManager, RoleGroupPFCCOfficer,
			RoleChapterPFCCOfficer, RoleCellLeader, RoleCellAssistant,
		), app.SubmitPFCCReport)
		pfcc.GET("", app.ListPFCCReports)
		pfcc.GET("/:reportId", app.GetPFCCReport)
		pfcc.DELETE("/:reportId", RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleZonalPFCCManager), app.DeletePFCCReport)

		// FINANCE
		finance := api.Group("/reports/finance")
		financeRoles := RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleZonalFinanceManager, RoleGroupFinanceOfficer)
		financeAdmin := RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleZonalFinanceManager)
		finance.POST("/group-monthly", financeRoles, app.SubmitMonthlyGroupReport)
		finance.GET("/group-monthly", financeRoles, app.ListMonthlyGroupReports)
		finance.DELETE("/group-monthly/:reportId", financeAdmin, app.DeleteMonthlyGroupReport)
		finance.POST("/pastor-tithe", financeRoles, app.SubmitPastorTitheRecord)
		finance.GET("/pastor-tithe", financeRoles, app.ListPastorTitheRecords)
		finance.DELETE("/pastor-tithe/:recordId", financeAdmin, app.DeletePastorTitheRecord)
		finance.POST("/zonal-remittance", financeAdmin, app.SubmitZonalRemittance)
		finance.GET("/zonal-remittance", financeAdmin, app.ListZonalRemittances)
		finance.DELETE("/zonal-remittance/:recordId", financeAdmin, app.DeleteZonalRemittance)
		finance.POST("/individual-records/upload", RequireRoles(RoleDeveloper, RoleGroupFinanceOfficer), app.UploadIndividualRecords)
		finance.GET("/individual-records", financeRoles, app.ListIndividualRecords)

		// HSLHS
		hslhs := api.Group("/reports/hslhs")
		hslhsRoles := RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleZonalHealingStreamsManager, RoleGroupHealingStreamsOfficer)
		hslhs.POST("", hslhsRoles, app.SubmitHSLHSReport)
		hslhs.GET("", app.ListHSLHSReports)
		hslhs.DELETE("/:reportId", hslhsRoles, app.DeleteHSLHSReport)

		// MATERIALS
		materials := api.Group("/materials")
		materialRoles := RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleZonalMaterialsManager, RoleGroupMaterialsOfficer)
		materials.POST("/books", materialRoles, app.CreateBook)
		materials.GET("/books", app.ListBooks)
		materials.PUT("/books/:bookId", materialRoles, app.UpdateBook)
		materials.DELETE("/books/:bookId", RequireRoles(RoleDeveloper, RoleZonalAdmin, RoleZonalMaterialsManager), app.DeleteBook)
		materials.POST("/book-reports", materialRoles, app.SubmitBookReport)
		materials.GET("/book-reports", app.ListBookReports)
		materials.POST("/pcdl-subscriptions", materialRoles, app.CreatePcdlSubscription)
		materials.GET("/pcdl-subscriptions", app.ListPcdlSubscriptions)
		materials.DELETE("/pcdl-subscriptions/:subId", materialRoles, app.DeletePcdlSubscription)
	}
}
