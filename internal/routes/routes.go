package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/example/attendance_bot/internal/attendance"
	"github.com/example/attendance_bot/internal/config"
	"github.com/example/attendance_bot/internal/controllers"
	"github.com/example/attendance_bot/internal/middleware"
	"github.com/example/attendance_bot/internal/schedule"
	"github.com/example/attendance_bot/internal/transport"
	"github.com/example/attendance_bot/internal/ws"
)

type Deps struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Store     *attendance.GormStore
	Router    *attendance.Router
	Planner   *attendance.Planner
	Resolver  *schedule.Resolver
	Transport transport.Transport
	Hub       *ws.RosterHub
}

func Register(r *gin.Engine, d Deps) {
	expiresMins, err := time.ParseDuration(d.Cfg.JWTExpiresIn + "m")
	if err != nil || expiresMins == 0 {
		expiresMins = 60 * time.Minute
	}

	authCtrl := &controllers.AuthController{DB: d.DB, JWTSecret: d.Cfg.JWTSecret, ExpiresIn: expiresMins}
	adminCtrl := &controllers.AdminController{DB: d.DB}
	groupCtrl := &controllers.GroupController{DB: d.DB}
	subjectCtrl := &controllers.SubjectController{DB: d.DB}
	scheduleCtrl := &controllers.ScheduleController{Resolver: d.Resolver}
	journalCtrl := &controllers.JournalController{DB: d.DB}
	exportCtrl := &controllers.ExportController{DB: d.DB}
	broadcastCtrl := &controllers.BroadcastController{Dir: d.Store, Transport: d.Transport}
	triggerCtrl := &controllers.TriggerController{Planner: d.Planner, Dispatcher: d.Planner.Dispatcher, Assembler: d.Planner.Assembler}
	webhookCtrl := &controllers.WebhookController{Router: d.Router, Token: d.Cfg.WebhookToken}

	// Public
	r.POST("/api/v1/auth/login", authCtrl.Login)
	r.POST("/api/v1/transport/updates", webhookCtrl.HandleUpdate)

	// Protected
	authMW := middleware.AuthMiddleware(d.DB, middleware.AuthConfig{JWTSecret: d.Cfg.JWTSecret})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)

		api.GET("/schedule", scheduleCtrl.GetSchedule)
		api.GET("/journal", journalCtrl.ListJournal)
		api.GET("/explanations", journalCtrl.ListExplanations)
		api.GET("/students/:id/grades", journalCtrl.ListGrades)
		api.POST("/grades", journalCtrl.SetGrade)

		api.GET("/ws/roster", ws.RosterHandler(d.Hub))

		// Admin-only
		admin := api.Group("/admin", middleware.RequireRoles("admin"))
		{
			admin.GET("/users", adminCtrl.ListUsers)
			admin.POST("/users", authCtrl.Register)
			admin.PUT("/users/:user_id", adminCtrl.UpdateUser)
			admin.DELETE("/users/:user_id", adminCtrl.DeleteUser)

			admin.GET("/groups", groupCtrl.ListGroups)
			admin.POST("/groups", groupCtrl.CreateGroup)
			admin.GET("/groups/:id/representatives", groupCtrl.ListRepresentatives)
			admin.PUT("/groups/:id/representatives", groupCtrl.AssignRepresentative)
			admin.DELETE("/groups/:id/representatives/:role", groupCtrl.RemoveRepresentative)

			admin.GET("/students", groupCtrl.ListStudents)
			admin.POST("/students", groupCtrl.CreateStudent)
			admin.DELETE("/students/:id", groupCtrl.DeleteStudent)

			admin.GET("/subjects", subjectCtrl.ListSubjects)
			admin.POST("/subjects", subjectCtrl.CreateSubject)
			admin.GET("/slots", subjectCtrl.ListSlots)
			admin.POST("/slots", subjectCtrl.CreateSlot)
			admin.DELETE("/slots/:id", subjectCtrl.DeleteSlot)

			admin.POST("/broadcast", broadcastCtrl.Broadcast)

			admin.POST("/triggers/plan", triggerCtrl.Plan)
			admin.POST("/triggers/notify", triggerCtrl.Notify)
			admin.POST("/triggers/collect", triggerCtrl.Collect)

			admin.GET("/export", exportCtrl.ListTables)
			admin.GET("/export/:table", exportCtrl.ExportTable)
		}
	}
}
