package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucSession "github.com/BruksfildServices01/salon-scheduler/internal/usecase/session"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	waitCache := cache.NewWaitCache(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — SESSIONS
	// ======================================================
	createSessionsUC := ucSession.NewCreateSessions(
		scheduleRepo,
		auditDispatcher,
		cfg.SlotIntervalMin,
	)

	editSessionUC := ucSession.NewEditSession(
		scheduleRepo,
		auditDispatcher,
		cfg.SlotIntervalMin,
	)

	applyLeaveUC := ucSession.NewApplyLeave(
		scheduleRepo,
		auditDispatcher,
	)

	deleteSessionUC := ucSession.NewDeleteSession(
		scheduleRepo,
		auditDispatcher,
	)

	listSlotsUC := ucSession.NewListSlots(scheduleRepo)

	resyncBarberTagsUC := ucSession.NewResyncBarberTags(
		scheduleRepo,
		auditDispatcher,
	)

	requestLeaveUC := ucSession.NewRequestLeave(
		scheduleRepo,
		auditDispatcher,
	)

	decideLeaveUC := ucSession.NewDecideLeave(
		scheduleRepo,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookSlotUC := ucAppointment.NewBookSlot(
		appointmentRepo,
		auditDispatcher,
	)

	transitionUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		waitCache,
		auditDispatcher,
	)

	transferUC := ucAppointment.NewTransferAppointment(
		appointmentRepo,
		waitCache,
		auditDispatcher,
	)

	checkInWalkInUC := ucAppointment.NewCheckInWalkIn(
		appointmentRepo,
		waitCache,
		auditDispatcher,
	)

	estimateWaitUC := ucAppointment.NewEstimateWait(
		appointmentRepo,
		waitCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	sessionHandler := handlers.NewSessionHandler(
		createSessionsUC,
		editSessionUC,
		applyLeaveUC,
		deleteSessionUC,
		listSlotsUC,
		resyncBarberTagsUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookSlotUC,
		transitionUC,
		transferUC,
	)

	walkInHandler := handlers.NewWalkInHandler(
		checkInWalkInUC,
		estimateWaitUC,
	)

	leaveHandler := handlers.NewLeaveHandler(
		requestLeaveUC,
		decideLeaveUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/barbers/:id/slots", sessionHandler.ListSlots)
		api.GET("/barbers/:id/wait", walkInHandler.EstimateWait)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// SESSIONS
			secured.POST("/me/sessions", sessionHandler.Create)
			secured.PATCH("/sessions/:id", sessionHandler.Edit)
			secured.DELETE("/sessions/:id", sessionHandler.Delete)
			secured.POST("/barbers/:id/resync", sessionHandler.Resync)

			// LEAVE
			secured.POST("/me/leaves", leaveHandler.Request)
			secured.PATCH("/leaves/:id", leaveHandler.Decide)

			// APPOINTMENTS
			secured.POST("/appointments", appointmentHandler.Book)
			secured.POST("/walkins", walkInHandler.CheckIn)
			secured.PATCH("/appointments/:id/status", appointmentHandler.Transition)
			secured.POST("/appointments/:id/transfer", appointmentHandler.Transfer)
		}
	}
}
