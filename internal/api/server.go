package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hadir-app/hadir-api/docs"
	v1 "github.com/hadir-app/hadir-api/internal/api/handler/v1"
	"github.com/hadir-app/hadir-api/internal/api/middleware"
	"github.com/hadir-app/hadir-api/internal/config"
	"github.com/hadir-app/hadir-api/internal/repository"
	"github.com/hadir-app/hadir-api/internal/repository/dao"
	"github.com/hadir-app/hadir-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	eventHandler := s.initEventHandler(db)
	sessionHandler := s.initSessionHandler(db)
	participantHandler := s.initParticipantHandler(db)
	attendanceHandler := s.initAttendanceHandler(db)
	s.MountHandlers(eventHandler, sessionHandler, participantHandler, attendanceHandler)

	return s
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	repo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initSessionHandler(db *gorm.DB) *v1.SessionHandler {
	repo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewSessionService(repo, eventRepo)
	handler := v1.NewSessionHandler(svc)

	return handler
}

func (s *Server) initParticipantHandler(db *gorm.DB) *v1.ParticipantHandler {
	repo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewParticipantService(repo, eventRepo)
	handler := v1.NewParticipantHandler(svc)

	return handler
}

func (s *Server) initAttendanceHandler(db *gorm.DB) *v1.AttendanceHandler {
	repo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	queue := service.NewOfflineQueue(service.NewFilePendingStore(s.Config.API.PendingQueuePath))
	svc := service.NewAttendanceService(repo, sessionRepo, participantRepo, queue)
	handler := v1.NewAttendanceHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	eventHandler *v1.EventHandler,
	sessionHandler *v1.SessionHandler,
	participantHandler *v1.ParticipantHandler,
	attendanceHandler *v1.AttendanceHandler,
) {
	const basePath = "/api/v1"

	events := s.Router.Group(basePath)
	{
		events.POST("/events", eventHandler.HandleCreateEvent)
		events.GET("/events", eventHandler.HandleGetEvents)
		events.GET("/events/:eventID", eventHandler.HandleGetEvent)
		events.POST("/events/:eventID/sessions", sessionHandler.HandleCreateSession)
		events.GET("/events/:eventID/sessions", sessionHandler.HandleGetSessions)
		events.POST("/events/:eventID/participants", participantHandler.HandleCreateParticipant)
		events.POST("/events/:eventID/participants/import", participantHandler.HandleImportParticipants)
		events.GET("/events/:eventID/participants", participantHandler.HandleGetParticipants)
	}

	sessions := s.Router.Group(basePath)
	{
		sessions.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)
		sessions.POST("/sessions/:sessionID/scan", attendanceHandler.HandleScan)
		sessions.GET("/sessions/:sessionID/roster", attendanceHandler.HandleGetRoster)
		sessions.GET("/sessions/:sessionID/records", attendanceHandler.HandleGetRecords)
		sessions.GET("/sessions/:sessionID/summary", attendanceHandler.HandleGetSummary)
		sessions.POST("/sessions/:sessionID/bulk", attendanceHandler.HandleProposeBulk)
		sessions.POST("/bulk/:token/confirm", attendanceHandler.HandleConfirmBulk)
		sessions.DELETE("/bulk/:token", attendanceHandler.HandleCancelBulk)
		sessions.POST("/attendance/flush", attendanceHandler.HandleFlushQueue)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Hadir attendance API"
	docs.SwaggerInfo.Description = "Event and session attendance tracking with QR scan check-in/check-out."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
