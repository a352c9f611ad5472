package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/fitpass/gym-system/docs"
	"github.com/fitpass/gym-system/internal/api/handler"
	"github.com/fitpass/gym-system/internal/api/middleware"
	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/service"
	"github.com/fitpass/gym-system/internal/core/token"
	"github.com/fitpass/gym-system/internal/infrastructure/config"
	mongodb "github.com/fitpass/gym-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fitpass/gym-system/internal/infrastructure/db/redis"
	"github.com/fitpass/gym-system/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered. The returned
// dispatcher must be started by the caller before serving traffic.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gym_http"))

	// --- Repositories ---
	reservationStore := mongodb.NewReservationStore(client, db)
	classRepo := mongodb.NewClassRepository(db)
	disciplineRepo := mongodb.NewDisciplineRepository(db)
	membershipRepo := mongodb.NewMembershipRepository(db)
	memberRepo := mongodb.NewMemberRepository(db)
	accessRepo := mongodb.NewAccessRepository(db)
	occupancy := redisdb.NewOccupancyCounter(rdb)
	dedup := redisdb.NewScanDedup(rdb)

	// --- Codecs ---
	codec := token.NewCodec(cfg.TokenSecret, cfg.TokenTTL())
	checkpoints := token.NewCheckpointCodec(cfg.TokenSecret)

	// --- Services ---
	authService := service.NewAuthService(memberRepo, cfg.JWTSecret, 24*time.Hour)
	reservationService := service.NewReservationService(
		reservationStore, classRepo, disciplineRepo, membershipRepo,
		cfg.CancellationWindow(), log,
	)
	checkinService := service.NewCheckinService(
		codec, checkpoints,
		memberRepo, membershipRepo, disciplineRepo, classRepo,
		reservationService, reservationStore, accessRepo,
		occupancy, dedup, log,
	)
	tokenService := service.NewTokenService(codec, checkpoints, memberRepo, log)
	classService := service.NewClassService(classRepo, disciplineRepo, membershipRepo, reservationStore, log)
	dispatcher := queue.NewDispatcher(cfg.ScanWorkers, checkinService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	checkinHandler := handler.NewCheckinHandler(checkinService, dispatcher, accessRepo)
	tokenHandler := handler.NewTokenHandler(tokenService)
	classHandler := handler.NewClassHandler(classService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations", reservationHandler.List)
	v1.POST("/reservations/:id/cancel", reservationHandler.Cancel)

	v1.GET("/tokens/member", tokenHandler.MemberToken)
	v1.GET("/tokens/checkpoint/:site", tokenHandler.CheckpointCode,
		middleware.RequireAction(domain.ActionCheckpointCode))

	v1.POST("/checkin", checkinHandler.CheckIn,
		middleware.RequireAction(domain.ActionCheckIn))
	v1.POST("/checkin/scans", checkinHandler.UploadScans,
		middleware.RequireAction(domain.ActionCheckIn))
	v1.GET("/members/:id/access", checkinHandler.History,
		middleware.RequireAction(domain.ActionListAny))

	v1.POST("/classes", classHandler.Create,
		middleware.RequireAction(domain.ActionManageClasses))
	v1.GET("/classes", classHandler.List)
	v1.DELETE("/classes/:id", classHandler.Delete,
		middleware.RequireAction(domain.ActionManageClasses))
	v1.DELETE("/disciplines/:id", classHandler.DeleteDiscipline,
		middleware.RequireAction(domain.ActionManageClasses))

	return e, dispatcher
}
