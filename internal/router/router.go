package router

import (
	"fmt"
	"strings"

	"github.com/sdrescue/trashtrack/internal/cache"
	"github.com/sdrescue/trashtrack/internal/config"
	staffhandlers "github.com/sdrescue/trashtrack/internal/http/handlers/staff"
	"github.com/sdrescue/trashtrack/internal/http/response"
	"github.com/sdrescue/trashtrack/internal/logger"
	"github.com/sdrescue/trashtrack/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and all API routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := staffhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tt"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), handler.Login)
		}

		authed := apiV1.Group("")
		authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		authed.Use(RBACMiddleware(c.AuthzService))
		{
			authed.GET("/auth/me", handler.Me)
			authed.PUT("/auth/password", handler.ChangePassword)

			authed.GET("/participants", handler.GetParticipants)
			authed.POST("/participants", handler.CreateParticipant)
			authed.GET("/participants/:id", handler.GetParticipant)
			authed.PATCH("/participants/:id", handler.UpdateParticipant)
			authed.GET("/participants/:id/payment-status", handler.GetParticipantPaymentStatus)

			authed.GET("/shifts", handler.GetShifts)
			authed.POST("/shifts", handler.ClockIn)
			authed.GET("/shifts/:id", handler.GetShift)
			authed.PATCH("/shifts/:id", handler.UpdateShift)
			authed.DELETE("/shifts/:id", handler.DeleteShift)

			authed.GET("/payments", handler.GetPayments)
			authed.POST("/payments", handler.IssuePayment)
			authed.GET("/payments/check", handler.CheckPaymentEligibility)
			authed.GET("/payments/:id", handler.GetPayment)

			authed.GET("/homework", handler.GetHomework)
			authed.POST("/homework", handler.CreateHomework)
			authed.PATCH("/homework/:id", handler.UpdateHomework)
			authed.DELETE("/homework/:id", handler.DeleteHomework)

			authed.GET("/outcomes", handler.GetOutcomes)
			authed.POST("/outcomes", handler.CreateOutcome)

			authed.GET("/dashboard/stats", handler.GetDashboardStats)

			authed.GET("/reports/monthly", handler.GetMonthlyReport)
			authed.GET("/reports/monthly/export", handler.ExportMonthlyReport)

			authed.GET("/users", handler.GetUsers)
			authed.POST("/users", handler.CreateUser)
			authed.PATCH("/users/:id", handler.UpdateUser)
		}
	}

	return r
}
