package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/internal/api/handler"
	"github.com/leandrovr13/onfly/internal/api/middleware"
	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/pkg/jwt"
	"github.com/leandrovr13/onfly/pkg/redis"
)

// Setup builds the Gin engine; a nil rdb disables token revocation and login throttling
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist, limiter = rdb, rdb
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.GET("/health", health)
	{
		throttle := middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", throttle, h.Auth.Login)
			auth.POST("/register", throttle, h.Auth.Register)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/profile", h.User.UpdateProfile)
			authorized.GET("/user", h.User.GetCurrentUser)

			orders := authorized.Group("/travel-orders")
			{
				orders.GET("", h.TravelOrder.List)
				orders.POST("", h.TravelOrder.Create)
				orders.GET("/export", middleware.RoleAuth(model.RoleAdmin), h.Export.ExportTravelOrders)
				orders.GET("/:id", h.TravelOrder.Get)
				// admin is enforced by the service so the rule holds for every caller
				orders.PATCH("/:id/status", h.TravelOrder.UpdateStatus)
			}

			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.POST("/read-all", h.Notification.MarkAllRead)
				notifications.POST("/:id/read", h.Notification.MarkRead)
			}
		}
	}

	return r
}
