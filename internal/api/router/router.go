package router

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/farmkonnect-notifier/internal/api/handlers/notification"
	"github.com/aliskhannn/farmkonnect-notifier/internal/api/handlers/preferences"
	"github.com/aliskhannn/farmkonnect-notifier/internal/api/handlers/push"
	"github.com/aliskhannn/farmkonnect-notifier/internal/api/middlewares"
)

func New(notifHandler *notification.Handler, prefsHandler *preferences.Handler, pushHandler *push.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	metrics := promhttp.Handler()
	e.GET("/metrics", func(c *ginext.Context) {
		metrics.ServeHTTP(c.Writer, c.Request)
	})

	notifications := e.Group("/api/notifications")
	{
		notifications.POST("", notifHandler.Send)
		notifications.GET("/:id", notifHandler.Get)
		notifications.POST("/:id/read", notifHandler.MarkRead)
		notifications.DELETE("/:id", notifHandler.Delete)
	}

	users := e.Group("/api/users/:user_id")
	{
		users.GET("/notifications", notifHandler.ListByUser)
		users.POST("/notifications/read", notifHandler.MarkAllRead)
		users.GET("/preferences", prefsHandler.Get)
		users.PUT("/preferences", prefsHandler.Update)
	}

	retries := e.Group("/api/retry")
	{
		retries.POST("/process", notifHandler.ProcessRetries)
		retries.GET("/stats", notifHandler.RetryStats)
	}

	e.GET("/ws/push/:user_id", pushHandler.Connect)

	return e
}
