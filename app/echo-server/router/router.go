package router

import (
	"aiAutomate/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupROIRoutes(api *echo.Group, handler *rest.ROIHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	roi := api.Group("/roi")
	roi.POST("/calculate", handler.Calculate)
	roi.POST("/export", handler.Export)

	api.GET("/admin/roi/sessions/:session_id", handler.History, authRequired, adminOnly)
}

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler) {
	sessions := api.Group("/sessions")
	sessions.POST("", handler.StartSession)
	sessions.POST("/:session_id/signals", handler.RecordSignals)
	sessions.GET("/:session_id/intent", handler.DetectIntent)
	sessions.GET("/:session_id/content", handler.Content)
}

func SetupContentRoutes(api *echo.Group, handler *rest.ContentHandler) {
	content := api.Group("/content")
	content.POST("/impressions", handler.Impression)
	content.POST("/conversions", handler.Conversion)
}

func SetupAdminRoutes(api *echo.Group, auth *rest.AuthHandler, handler *rest.ContentAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.POST("/admin/login", auth.Login)

	admin := api.Group("/admin/content", authRequired, adminOnly)
	admin.GET("/variants", handler.ListVariants)
	admin.PUT("/variants", handler.UpsertVariant)
	admin.GET("/variants/:audience/:variant_id/events", handler.RecentEvents)
}
