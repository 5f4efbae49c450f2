package http

import (
	"net/http"

	"suviet_server/internal/http/controllers"

	"github.com/gin-gonic/gin"
)

// Dependencies are the stores and settings the routes are built from
type Dependencies struct {
	Settings             controllers.SettingStore
	Timeline             controllers.TimelineStore
	Hub                  *WebSocketHub
	DefaultCooldownHours float64
	HeaderOffset         int
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	var broadcaster controllers.SettingBroadcaster
	if deps.Hub != nil {
		broadcaster = deps.Hub
		// Live setting updates for open pages
		router.GET("/ws", deps.Hub.HandleWebSocket)
	}

	settingController := controllers.NewSettingController(deps.Settings, broadcaster)
	popupController := controllers.NewPopupController(deps.Settings, deps.DefaultCooldownHours)
	timelineController := controllers.NewTimelineController(deps.Timeline, deps.HeaderOffset)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		settings := api.Group("/settings")
		{
			settings.GET("", settingController.GetSettings)
			settings.GET("/:key", settingController.GetSetting)
			settings.PUT("/:key", settingController.UpdateSetting)
		}

		api.GET("/popup", popupController.GetPopup)

		periods := api.Group("/periods")
		{
			periods.GET("", timelineController.GetPeriods)
			periods.GET("/:slug", timelineController.GetPeriod)
			periods.POST("", timelineController.CreatePeriod)
			periods.PUT("/:slug", timelineController.UpdatePeriod)
			periods.DELETE("/:slug", timelineController.DeletePeriod)
		}

		events := api.Group("/events")
		{
			events.GET("", timelineController.GetEvents)
			events.GET("/:id", timelineController.GetEvent)
			events.POST("", timelineController.CreateEvent)
			events.DELETE("/:id", timelineController.DeleteEvent)
		}

		eventTypes := api.Group("/event-types")
		{
			eventTypes.GET("", timelineController.GetEventTypes)
			eventTypes.POST("", timelineController.CreateEventType)
		}

		api.GET("/timeline", timelineController.GetTimeline)
	}
}

// Endpoint describes a route for the start-up listing
type Endpoint struct {
	Method      string
	Path        string
	Description string
}

// Endpoints lists the public API for the start-up banner
func Endpoints() []Endpoint {
	return []Endpoint{
		{"GET", "/health", "Health check"},
		{"GET", "/ws", "Live setting updates"},
		{"GET", "/api/settings", "List settings"},
		{"GET", "/api/settings/:key", "Read one setting as {value}"},
		{"PUT", "/api/settings/:key", "Update a setting"},
		{"GET", "/api/popup", "Parsed popup settings"},
		{"GET", "/api/periods", "List periods in display order"},
		{"POST", "/api/periods", "Create period"},
		{"GET", "/api/periods/:slug", "Get period"},
		{"PUT", "/api/periods/:slug", "Update period"},
		{"DELETE", "/api/periods/:slug", "Delete period and its events"},
		{"GET", "/api/events", "List events (?period=slug)"},
		{"POST", "/api/events", "Create event"},
		{"GET", "/api/events/:id", "Get event"},
		{"DELETE", "/api/events/:id", "Delete event"},
		{"GET", "/api/event-types", "List event types"},
		{"POST", "/api/event-types", "Create event type"},
		{"GET", "/api/timeline", "Timeline view (?period=slug)"},
	}
}
