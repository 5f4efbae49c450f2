package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"suviet_server/internal/services"
	"suviet_server/internal/timeline"
	"suviet_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

type TimelineController struct {
	store        TimelineStore
	headerOffset int
}

func NewTimelineController(store TimelineStore, headerOffset int) *TimelineController {
	return &TimelineController{store: store, headerOffset: headerOffset}
}

// respondServiceError maps service errors to status codes
func respondServiceError(c *gin.Context, err error, action string) {
	status := http.StatusInternalServerError
	message := "Database error occurred while trying to " + action
	switch {
	case errors.Is(err, services.ErrPeriodNotFound), errors.Is(err, services.ErrEventNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrPeriodExists), errors.Is(err, services.ErrEventTypeExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrInvalidSlug):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		colors.PrintError("Failed to %s: %v", action, err)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   "Failed to " + action,
		"message": message,
	})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Invalid JSON format in request body",
		"message": "Please check your JSON syntax and required fields",
		"details": err.Error(),
	})
}

// GetPeriods returns all periods in display order
func (tc *TimelineController) GetPeriods(c *gin.Context) {
	periods, err := tc.store.ListPeriods(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "fetch periods")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    periods,
		"count":   len(periods),
	})
}

// GetPeriod returns a single period by slug
func (tc *TimelineController) GetPeriod(c *gin.Context) {
	period, err := tc.store.GetPeriod(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "fetch period")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": period})
}

// CreatePeriod creates a new period
func (tc *TimelineController) CreatePeriod(c *gin.Context) {
	var req services.PeriodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	period, err := tc.store.CreatePeriod(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create period")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    period,
		"message": "Period created successfully",
	})
}

// UpdatePeriod updates an existing period
func (tc *TimelineController) UpdatePeriod(c *gin.Context) {
	var req services.PeriodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	period, err := tc.store.UpdatePeriod(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		respondServiceError(c, err, "update period")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    period,
		"message": "Period updated successfully",
	})
}

// DeletePeriod deletes a period and its events
func (tc *TimelineController) DeletePeriod(c *gin.Context) {
	if err := tc.store.DeletePeriod(c.Request.Context(), c.Param("slug")); err != nil {
		respondServiceError(c, err, "delete period")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Period deleted successfully"})
}

// GetEvents returns events, optionally filtered with ?period=<slug>
func (tc *TimelineController) GetEvents(c *gin.Context) {
	events, err := tc.store.ListEvents(c.Request.Context(), c.Query("period"))
	if err != nil {
		respondServiceError(c, err, "fetch events")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    events,
		"count":   len(events),
	})
}

func parseEventID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid event ID",
			"message": "Event ID must be a valid number",
		})
		return 0, false
	}
	return uint(id), true
}

// GetEvent returns a single event by ID
func (tc *TimelineController) GetEvent(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	event, err := tc.store.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": event})
}

// CreateEvent creates a new event
func (tc *TimelineController) CreateEvent(c *gin.Context) {
	var req services.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	event, err := tc.store.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create event")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    event,
		"message": "Event created successfully",
	})
}

// DeleteEvent deletes an event
func (tc *TimelineController) DeleteEvent(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	if err := tc.store.DeleteEvent(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted successfully"})
}

// GetEventTypes returns all event types
func (tc *TimelineController) GetEventTypes(c *gin.Context) {
	types, err := tc.store.ListEventTypes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "fetch event types")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": types, "count": len(types)})
}

// CreateEventType creates a new event type
func (tc *TimelineController) CreateEventType(c *gin.Context) {
	var req services.EventTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	eventType, err := tc.store.CreateEventType(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create event type")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": eventType})
}

// GetTimeline returns the timeline view for ?period=<slug>: the active period,
// its events, previous/next availability and every period group.
func (tc *TimelineController) GetTimeline(c *gin.Context) {
	ctx := c.Request.Context()

	periods, err := tc.store.ListPeriods(ctx)
	if err != nil {
		respondServiceError(c, err, "fetch periods")
		return
	}
	events, err := tc.store.ListEvents(ctx, "")
	if err != nil {
		respondServiceError(c, err, "fetch events")
		return
	}

	selector := timeline.NewSelector(timeline.NewAnchorScroller(tc.headerOffset, nil))
	selector.SetData(periods, events)
	selector.SyncActive(c.Query("period"))

	snapshot := selector.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"data":          snapshot,
		"header_offset": tc.headerOffset,
	})
}
