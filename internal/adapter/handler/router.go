package handler

import (
	"context"
	stdErrors "errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	meetingHandler    *Meeting
	actionItemHandler *ActionItem
	chatHandler       *Chat
	metricsHandler    http.Handler
	checks            map[string]HealthCheck
}

// NewRouter creates a new router with all handlers. metricsHandler may be nil.
func NewRouter(
	cfg *config.Config,
	meetingHandler *Meeting,
	actionItemHandler *ActionItem,
	chatHandler *Chat,
	metricsHandler http.Handler,
	checks map[string]HealthCheck,
) *Router {
	return &Router{
		cfg:               cfg,
		meetingHandler:    meetingHandler,
		actionItemHandler: actionItemHandler,
		chatHandler:       chatHandler,
		metricsHandler:    metricsHandler,
		checks:            checks,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = notFoundHandler(e.DefaultHTTPErrorHandler)

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if rt.metricsHandler != nil && rt.cfg.Metrics.Enabled {
		e.GET(rt.cfg.Metrics.Path, echo.WrapHandler(rt.metricsHandler))
	}

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupActionItemRoutes(v1)
	rt.setupChatRoutes(v1)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	if rt.meetingHandler == nil {
		meetings.Any("*", rt.notImplemented)
		return
	}
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("/stats", rt.meetingHandler.GetStats)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.PATCH("/:id", rt.meetingHandler.UpdateMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
	meetings.POST("/:id/process", rt.meetingHandler.ProcessMeeting)
}

// setupActionItemRoutes configures action item routes
func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	items := g.Group("/action-items")
	if rt.actionItemHandler == nil {
		items.Any("*", rt.notImplemented)
		return
	}
	items.GET("", rt.actionItemHandler.ListActionItems)
	items.POST("", rt.actionItemHandler.CreateActionItem)
	items.GET("/stats", rt.actionItemHandler.GetStats)
	items.GET("/meeting/:meetingId", rt.actionItemHandler.ListMeetingActionItems)
	items.GET("/:id", rt.actionItemHandler.GetActionItem)
	items.PATCH("/:id", rt.actionItemHandler.UpdateActionItem)
	items.DELETE("/:id", rt.actionItemHandler.DeleteActionItem)
}

// setupChatRoutes configures chatbot routes
func (rt *Router) setupChatRoutes(g *echo.Group) {
	chat := g.Group("/chat")
	if rt.chatHandler == nil {
		chat.Any("*", rt.notImplemented)
		return
	}
	chat.POST("/stream", rt.chatHandler.StreamChat)
}

// notFoundHandler renders unmatched routes with the JSON error envelope
func notFoundHandler(next echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if stdErrors.As(err, &he) && he.Code == http.StatusNotFound && !c.Response().Committed {
			_ = HandleError(nil, c, errors.ErrNotFound("route "+c.Request().Method+" "+c.Request().URL.Path))
			return
		}
		next(err, c)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, common.ErrorResponse{
		Success: false,
		Error:   "This endpoint is not available: " + c.Request().Method + " " + c.Request().URL.Path,
		Code:    "NOT_IMPLEMENTED",
	})
}

// healthCheck returns health status. Any failing check turns the response into a 503.
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	resp := common.HealthResponse{
		Status:      "ok",
		Environment: rt.cfg.Server.Environment,
	}
	status := http.StatusOK

	names := make([]string, 0, len(rt.checks))
	for name := range rt.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		resp.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := rt.checks[name](ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	return c.JSON(status, resp)
}
