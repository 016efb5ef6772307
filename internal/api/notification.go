// internal/api/notification.go

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"admissions-notifier/internal/models"
	"admissions-notifier/internal/notifier/fanout"
	"admissions-notifier/internal/notifier/store"
)

type notificationAPI struct {
	fanOut *fanout.Dispatcher
	store  store.Store
}

func registerNotificationAPI(g *echo.Group, fo *fanout.Dispatcher, st store.Store) {
	api := notificationAPI{fanOut: fo, store: st}

	g.POST("/events", api.publishEvent)
	g.POST("/notifications/:id/read", api.markRead)

	rg := g.Group("/recipients/:id")
	rg.GET("/notifications", api.listNotifications)
	rg.GET("/unread-count", api.unreadCount)
	rg.POST("/read-all", api.markAllRead)
}

type (
	eventRequest struct {
		Stage         models.Stage      `json:"stage"`
		ApplicationID string            `json:"applicationId"`
		LeadID        string            `json:"leadId"`
		StudentName   string            `json:"studentName"`
		Guardians     []models.Guardian `json:"guardians"`
		Context       map[string]string `json:"context"`
	}

	eventResponse struct {
		Stage          models.Stage `json:"stage"`
		Eligible       int          `json:"eligible"`
		Created        int          `json:"created"`
		Appended       int          `json:"appended"`
		FailedChannels int          `json:"failedChannels"`
	}
)

// publishEvent accepts an admission lifecycle event and runs the fan-out
// synchronously. Append failures degrade the response to 207 rather than
// failing the whole event, since some guardians may already be notified.
func (api *notificationAPI) publishEvent(ctx echo.Context) error {
	var req eventRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed event payload")
	}
	if req.Stage == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "stage is required")
	}

	admission := &models.Admission{
		ApplicationID: req.ApplicationID,
		LeadID:        req.LeadID,
		StudentName:   req.StudentName,
		Guardians:     req.Guardians,
	}

	result, err := api.fanOut.NotifyGuardians(ctx.Request().Context(), admission, req.Stage, req.Context)
	if err != nil && result == nil {
		return err
	}

	resp := eventResponse{
		Stage:          result.Stage,
		Eligible:       result.Eligible,
		Created:        result.Created,
		Appended:       result.Appended,
		FailedChannels: result.FailedChannels,
	}
	if err != nil {
		return ctx.JSON(http.StatusMultiStatus, resp)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *notificationAPI) listNotifications(ctx echo.Context) error {
	notifications, err := api.store.ListByRecipient(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifications)
}

func (api *notificationAPI) unreadCount(ctx echo.Context) error {
	count, err := api.store.UnreadCount(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]int{"unread": count})
}

func (api *notificationAPI) markRead(ctx echo.Context) error {
	if err := api.store.MarkRead(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationAPI) markAllRead(ctx echo.Context) error {
	if err := api.store.MarkAllRead(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
