package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/livehouse/internal/model"
	"github.com/iliyamo/livehouse/internal/queue"
	"github.com/iliyamo/livehouse/internal/repository"
	"github.com/iliyamo/livehouse/internal/schedule"
)

// EventStore is the persistence the event endpoints need.
// *repository.EventRepo implements it.
type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	Next(ctx context.Context, fromDate string) (model.Event, error)
	Create(ctx context.Context, in model.EventInput) (model.Event, error)
	Update(ctx context.Context, id uint64, in model.EventInput) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}

// ChangePublisher announces schedule changes.  *service.Publisher
// implements it.
type ChangePublisher interface {
	PublishScheduleChanged(ctx context.Context, ev queue.ScheduleChangedEvent) error
}

// EventHandler serves the public schedule and the admin mutations.
type EventHandler struct {
	Store     EventStore
	Publisher ChangePublisher         // optional
	Holidays  schedule.HolidayChecker // optional
	Loc       *time.Location
	Log       *zap.Logger
	Now       func() time.Time
}

// NewEventHandler wires an EventHandler.  publisher and holidays may be nil.
func NewEventHandler(store EventStore, publisher ChangePublisher, holidays schedule.HolidayChecker, loc *time.Location, log *zap.Logger) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EventHandler{Store: store, Publisher: publisher, Holidays: holidays, Loc: loc, Log: log, Now: time.Now}
}

// today returns midnight of the current date in the venue's time zone.
func (h *EventHandler) today() time.Time {
	y, m, d := h.Now().In(h.Loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// List: GET /api/events
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Store.List(ctx)
	if err != nil {
		return h.internalError(c, "Failed to fetch events", err)
	}
	return c.JSON(http.StatusOK, events)
}

// Schedule: GET /api/schedule returns the list decorated for display.
func (h *EventHandler) Schedule(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Store.List(ctx)
	if err != nil {
		return h.internalError(c, "Failed to fetch events", err)
	}
	return c.JSON(http.StatusOK, schedule.Decorate(events, h.Holidays, h.today()))
}

// Next: GET /api/events/next returns the first event on or after today.
func (h *EventHandler) Next(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Store.Next(ctx, h.today().Format(model.DateLayout))
	if errors.Is(err, repository.ErrEventNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No upcoming events"})
	}
	if err != nil {
		return h.internalError(c, "Failed to fetch events", err)
	}
	return c.JSON(http.StatusOK, e)
}

// Get: GET /api/events/:id
func (h *EventHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Event not found"})
	}
	if err != nil {
		return h.internalError(c, "Failed to fetch events", err)
	}
	return c.JSON(http.StatusOK, e)
}

// Create: POST /api/events (admin)
func (h *EventHandler) Create(c echo.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Store.Create(ctx, in)
	if err != nil {
		return h.internalError(c, "Failed to create event", err)
	}
	h.publish(ctx, queue.ActionCreated, e)
	return c.JSON(http.StatusOK, e)
}

// Update: PUT /api/events/:id (admin) replaces every field.  An unknown id
// is not an error; the response echoes the submitted values.
func (h *EventHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	in, err := bindInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Store.Update(ctx, id, in)
	if err != nil {
		return h.internalError(c, "Failed to update event", err)
	}
	e := in.ToEvent(id)
	if n > 0 {
		h.publish(ctx, queue.ActionUpdated, e)
	}
	return c.JSON(http.StatusOK, e)
}

// Delete: DELETE /api/events/:id (admin).  Deleting an unknown id succeeds.
// With a change feed configured the row is read first so the notification
// carries its date and title.
func (h *EventHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	gone := model.Event{ID: id}
	if h.Publisher != nil {
		if e, err := h.Store.GetByID(ctx, id); err == nil {
			gone = e
		}
	}

	n, err := h.Store.Delete(ctx, id)
	if err != nil {
		return h.internalError(c, "Failed to delete event", err)
	}
	if n > 0 {
		h.publish(ctx, queue.ActionDeleted, gone)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// publish sends the change notification.  Failures are logged only.
func (h *EventHandler) publish(ctx context.Context, action string, e model.Event) {
	if h.Publisher == nil {
		return
	}
	ev := queue.NewScheduleChanged(action, e, h.Now())
	if err := h.Publisher.PublishScheduleChanged(ctx, ev); err != nil {
		h.Log.Warn("schedule change not published",
			zap.String("action", action), zap.Uint64("event_id", e.ID), zap.Error(err))
	}
}

// internalError logs the cause and answers 500 with a fixed message.
func (h *EventHandler) internalError(c echo.Context, msg string, err error) error {
	h.Log.Error(msg, zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func bindInput(c echo.Context) (model.EventInput, error) {
	var in model.EventInput
	if err := (&echo.DefaultBinder{}).BindBody(c, &in); err != nil {
		return in, errors.New("invalid body")
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}
