// Package adminui drives the schedule admin screen: the event list, the
// add/edit form and the admin session.  Rendering is left to the caller;
// every failure is returned as an error.
package adminui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/livehouse/internal/client"
	"github.com/iliyamo/livehouse/internal/model"
	"github.com/iliyamo/livehouse/internal/schedule"
)

var (
	// ErrMissingRequired is returned by Save when date or title is empty.
	// No request is sent.
	ErrMissingRequired = errors.New("Date and Title are required")
	// ErrNotAdmin is returned by admin actions without a login.
	ErrNotAdmin = errors.New("admin login required")
	// ErrNoForm is returned when editing fields while no form is open.
	ErrNoForm = errors.New("no event form is open")
	// ErrUnknownEvent is returned for ids absent from the current list.
	ErrUnknownEvent = errors.New("event not in the current list")
)

// Mode is the state of the edit form.
type Mode int

const (
	Viewing Mode = iota
	Adding
	Editing
)

func (m Mode) String() string {
	switch m {
	case Adding:
		return "adding"
	case Editing:
		return "editing"
	}
	return "viewing"
}

// API is the part of the HTTP client the screen uses.  *client.Client
// implements it.
type API interface {
	SetToken(token string)
	ListEvents(ctx context.Context) ([]model.Event, error)
	CreateEvent(ctx context.Context, in model.EventInput) (model.Event, error)
	UpdateEvent(ctx context.Context, id uint64, in model.EventInput) (model.Event, error)
	DeleteEvent(ctx context.Context, id uint64) error
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
	Login(ctx context.Context, password string) (client.Session, error)
	SessionInfo(ctx context.Context) (time.Time, error)
	Logout(ctx context.Context) error
}

// Session is the screen state.  It is not safe for concurrent use.
type Session struct {
	api    API
	tokens TokenStore
	loc    *time.Location
	now    func() time.Time

	token     string
	mode      Mode
	editingID uint64
	form      model.EventInput
	events    []model.Event
	selected  *model.Event
}

// New restores a persisted token, if any.  loc is the venue time zone used
// for the default date of a new event.
func New(api API, tokens TokenStore, loc *time.Location) (*Session, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Session{api: api, tokens: tokens, loc: loc, now: time.Now, events: []model.Event{}}
	if tokens != nil {
		tok, err := tokens.Load()
		if err != nil {
			return nil, fmt.Errorf("load admin token: %w", err)
		}
		s.setToken(tok)
	}
	return s, nil
}

func (s *Session) setToken(tok string) {
	s.token = tok
	s.api.SetToken(tok)
}

// IsAdmin reports whether an admin token is held.
func (s *Session) IsAdmin() bool { return s.token != "" }

// Mode returns the form state.
func (s *Session) Mode() Mode { return s.mode }

// EditingID is the id being edited; zero unless Mode is Editing.
func (s *Session) EditingID() uint64 { return s.editingID }

// Form returns a copy of the open form.
func (s *Session) Form() model.EventInput { return s.form }

// Events returns the last fetched list.
func (s *Session) Events() []model.Event { return s.events }

// Selected returns the event opened for detail, or nil.
func (s *Session) Selected() *model.Event { return s.selected }

// Refresh refetches the list.  On failure the previous list is kept.
func (s *Session) Refresh(ctx context.Context) error {
	events, err := s.api.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	s.events = events
	if s.selected != nil {
		s.selected = s.find(s.selected.ID)
	}
	return nil
}

// Verify drops a persisted token the server no longer accepts.
func (s *Session) Verify(ctx context.Context) error {
	if !s.IsAdmin() {
		return nil
	}
	_, err := s.api.SessionInfo(ctx)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return s.forget()
	}
	return err
}

// Login exchanges the password for a token and persists it.
func (s *Session) Login(ctx context.Context, password string) error {
	sess, err := s.api.Login(ctx, password)
	if err != nil {
		return err
	}
	if s.tokens != nil {
		if err := s.tokens.Save(sess.Token); err != nil {
			return fmt.Errorf("save admin token: %w", err)
		}
	}
	s.setToken(sess.Token)
	return nil
}

// Logout revokes the token, deletes the stored copy and closes any form.
// The local state is cleared even when the server cannot be reached.
func (s *Session) Logout(ctx context.Context) error {
	var remote error
	if s.IsAdmin() {
		remote = s.api.Logout(ctx)
		var apiErr *client.APIError
		if errors.As(remote, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			remote = nil
		}
	}
	if err := s.forget(); err != nil {
		return err
	}
	return remote
}

func (s *Session) forget() error {
	s.setToken("")
	s.closeForm()
	if s.tokens != nil {
		return s.tokens.Clear()
	}
	return nil
}

// StartAdd opens an empty form for a new event dated today.
func (s *Session) StartAdd() error {
	if !s.IsAdmin() {
		return ErrNotAdmin
	}
	s.mode = Adding
	s.editingID = 0
	s.form = model.EventInput{
		Date:        s.now().In(s.loc).Format(model.DateLayout),
		OpenTime:    "18:00",
		StartTime:   "19:00",
		TicketPrice: "¥2,000",
	}
	return nil
}

// StartEdit opens the form filled with event id.
func (s *Session) StartEdit(id uint64) error {
	if !s.IsAdmin() {
		return ErrNotAdmin
	}
	e := s.find(id)
	if e == nil {
		return ErrUnknownEvent
	}
	s.mode = Editing
	s.editingID = id
	s.form = model.InputFrom(*e)
	return nil
}

// Cancel closes the form without saving.
func (s *Session) Cancel() { s.closeForm() }

func (s *Session) closeForm() {
	s.mode = Viewing
	s.editingID = 0
	s.form = model.EventInput{}
}

// SetField sets one form field by its JSON name.  Prices are formatted as
// typed.
func (s *Session) SetField(name, value string) error {
	if s.mode == Viewing {
		return ErrNoForm
	}
	f := &s.form
	switch name {
	case "date":
		f.Date = value
	case "title":
		f.Title = value
	case "artists":
		f.Artists = value
	case "description":
		f.Description = value
	case "openTime":
		f.OpenTime = value
	case "startTime":
		f.StartTime = value
	case "ticketPrice":
		f.TicketPrice = schedule.FormatCurrency(value)
	case "doorPrice":
		f.DoorPrice = schedule.FormatCurrency(value)
	case "imageUrl":
		f.ImageURL = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// Upload sends an image and puts its URL into the form.
func (s *Session) Upload(ctx context.Context, filename string, r io.Reader) error {
	if s.mode == Viewing {
		return ErrNoForm
	}
	url, err := s.api.UploadImage(ctx, filename, r)
	if err != nil {
		return err
	}
	s.form.ImageURL = url
	return nil
}

// Save submits the form, closes it and refetches the list.
func (s *Session) Save(ctx context.Context) error {
	if s.mode == Viewing {
		return ErrNoForm
	}
	if strings.TrimSpace(s.form.Date) == "" || strings.TrimSpace(s.form.Title) == "" {
		return ErrMissingRequired
	}
	var err error
	if s.mode == Editing {
		_, err = s.api.UpdateEvent(ctx, s.editingID, s.form)
	} else {
		_, err = s.api.CreateEvent(ctx, s.form)
	}
	if err != nil {
		return err
	}
	s.closeForm()
	return s.Refresh(ctx)
}

// Delete removes event id and refetches the list.  Confirmation is the
// caller's concern.
func (s *Session) Delete(ctx context.Context, id uint64) error {
	if !s.IsAdmin() {
		return ErrNotAdmin
	}
	if err := s.api.DeleteEvent(ctx, id); err != nil {
		return err
	}
	if s.mode == Editing && s.editingID == id {
		s.closeForm()
	}
	return s.Refresh(ctx)
}

// Select opens the read-only detail of event id.
func (s *Session) Select(id uint64) error {
	e := s.find(id)
	if e == nil {
		return ErrUnknownEvent
	}
	s.selected = e
	return nil
}

// CloseDetail closes the detail view.
func (s *Session) CloseDetail() { s.selected = nil }

func (s *Session) find(id uint64) *model.Event {
	for i := range s.events {
		if s.events[i].ID == id {
			e := s.events[i]
			return &e
		}
	}
	return nil
}
