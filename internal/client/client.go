// Package client is a typed HTTP client for the livehouse API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/livehouse/internal/model"
	"github.com/iliyamo/livehouse/internal/schedule"
	"github.com/iliyamo/livehouse/internal/venue"
)

// APIError is a non-2xx answer from the server.  Message is the server's
// {"error"} text when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Client talks to one server.  Token, when set, is sent as a Bearer
// credential on every request.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns a Client for baseURL with a 15 second request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken replaces the Bearer credential.  An empty token sends none.
func (c *Client) SetToken(token string) { c.Token = token }

// Session describes a login.
type Session struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// ListEvents returns every event in date order.
func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	err := c.do(ctx, http.MethodGet, "/api/events", nil, "", &out)
	return out, err
}

// Schedule returns the events decorated for display.
func (c *Client) Schedule(ctx context.Context) ([]schedule.Entry, error) {
	var out []schedule.Entry
	err := c.do(ctx, http.MethodGet, "/api/schedule", nil, "", &out)
	return out, err
}

// GetEvent fetches one event.
func (c *Client) GetEvent(ctx context.Context, id uint64) (model.Event, error) {
	var out model.Event
	err := c.do(ctx, http.MethodGet, "/api/events/"+strconv.FormatUint(id, 10), nil, "", &out)
	return out, err
}

// NextEvent returns the next upcoming event.
func (c *Client) NextEvent(ctx context.Context) (model.Event, error) {
	var out model.Event
	err := c.do(ctx, http.MethodGet, "/api/events/next", nil, "", &out)
	return out, err
}

// CreateEvent stores a new event.
func (c *Client) CreateEvent(ctx context.Context, in model.EventInput) (model.Event, error) {
	var out model.Event
	err := c.doJSON(ctx, http.MethodPost, "/api/events", in, &out)
	return out, err
}

// UpdateEvent replaces every field of event id.
func (c *Client) UpdateEvent(ctx context.Context, id uint64, in model.EventInput) (model.Event, error) {
	var out model.Event
	err := c.doJSON(ctx, http.MethodPut, "/api/events/"+strconv.FormatUint(id, 10), in, &out)
	return out, err
}

// DeleteEvent removes event id.
func (c *Client) DeleteEvent(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+strconv.FormatUint(id, 10), nil, "", nil)
}

// UploadImage sends an image and returns the URL the server stored it at.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(filename)))
	ctype := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	hdr.Set("Content-Type", ctype)
	part, err := w.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/upload", &buf, w.FormDataContentType(), &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

// Login exchanges the admin password for a token.  It does not modify
// c.Token.
func (c *Client) Login(ctx context.Context, password string) (Session, error) {
	var out Session
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", map[string]string{"password": password}, &out)
	return out, err
}

// SessionInfo checks that c.Token is still accepted.
func (c *Client) SessionInfo(ctx context.Context) (time.Time, error) {
	var out struct {
		Expires time.Time `json:"expires"`
	}
	err := c.do(ctx, http.MethodGet, "/api/admin/session", nil, "", &out)
	return out.Expires, err
}

// Logout revokes c.Token on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/logout", nil, "", nil)
}

// Venue returns the venue content.
func (c *Client) Venue(ctx context.Context) (*venue.Info, error) {
	var out venue.Info
	if err := c.do(ctx, http.MethodGet, "/api/venue", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, bytes.NewReader(body), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, ctype string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
