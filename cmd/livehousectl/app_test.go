package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/livehouse/internal/adminui"
	"github.com/iliyamo/livehouse/internal/client"
	"github.com/iliyamo/livehouse/internal/model"
)

func newApp(t *testing.T, h http.HandlerFunc, input string) (*app, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	api := client.New(srv.URL)
	sess, err := adminui.New(api, nil, time.UTC)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return &app{api: api, sess: sess, out: out, in: strings.NewReader(input)}, out
}

func TestListPrintsEvents(t *testing.T) {
	a, out := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]model.Event{
			{ID: 3, Date: "2026-10-14", Title: "Jazz Night", TicketPrice: "¥2,000"},
		})
	}, "")

	require.NoError(t, a.run(context.Background(), "list", nil))
	assert.Contains(t, out.String(), "Jazz Night")
	assert.Contains(t, out.String(), "2026-10-14")
}

func TestDeleteCancelledAtPrompt(t *testing.T) {
	a, out := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}, "n\n")

	require.NoError(t, a.run(context.Background(), "delete", []string{"3"}))
	assert.Contains(t, out.String(), "cancelled")
}

func TestDeleteNeedsLogin(t *testing.T) {
	a, _ := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}, "")

	err := a.run(context.Background(), "delete", []string{"3", "-yes"})
	assert.ErrorIs(t, err, adminui.ErrNotAdmin)
}

func TestRunRejectsBadInput(t *testing.T) {
	a, _ := newApp(t, func(http.ResponseWriter, *http.Request) {}, "")

	assert.Error(t, a.run(context.Background(), "frobnicate", nil))
	assert.Error(t, a.run(context.Background(), "show", []string{"abc"}))
	assert.Error(t, a.run(context.Background(), "upload", nil))
}

func TestReadLineTrimsLineEnding(t *testing.T) {
	assert.Equal(t, "yes", readLine(strings.NewReader("yes\r\nmore")))
	assert.Equal(t, "", readLine(strings.NewReader("")))
}
