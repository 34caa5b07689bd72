package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/livehouse/internal/model"
)

func TestHandleMessageAppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	at := time.Date(2026, 10, 14, 3, 0, 0, 0, time.UTC)

	for _, ev := range []ScheduleChangedEvent{
		NewScheduleChanged(ActionCreated, model.Event{ID: 7, Date: "2026-10-20", Title: "Jazz & Gin"}, at),
		NewScheduleChanged(ActionDeleted, model.Event{ID: 7}, at),
	} {
		body, err := json.Marshal(ev)
		require.NoError(t, err)
		require.NoError(t, HandleMessage(dir, body))
	}

	data, err := os.ReadFile(filepath.Join(dir, AuditLogName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[2026-10-14T03:00:00Z] Event created | event_id=7 | date=2026-10-20 | title="Jazz & Gin"`, lines[0])
	assert.Contains(t, lines[1], "Event deleted | event_id=7")
}

func TestHandleMessageRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, HandleMessage(dir, []byte("{")))
	assert.Error(t, HandleMessage(dir, []byte(`{"action":"created"}`)))
	_, err := os.Stat(filepath.Join(dir, AuditLogName))
	assert.True(t, os.IsNotExist(err))
}
