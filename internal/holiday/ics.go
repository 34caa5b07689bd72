package holiday

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

const icsDateLayout = "20060102"

// ParseICS extracts the holiday dates from an ICS payload.  All-day events
// contribute every day from DTSTART up to, but excluding, DTEND.  Timed events
// contribute the calendar day of their start in loc.  Events without a
// usable DTSTART are skipped.
func ParseICS(body []byte, loc *time.Location) (map[string]string, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	out := make(map[string]string)
	for _, ve := range cal.Events() {
		name := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			name = p.Value
		}
		start := ve.GetProperty(ical.ComponentPropertyDtStart)
		if start == nil || start.Value == "" {
			continue
		}

		if !strings.Contains(start.Value, "T") {
			first, err := time.ParseInLocation(icsDateLayout, start.Value, loc)
			if err != nil {
				continue
			}
			last := first
			if end := ve.GetProperty(ical.ComponentPropertyDtEnd); end != nil {
				if t, err := time.ParseInLocation(icsDateLayout, end.Value, loc); err == nil && t.After(first) {
					last = t.AddDate(0, 0, -1)
				}
			}
			for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
				out[d.Format("2006-01-02")] = name
			}
			continue
		}

		at, err := ve.GetStartAt()
		if err != nil {
			continue
		}
		out[at.In(loc).Format("2006-01-02")] = name
	}
	return out, nil
}

// Fetch reads an ICS source.  src is either an http(s) URL or a local path.
func Fetch(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return os.ReadFile(src)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// redactURL keeps only the scheme and host of a feed URL for logging.
func redactURL(u string) string {
	i := strings.Index(u, "://")
	if i < 0 {
		return u
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		return u[:i+3+j] + "/...(redacted)"
	}
	return u
}
