package holiday

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Calendar merges the statutory holidays with the dates of an optional ICS
// feed.  It is safe for concurrent use.
type Calendar struct {
	rules  Japan
	source string
	loc    *time.Location
	client *http.Client
	log    *zap.Logger

	mu    sync.RWMutex
	extra map[string]string
}

// NewCalendar returns a Calendar.  source may be empty, in which case only
// the statutory rules apply.
func NewCalendar(source string, loc *time.Location, log *zap.Logger) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Calendar{
		source: source,
		loc:    loc,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
		extra:  map[string]string{},
	}
}

// IsHoliday reports whether the calendar date of t is a holiday.
func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.Name(t)
	return ok
}

// Name returns the holiday name for the calendar date of t.  Feed entries
// take precedence over the statutory names.
func (c *Calendar) Name(t time.Time) (string, bool) {
	c.mu.RLock()
	name, ok := c.extra[t.Format("2006-01-02")]
	c.mu.RUnlock()
	if ok {
		return name, true
	}
	return c.rules.Name(t)
}

// Refresh reloads the ICS feed.  On failure the previously loaded dates are
// kept and the error is returned.
func (c *Calendar) Refresh(ctx context.Context) error {
	if c.source == "" {
		return nil
	}
	body, err := Fetch(ctx, c.client, c.source)
	if err != nil {
		c.log.Warn("holiday feed fetch failed", zap.String("source", redactURL(c.source)), zap.Error(err))
		return err
	}
	days, err := ParseICS(body, c.loc)
	if err != nil {
		c.log.Warn("holiday feed parse failed", zap.String("source", redactURL(c.source)), zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.extra = days
	c.mu.Unlock()
	c.log.Info("holiday feed loaded", zap.String("source", redactURL(c.source)), zap.Int("days", len(days)))
	return nil
}

// Schedule registers a periodic Refresh on a new cron scheduler and starts
// it.  The caller stops the returned scheduler on shutdown.
func (c *Calendar) Schedule(spec string) (*cron.Cron, error) {
	sched := cron.New(cron.WithLocation(c.loc))
	_, err := sched.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = c.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	sched.Start()
	return sched, nil
}
