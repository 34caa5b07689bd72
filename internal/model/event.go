package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the ISO calendar date stored in events.date.  Because every
// value has this fixed width, string order equals chronological order.
const DateLayout = "2006-01-02"

// Event represents one scheduled performance as stored in the `events`
// table.  The JSON names are part of the public API and match the column
// names.  Optional fields are empty strings, never null.
type Event struct {
	ID          uint64 `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Artists     string `json:"artists"`
	Description string `json:"description"`
	OpenTime    string `json:"openTime"`
	StartTime   string `json:"startTime"`
	TicketPrice string `json:"ticketPrice"`
	DoorPrice   string `json:"doorPrice"`
	ImageURL    string `json:"imageUrl"`
}

// EventInput is the body accepted by create and update.  It carries every
// column except id; an update replaces the stored row with exactly these
// values.
type EventInput struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Title       string `json:"title" validate:"required,max=255"`
	Artists     string `json:"artists"`
	Description string `json:"description"`
	OpenTime    string `json:"openTime" validate:"omitempty,quarterhour"`
	StartTime   string `json:"startTime" validate:"omitempty,quarterhour"`
	TicketPrice string `json:"ticketPrice" validate:"max=64"`
	DoorPrice   string `json:"doorPrice" validate:"max=64"`
	ImageURL    string `json:"imageUrl" validate:"max=2048"`
}

// Normalize trims surrounding whitespace from the single-line fields so that
// a blank title is treated as missing.  Description and artists keep their
// line breaks.
func (in *EventInput) Normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.Title = strings.TrimSpace(in.Title)
	in.OpenTime = strings.TrimSpace(in.OpenTime)
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.TicketPrice = strings.TrimSpace(in.TicketPrice)
	in.DoorPrice = strings.TrimSpace(in.DoorPrice)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// ToEvent builds the record for the given id.
func (in EventInput) ToEvent(id uint64) Event {
	return Event{
		ID:          id,
		Date:        in.Date,
		Title:       in.Title,
		Artists:     in.Artists,
		Description: in.Description,
		OpenTime:    in.OpenTime,
		StartTime:   in.StartTime,
		TicketPrice: in.TicketPrice,
		DoorPrice:   in.DoorPrice,
		ImageURL:    in.ImageURL,
	}
}

// InputFrom returns the editable fields of an existing event.
func InputFrom(e Event) EventInput {
	return EventInput{
		Date:        e.Date,
		Title:       e.Title,
		Artists:     e.Artists,
		Description: e.Description,
		OpenTime:    e.OpenTime,
		StartTime:   e.StartTime,
		TicketPrice: e.TicketPrice,
		DoorPrice:   e.DoorPrice,
		ImageURL:    e.ImageURL,
	}
}

// IsQuarterHour reports whether s is a 24h "HH:MM" clock time whose minute is
// 00, 15, 30 or 45.
func IsQuarterHour(s string) bool {
	t, err := time.Parse("15:04", s)
	if err != nil || t.Format("15:04") != s {
		return false
	}
	return t.Minute()%15 == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("quarterhour", func(fl validator.FieldLevel) bool {
		return IsQuarterHour(fl.Field().String())
	})
	return v
}

// Validate checks the input and returns an error whose message names the
// first offending field, suitable for returning to API clients.
func (in EventInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "datetime":
		return fmt.Errorf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "quarterhour":
		return fmt.Errorf("%s must be HH:MM in 15-minute steps", fe.Field())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Errorf("%s is invalid", fe.Field())
}
