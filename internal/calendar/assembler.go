// Package calendar turns resolved message parts into events and renders
// "add to calendar" deep links for them.
package calendar

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xaenox/agenda-bot/internal/models"
	"github.com/xaenox/agenda-bot/internal/temporal"
)

// DefaultDuration is the length of every event; messages carry no duration.
const DefaultDuration = time.Hour

var (
	ErrEmptyTitle   = errors.New("event title is empty")
	ErrInvalidRange = errors.New("event end is not after its start")
)

type AssemblerOption func(*Assembler)

// WithDuration overrides the event length. Non-positive values are ignored.
func WithDuration(d time.Duration) AssemblerOption {
	return func(a *Assembler) {
		if d > 0 {
			a.duration = d
		}
	}
}

// WithLocation sets the zone events are created in. The default is the
// process zone.
func WithLocation(loc *time.Location) AssemblerOption {
	return func(a *Assembler) {
		if loc != nil {
			a.location = loc
		}
	}
}

// WithIDGenerator replaces the uuid based event id generator.
func WithIDGenerator(fn func() string) AssemblerOption {
	return func(a *Assembler) {
		a.newID = fn
	}
}

// WithClock replaces time.Now for CreatedAt.
func WithClock(fn func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		a.now = fn
	}
}

// Assembler builds validated events.
type Assembler struct {
	duration time.Duration
	location *time.Location
	newID    func() string
	now      func() time.Time
}

func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		duration: DefaultDuration,
		location: time.Local,
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble applies the resolved clock time to the resolved day and derives
// the end from the configured duration.
func (a *Assembler) Assemble(expr temporal.Expression, title string) (models.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Event{}, ErrEmptyTitle
	}

	start := expr.At(a.location)
	end := start.Add(a.duration)
	if !end.After(start) {
		return models.Event{}, ErrInvalidRange
	}

	return models.Event{
		ID:        a.newID(),
		Title:     title,
		StartDate: start,
		EndDate:   end,
		CreatedAt: a.now(),
	}, nil
}
