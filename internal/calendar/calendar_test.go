package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/agenda-bot/internal/models"
	"github.com/xaenox/agenda-bot/internal/temporal"
)

func fixedAssembler(opts ...AssemblerOption) *Assembler {
	created := time.Date(2025, 5, 26, 12, 0, 0, 0, time.UTC)
	base := []AssemblerOption{
		WithLocation(time.UTC),
		WithIDGenerator(func() string { return "ev-1" }),
		WithClock(func() time.Time { return created }),
	}
	return NewAssembler(append(base, opts...)...)
}

func TestAssemble(t *testing.T) {
	expr := temporal.Expression{
		Date: temporal.CalendarDate{Year: 2025, Month: time.May, Day: 27},
		Time: temporal.ClockTime{Hour: 15},
	}

	ev, err := fixedAssembler().Assemble(expr, "Reunião")
	require.NoError(t, err)

	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, "Reunião", ev.Title)
	assert.Equal(t, time.Date(2025, 5, 27, 15, 0, 0, 0, time.UTC), ev.StartDate)
	assert.Equal(t, time.Date(2025, 5, 27, 16, 0, 0, 0, time.UTC), ev.EndDate)
	assert.True(t, ev.EndDate.After(ev.StartDate))
}

func TestAssembleLateEventCrossesMidnight(t *testing.T) {
	expr := temporal.Expression{
		Date: temporal.CalendarDate{Year: 2025, Month: time.December, Day: 31},
		Time: temporal.ClockTime{Hour: 23, Minute: 30},
	}

	ev, err := fixedAssembler().Assemble(expr, "Réveillon")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 30, 0, 0, time.UTC), ev.EndDate)
}

func TestAssembleOptions(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	expr := temporal.Expression{
		Date: temporal.CalendarDate{Year: 2025, Month: time.May, Day: 27},
		Time: temporal.ClockTime{Hour: 9},
	}

	ev, err := fixedAssembler(WithLocation(loc), WithDuration(30*time.Minute)).Assemble(expr, "Café")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 27, 9, 0, 0, 0, loc), ev.StartDate)
	assert.Equal(t, 30*time.Minute, ev.EndDate.Sub(ev.StartDate))

	ev, err = fixedAssembler(WithDuration(-time.Hour)).Assemble(expr, "Café")
	require.NoError(t, err)
	assert.Equal(t, DefaultDuration, ev.EndDate.Sub(ev.StartDate))
}

func TestAssembleRejectsEmptyTitle(t *testing.T) {
	_, err := fixedAssembler().Assemble(temporal.Expression{}, "   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestAssembleDefaultIDsAreUnique(t *testing.T) {
	a := NewAssembler()
	expr := temporal.Expression{Date: temporal.CalendarDate{Year: 2025, Month: 1, Day: 1}}

	first, err := a.Assemble(expr, "A")
	require.NoError(t, err)
	second, err := a.Assemble(expr, "A")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestLinks(t *testing.T) {
	ev := models.Event{
		Title:     "Reunião",
		StartDate: time.Date(2025, 7, 5, 14, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 5, 15, 0, 0, 0, time.UTC),
	}

	links := Links(ev)

	assert.Equal(t,
		"https://calendar.google.com/calendar/render?action=TEMPLATE&text=Reuni%C3%A3o&dates=20250705T140000Z/20250705T150000Z",
		links.Google)
	assert.Contains(t, links.Google, "dates=20250705T140000Z/20250705T150000Z")
	assert.Equal(t,
		"https://outlook.live.com/calendar/0/deeplink/compose?subject=Reuni%C3%A3o&startdt=2025-07-05T14:00:00.000Z&enddt=2025-07-05T15:00:00.000Z",
		links.Outlook)
	assert.Contains(t, links.Outlook, "startdt=2025-07-05T14:00:00.000Z")
}

func TestLinksConvertLocalTimesToUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	ev := models.Event{
		Title:     "Jantar com Ana",
		StartDate: time.Date(2025, 7, 5, 22, 30, 0, 0, loc),
		EndDate:   time.Date(2025, 7, 5, 23, 30, 0, 0, loc),
	}

	assert.Contains(t, GoogleURL(ev), "text=Jantar%20com%20Ana&dates=20250706T013000Z/20250706T023000Z")
	assert.Contains(t, OutlookURL(ev), "startdt=2025-07-06T01:30:00.000Z&enddt=2025-07-06T02:30:00.000Z")
}

func TestEncodeComponent(t *testing.T) {
	tests := map[string]string{
		"Reunião com João": "Reuni%C3%A3o%20com%20Jo%C3%A3o",
		"A&B=C":            "A%26B%3DC",
		"Festa (50%)!":     "Festa%20(50%25)!",
		"a+b/c?":           "a%2Bb%2Fc%3F",
	}
	for in, want := range tests {
		assert.Equal(t, want, encodeComponent(in), in)
	}
}
