package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWith(titles ...string) *UserSession {
	s := NewUserSession("u1")
	start := time.Date(2025, 5, 26, 10, 0, 0, 0, time.UTC)
	for i, title := range titles {
		s.Append(Event{ID: title, Title: title, StartDate: start.Add(time.Duration(i) * time.Hour)})
	}
	return s
}

func TestUserSessionRemoveAt(t *testing.T) {
	t.Run("middle element keeps order", func(t *testing.T) {
		s := sessionWith("a", "b", "c")

		removed, ok := s.RemoveAt(2)
		require.True(t, ok)
		assert.Equal(t, "b", removed.Title)
		require.Len(t, s.Events, 2)
		assert.Equal(t, "a", s.Events[0].Title)
		assert.Equal(t, "c", s.Events[1].Title)
	})

	t.Run("out of range", func(t *testing.T) {
		s := sessionWith("a")

		_, ok := s.RemoveAt(0)
		assert.False(t, ok)
		_, ok = s.RemoveAt(2)
		assert.False(t, ok)
		assert.Len(t, s.Events, 1)
	})
}

func TestUserSessionClone(t *testing.T) {
	s := sessionWith("a", "b")
	c := s.Clone()

	c.RemoveAt(1)
	c.Append(Event{Title: "z"})

	assert.Equal(t, []string{"a", "b"}, []string{s.Events[0].Title, s.Events[1].Title})
	assert.Len(t, c.Events, 2)
}

func TestIntentConstructors(t *testing.T) {
	assert.Equal(t, "cancel", CancelByIndex("cancelar", 2).Kind.String())
	assert.True(t, CancelByIndex("cancelar", 2).Target.HasIndex())
	assert.False(t, CancelByTitle("cancelar", "reuniao").Target.HasIndex())
	assert.False(t, HelpIntent("").Recognized())
	assert.True(t, HelpIntent("ajuda").Recognized())
	assert.Equal(t, IntentListEvents, ListIntent("listar").Kind)
	assert.Equal(t, "create", CreateIntent("reuniao").Kind.String())
}
