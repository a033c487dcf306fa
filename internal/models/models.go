package models

import "time"

// RawMessage is a single inbound chat message as delivered by a transport.
type RawMessage struct {
	Text       string    `json:"text"`
	SenderID   string    `json:"sender_id"`
	ReceivedAt time.Time `json:"received_at"`
}

// Event is a calendar entry created from a chat message.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSession is the ordered list of events a chat user created.
type UserSession struct {
	UserID string  `json:"user_id"`
	Events []Event `json:"events"`
}

// NewUserSession returns an empty session for userID.
func NewUserSession(userID string) *UserSession {
	return &UserSession{UserID: userID, Events: []Event{}}
}

// Clone returns a deep copy of the session.
func (s *UserSession) Clone() *UserSession {
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return &UserSession{UserID: s.UserID, Events: events}
}

// Append adds ev at the end of the session.
func (s *UserSession) Append(ev Event) {
	s.Events = append(s.Events, ev)
}

// RemoveAt removes the event at the 1-based position index, keeping the
// relative order of the remaining events.
func (s *UserSession) RemoveAt(index int) (Event, bool) {
	if index < 1 || index > len(s.Events) {
		return Event{}, false
	}
	removed := s.Events[index-1]
	s.Events = append(s.Events[:index-1], s.Events[index:]...)
	return removed, true
}

// CalendarLinks are "add event" deep links for third-party calendars.
type CalendarLinks struct {
	Google  string `json:"google"`
	Outlook string `json:"outlook"`
}
