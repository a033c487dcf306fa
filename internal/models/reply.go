package models

import "time"

// Reply is the outcome of handling one message. Exactly one of the payload
// pointers matching Kind is set.
type Reply struct {
	Kind    IntentKind
	Created *CreatedEvent
	List    *ListResponse
	Cancel  *CancelResult
	Help    *HelpResponse
}

// CreatedEvent is returned after an event was assembled and stored.
type CreatedEvent struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	GoogleLink  string    `json:"google_link"`
	OutlookLink string    `json:"outlook_link"`
}

// ListEntry is one line of a ListResponse. Index is 1-based.
type ListEntry struct {
	Index     int       `json:"index"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
}

type ListResponse struct {
	Entries []ListEntry `json:"entries"`
}

// CancelResult reports the removed event title, or Found=false.
type CancelResult struct {
	Found        bool   `json:"found"`
	RemovedTitle string `json:"removed_title,omitempty"`
}

type HelpResponse struct {
	Text string `json:"text"`
}
