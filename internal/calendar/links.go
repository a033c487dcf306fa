package calendar

import (
	"net/url"
	"strings"
	"time"

	"github.com/xaenox/agenda-bot/internal/models"
)

const (
	googleBaseURL  = "https://calendar.google.com/calendar/render"
	outlookBaseURL = "https://outlook.live.com/calendar/0/deeplink/compose"

	// googleLayout is the compact UTC form Google expects: 20250705T140000Z.
	googleLayout = "20060102T150405Z"
	// outlookLayout is ISO-8601 in UTC with milliseconds: 2025-07-05T14:00:00.000Z.
	outlookLayout = "2006-01-02T15:04:05.000Z"
)

// Links renders both deep links for ev.
func Links(ev models.Event) models.CalendarLinks {
	return models.CalendarLinks{
		Google:  GoogleURL(ev),
		Outlook: OutlookURL(ev),
	}
}

// GoogleURL is
// https://calendar.google.com/calendar/render?action=TEMPLATE&text=<title>&dates=<start>/<end>
func GoogleURL(ev models.Event) string {
	var sb strings.Builder
	sb.WriteString(googleBaseURL)
	sb.WriteString("?action=TEMPLATE&text=")
	sb.WriteString(encodeComponent(ev.Title))
	sb.WriteString("&dates=")
	sb.WriteString(ev.StartDate.UTC().Format(googleLayout))
	sb.WriteString("/")
	sb.WriteString(ev.EndDate.UTC().Format(googleLayout))
	return sb.String()
}

// OutlookURL is
// https://outlook.live.com/calendar/0/deeplink/compose?subject=<title>&startdt=<iso>&enddt=<iso>
func OutlookURL(ev models.Event) string {
	var sb strings.Builder
	sb.WriteString(outlookBaseURL)
	sb.WriteString("?subject=")
	sb.WriteString(encodeComponent(ev.Title))
	sb.WriteString("&startdt=")
	sb.WriteString(isoUTC(ev.StartDate))
	sb.WriteString("&enddt=")
	sb.WriteString(isoUTC(ev.EndDate))
	return sb.String()
}

func isoUTC(t time.Time) string {
	return t.UTC().Format(outlookLayout)
}

// encodeComponent percent-encodes s like encodeURIComponent: spaces become
// %20, not "+", and !'()* are kept.
func encodeComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for enc, raw := range map[string]string{"%21": "!", "%27": "'", "%28": "(", "%29": ")", "%2A": "*"} {
		escaped = strings.ReplaceAll(escaped, enc, raw)
	}
	return escaped
}
