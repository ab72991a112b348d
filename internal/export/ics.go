// Package export renders a plan as an iCalendar feed, an Excel workbook or
// a flat CSV file.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/clab/internal/models"
)

// uidSpace namespaces event UIDs so re-exports of the same plan produce the
// same identifiers.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://clab.local/sessions"))

// Event is one calendar entry.
type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Reminder    int // minutes before start
}

// NextMonday returns midnight of the first Monday after t, or t's day when
// it already is a Monday.
func NextMonday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// dayIndex maps each session id of a week to its calendar day.
func dayIndex(w models.WeekBlock) map[string]int {
	out := make(map[string]int, len(w.Sessions))
	for d, day := range w.Schedule {
		for _, id := range day.SessionIDs {
			out[id] = d
		}
	}
	return out
}

// Events lays out the plan on real dates. start is the Monday of week 1;
// sessions begin at hour and doubled sessions follow each other.
func Events(plan []models.WeekBlock, start time.Time, hour int) []Event {
	var out []Event
	for i, w := range plan {
		for d, day := range w.Schedule {
			at := time.Date(start.Year(), start.Month(), start.Day()+7*i+d, hour, 0, 0, 0, start.Location())
			for _, id := range day.SessionIDs {
				s, ok := w.Session(id)
				if !ok {
					continue
				}
				end := at.Add(time.Duration(s.DurationMin) * time.Minute)
				out = append(out, Event{
					UID:         uuid.NewSHA1(uidSpace, []byte(s.ID)).String() + "@clab",
					Summary:     fmt.Sprintf("S%d · %s", w.WeekNumber, s.Type),
					Description: describe(s),
					Start:       at,
					End:         end,
					Reminder:    30,
				})
				at = end
			}
		}
	}
	return out
}

func describe(s models.Session) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", s.Description)
	if s.Category == models.CategoryRun && s.PaceTarget != "" {
		fmt.Fprintf(&sb, "Allure : %s\n", s.PaceTarget)
	}
	fmt.Fprintf(&sb, "Durée : %s · RPE %d\n", s.Duration, s.RPE)
	for _, e := range s.Exercises {
		fmt.Fprintf(&sb, "- %s : %s x %s\n", e.Name, e.Sets, e.Reps)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ICS renders the plan as an iCalendar document.
func ICS(plan []models.WeekBlock, start time.Time, hour int) string {
	return GenerateICS(Events(plan, start, hour), start)
}

// GenerateICS renders events. stamp is written as DTSTAMP so identical
// input yields identical output.
func GenerateICS(events []Event, stamp time.Time) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//clab//Training Plan//FR\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	sb.WriteString("X-WR-CALNAME:Plan d'entraînement\r\n")

	for _, event := range events {
		sb.WriteString("BEGIN:VEVENT\r\n")
		writeLine(&sb, "UID:"+event.UID)
		writeLine(&sb, "DTSTAMP:"+formatICSTime(stamp))
		writeLine(&sb, "DTSTART:"+formatICSTime(event.Start))
		writeLine(&sb, "DTEND:"+formatICSTime(event.End))
		writeLine(&sb, "SUMMARY:"+escapeICS(event.Summary))
		if event.Description != "" {
			writeLine(&sb, "DESCRIPTION:"+escapeICS(event.Description))
		}
		if event.Reminder > 0 {
			sb.WriteString("BEGIN:VALARM\r\n")
			sb.WriteString("ACTION:DISPLAY\r\n")
			writeLine(&sb, fmt.Sprintf("TRIGGER:-PT%dM", event.Reminder))
			writeLine(&sb, "DESCRIPTION:"+escapeICS(event.Summary))
			sb.WriteString("END:VALARM\r\n")
		}
		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

// maxLine is the content line limit in octets, CRLF excluded.
const maxLine = 75

// writeLine folds line at maxLine octets without splitting a UTF-8
// sequence, continuation lines starting with a space.
func writeLine(sb *strings.Builder, line string) {
	limit := maxLine
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8Start(line[cut]) {
			cut--
		}
		sb.WriteString(line[:cut])
		sb.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLine - 1
	}
	sb.WriteString(line)
	sb.WriteString("\r\n")
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
