package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/gather-app/gather/internal/database"
)

// Render serializes one event instance as an iCalendar document.
func Render(event *database.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Gather//Event Planner//EN")

	entry := cal.AddEvent(fmt.Sprintf("event-%d@gather", event.ID))
	entry.SetCreatedTime(event.CreatedAt)
	entry.SetDtStampTime(time.Now())
	entry.SetModifiedAt(event.UpdatedAt)
	entry.SetSummary(event.Title)

	if event.AllDay {
		entry.SetAllDayStartAt(event.StartTime)
		if event.EndTime != nil {
			entry.SetAllDayEndAt(*event.EndTime)
		}
	} else {
		entry.SetStartAt(event.StartTime)
		if event.EndTime != nil {
			entry.SetEndAt(*event.EndTime)
		}
	}

	if location := formatLocation(event); location != "" {
		entry.SetLocation(location)
	}
	if event.DetailedDescription != "" {
		entry.SetDescription(event.DetailedDescription)
	}
	if event.EventURL != "" {
		entry.SetURL(event.EventURL)
	}
	if event.Status == database.EventStatusCancelled {
		entry.SetStatus(ical.ObjectStatusCancelled)
	} else if event.Status == database.EventStatusConfirmed {
		entry.SetStatus(ical.ObjectStatusConfirmed)
	}

	return cal.Serialize()
}

func formatLocation(event *database.Event) string {
	parts := []string{}
	for _, p := range []string{event.Venue, event.Address, event.City, event.State, event.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
