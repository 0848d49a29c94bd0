package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gather-app/gather/internal/database"
)

func TestRender(t *testing.T) {
	end := time.Date(2026, 9, 5, 22, 0, 0, 0, time.UTC)
	event := &database.Event{
		ID:                  12,
		Title:               "Jazz Night",
		StartTime:           time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC),
		EndTime:             &end,
		Venue:               "Blue Room",
		Address:             "42 Main St",
		City:                "Denver",
		DetailedDescription: "Live quartet",
		EventURL:            "https://blueroom.example.com",
		Status:              database.EventStatusConfirmed,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	out := Render(event)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Jazz Night")
	assert.Contains(t, out, "Blue Room")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.Contains(t, out, "END:VCALENDAR")
}

func TestRenderCancelledWithoutEnd(t *testing.T) {
	event := &database.Event{
		ID:        3,
		Title:     "Picnic",
		StartTime: time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC),
		Status:    database.EventStatusCancelled,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	out := Render(event)
	assert.Contains(t, out, "SUMMARY:Picnic")
	assert.Contains(t, out, "STATUS:CANCELLED")
	assert.NotContains(t, out, "DTEND")
}
