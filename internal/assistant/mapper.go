package assistant

import "net/url"

// SuggestionFormValues flattens one suggested event into the query parameters
// the event-creation form reads. It passes through what is present and omits
// what is absent; reasoning and venueType are dropped because the form has no
// field for them. Validation is deferred to the form's own submit path.
func SuggestionFormValues(s SuggestedEvent, templateID, templateName string) url.Values {
	values := url.Values{}

	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	set("eventName", s.Name)
	set("venue", s.Venue)
	set("address", s.Address)
	set("date", s.Date)
	set("time", s.Time)
	set("duration", s.Duration)
	set("price", s.Price)
	set("description", s.Description)
	set("url", s.URL)
	set("templateId", templateID)
	set("templateName", templateName)

	return values
}

// SuggestionFromForm rebuilds a suggested event from creation-form values.
// It is the inverse of SuggestionFormValues for every field the form can
// persist.
func SuggestionFromForm(values url.Values) SuggestedEvent {
	return SuggestedEvent{
		Name:        values.Get("eventName"),
		Venue:       values.Get("venue"),
		Address:     values.Get("address"),
		Date:        values.Get("date"),
		Time:        values.Get("time"),
		Duration:    values.Get("duration"),
		Price:       values.Get("price"),
		Description: values.Get("description"),
		URL:         values.Get("url"),
	}
}
