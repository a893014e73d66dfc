package services

import "eventhub-api/models"

// FieldChange is one itemized difference between two revisions of an event
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// EventEdit classifies what an edit means for the event's registrants
type EventEdit struct {
	Cancelled bool
	Changes   []FieldChange
}

// NeedsNotification reports whether registrants must hear about the edit
func (e EventEdit) NeedsNotification() bool {
	return e.Cancelled || len(e.Changes) > 0
}

// DiffEvent compares two revisions of an event. A false→true cancellation wins
// over any field changes made in the same edit. Only title, date, time and
// place are considered; edits to an event that stays cancelled are silent.
func DiffEvent(old, updated models.Event) EventEdit {
	if !old.IsCancelled && updated.IsCancelled {
		return EventEdit{Cancelled: true}
	}
	if old.IsCancelled && updated.IsCancelled {
		return EventEdit{}
	}

	var changes []FieldChange
	if old.Title != updated.Title {
		changes = append(changes, FieldChange{Field: "title", Old: old.Title, New: updated.Title})
	}
	if old.Date != updated.Date {
		changes = append(changes, FieldChange{Field: "date", Old: old.Date.String(), New: updated.Date.String()})
	}
	if old.TimeString() != updated.TimeString() {
		changes = append(changes, FieldChange{Field: "time", Old: old.TimeString(), New: updated.TimeString()})
	}
	if old.Place != updated.Place {
		changes = append(changes, FieldChange{Field: "place", Old: old.Place, New: updated.Place})
	}
	return EventEdit{Changes: changes}
}

// Message renders the notification for the edit
func (e EventEdit) Message(event *models.Event) Message {
	if e.Cancelled {
		return eventCancelledMessage(event)
	}
	return eventChangedMessage(event, e.Changes)
}
