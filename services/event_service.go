package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub-api/models"
	"eventhub-api/repositories"

	"gorm.io/gorm"
)

// Actor identifies who performs a staff-side operation
type Actor struct {
	UserID  string
	IsStaff bool
}

// EventInput carries the editable fields of an event as submitted by a client
type EventInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time"`
	Place       string `json:"place"`
	Capacity    *int   `json:"capacity"`
	IsCancelled *bool  `json:"is_cancelled"`
}

// apply validates the input and copies it onto event
func (in EventInput) apply(event *models.Event) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return NewValidationError("Title is required")
	}

	date, err := models.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return NewValidationError("Date must use the YYYY-MM-DD format")
	}

	var timeOfDay *models.TimeOfDay
	if t := strings.TrimSpace(in.Time); t != "" {
		parsed, err := models.ParseTimeOfDay(t)
		if err != nil {
			return NewValidationError("Time must use the HH:MM format")
		}
		timeOfDay = &parsed
	}

	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return NewValidationError("Capacity cannot be negative")
		}
		event.Capacity = *in.Capacity
	}
	if in.IsCancelled != nil {
		event.IsCancelled = *in.IsCancelled
	}

	event.Title = title
	event.Description = in.Description
	event.Date = date
	event.Time = timeOfDay
	event.Place = strings.TrimSpace(in.Place)
	return nil
}

type EventService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewEventService(db *gorm.DB, notifications *NotificationService) *EventService {
	return &EventService{db: db, notifications: notifications}
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := repositories.NewEventRepository(s.db.WithContext(ctx)).FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return event, nil
}

// ListOpen returns every non-cancelled event with its occupancy and whether
// registration is still possible at now
func (s *EventService) ListOpen(ctx context.Context, now time.Time) ([]models.EventListItem, error) {
	db := s.db.WithContext(ctx)

	events, err := repositories.NewEventRepository(db).ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	counts, err := repositories.NewRegistrationRepository(db).CountsByEvent()
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	items := make([]models.EventListItem, 0, len(events))
	for i := range events {
		event := &events[i]
		taken := counts[event.ID].Total
		isPast := event.IsPast(now)
		isFull := taken >= event.Capacity

		startTime := event.TimeString()
		if startTime == "" {
			startTime = "00:00"
		}

		items = append(items, models.EventListItem{
			ID:          event.ID,
			Title:       event.Title,
			Start:       event.Date.String() + "T" + startTime,
			Date:        event.Date.String(),
			Time:        event.TimeString(),
			Description: event.Description,
			Place:       event.Place,
			Capacity:    event.Capacity,
			Taken:       taken,
			IsPast:      isPast,
			IsFull:      isFull,
			CanRegister: !isPast && !isFull,
		})
	}
	return items, nil
}

func (s *EventService) CreateEvent(ctx context.Context, actor Actor, input EventInput, now time.Time) (*models.Event, error) {
	if !actor.IsStaff {
		return nil, ErrPermissionDenied
	}

	event := &models.Event{Capacity: 100}
	if err := input.apply(event); err != nil {
		return nil, err
	}
	if actor.UserID != "" {
		creator := actor.UserID
		event.CreatedByID = &creator
	}
	if event.IsCancelled {
		event.CancelledAt = &now
	}

	if err := repositories.NewEventRepository(s.db.WithContext(ctx)).Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// UpdateEvent stores an edit and notifies registrants about it in the same
// transaction. It returns the updated event and the notifications created.
func (s *EventService) UpdateEvent(ctx context.Context, actor Actor, id string, input EventInput, now time.Time) (*models.Event, []models.Notification, error) {
	if !actor.IsStaff {
		return nil, nil, ErrPermissionDenied
	}

	var (
		updated       models.Event
		notifications []models.Notification
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := repositories.NewEventRepository(tx)

		event, err := events.FindByIDForUpdate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		old := *event
		updated = *event
		if err := input.apply(&updated); err != nil {
			return err
		}

		if updated.Capacity != old.Capacity {
			taken, err := repositories.NewRegistrationRepository(tx).CountByEvent(event.ID)
			if err != nil {
				return fmt.Errorf("failed to count registrations: %w", err)
			}
			if updated.Capacity < taken {
				return NewValidationError(fmt.Sprintf("Capacity cannot be lower than the %d places already taken", taken))
			}
		}

		switch {
		case updated.IsCancelled && !old.IsCancelled:
			updated.CancelledAt = &now
		case !updated.IsCancelled:
			updated.CancelledAt = nil
		}

		if err := events.Save(&updated); err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}

		edit := DiffEvent(old, updated)
		if !edit.NeedsNotification() {
			return nil
		}
		notifications, err = s.notifications.FanOut(tx, updated.ID, edit.Message(&updated))
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &updated, notifications, nil
}

// DeleteEvent removes an event with its registrations and feedback
func (s *EventService) DeleteEvent(ctx context.Context, actor Actor, id string) error {
	if !actor.IsStaff {
		return ErrPermissionDenied
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := repositories.NewEventRepository(tx)

		event, err := events.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		deleted, err := events.Delete(event.ID)
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		if !deleted {
			return ErrEventNotFound
		}
		return nil
	})
}

// CancelEvents cancels every listed event that is not cancelled yet and tells
// its registrants. Repeated ids count once. It returns how many events were
// actually cancelled by this call.
func (s *EventService) CancelEvents(ctx context.Context, ids []string, now time.Time) (int, error) {
	seen := make(map[string]bool, len(ids))
	cancelled := 0

	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			events := repositories.NewEventRepository(tx)

			won, err := events.MarkCancelled(id, now)
			if err != nil {
				return fmt.Errorf("failed to cancel event %s: %w", id, err)
			}
			if !won {
				return nil
			}

			event, err := events.FindByID(id)
			if err != nil {
				return fmt.Errorf("failed to reload event %s: %w", id, err)
			}
			if _, err := s.notifications.FanOut(tx, event.ID, eventCancelledMessage(event)); err != nil {
				return err
			}
			cancelled++
			return nil
		})
		if err != nil {
			return cancelled, err
		}
	}

	return cancelled, nil
}
