package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub-api/database"
	"eventhub-api/models"
	"eventhub-api/repositories"

	"gorm.io/gorm"
)

type RegistrationService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewRegistrationService(db *gorm.DB, notifications *NotificationService) *RegistrationService {
	return &RegistrationService{db: db, notifications: notifications}
}

// TryRegister admits userID to the event if it is open, upcoming and not full.
// The checks, the insert and both notifications commit together; the event row
// is locked for the duration so concurrent bookings cannot overrun capacity.
func (s *RegistrationService) TryRegister(ctx context.Context, userID, eventID string, now time.Time) (*models.Registration, error) {
	var registration *models.Registration

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := repositories.NewEventRepository(tx)
		registrations := repositories.NewRegistrationRepository(tx)

		event, err := events.FindByIDForUpdate(eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		if event.IsCancelled {
			return ErrEventCancelled
		}
		if event.IsPast(now) {
			return ErrEventPast
		}

		taken, err := registrations.CountByEvent(event.ID)
		if err != nil {
			return fmt.Errorf("failed to count registrations: %w", err)
		}
		if taken >= event.Capacity {
			return ErrEventFull
		}

		exists, err := registrations.Exists(userID, event.ID)
		if err != nil {
			return fmt.Errorf("failed to check registration: %w", err)
		}
		if exists {
			return ErrAlreadyRegistered
		}

		user, err := repositories.NewUserRepository(tx).FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to load user: %w", err)
		}

		registration = &models.Registration{UserID: userID, EventID: event.ID}
		if err := registrations.Create(registration); err != nil {
			if database.IsDuplicateKey(err) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}

		if _, err := s.notifications.Notify(tx, userID, registrationConfirmedMessage(event, now)); err != nil {
			return err
		}
		if event.CreatedByID != nil && *event.CreatedByID != userID {
			if _, err := s.notifications.Notify(tx, *event.CreatedByID, newRegistrationMessage(user.Username, event)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// MyEvents lists the user's registrations on events that are neither
// cancelled nor already started
func (s *RegistrationService) MyEvents(ctx context.Context, userID string, now time.Time) ([]models.MyEventItem, error) {
	registrations, err := repositories.NewRegistrationRepository(s.db.WithContext(ctx)).ListActiveForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	items := make([]models.MyEventItem, 0, len(registrations))
	for _, registration := range registrations {
		event := registration.Event
		if event.IsPast(now) {
			continue
		}
		items = append(items, models.MyEventItem{
			ID:    event.ID,
			Title: event.Title,
			Date:  event.Date.String(),
			Time:  event.TimeString(),
			Place: event.Place,
		})
	}
	return items, nil
}

// ListForEvent returns an event's registrations for staff review
func (s *RegistrationService) ListForEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	db := s.db.WithContext(ctx)
	if _, err := repositories.NewEventRepository(db).FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	registrations, err := repositories.NewRegistrationRepository(db).ListByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrations, nil
}

// MarkAttended records whether the registrant showed up
func (s *RegistrationService) MarkAttended(ctx context.Context, registrationID string, attended bool) (*models.Registration, error) {
	registrations := repositories.NewRegistrationRepository(s.db.WithContext(ctx))

	registration, err := registrations.FindByID(registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to load registration: %w", err)
	}

	if err := registrations.SetAttended(registration.ID, attended); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}
	registration.Attended = attended
	return registration, nil
}
