package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventhub-api/database"
	"eventhub-api/models"
	"eventhub-api/repositories"

	"gorm.io/gorm"
)

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// Prepare checks that userID may still leave feedback on the event and returns it
func (s *FeedbackService) Prepare(ctx context.Context, userID, eventID string) (*models.Event, error) {
	db := s.db.WithContext(ctx)

	event, err := repositories.NewEventRepository(db).FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	exists, err := repositories.NewFeedbackRepository(db).Exists(event.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check feedback: %w", err)
	}
	if exists {
		return nil, ErrFeedbackAlreadySubmitted
	}
	return event, nil
}

// Submit stores the single feedback a user may leave on an event. The
// duplicate check runs before the rating is looked at.
func (s *FeedbackService) Submit(ctx context.Context, userID, eventID string, rating *int, comment string) (*models.Feedback, error) {
	event, err := s.Prepare(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if rating == nil || !models.ValidRating(*rating) {
		return nil, ErrInvalidRating
	}

	feedback := &models.Feedback{
		EventID: event.ID,
		UserID:  userID,
		Rating:  *rating,
		Comment: strings.TrimSpace(comment),
	}
	if err := repositories.NewFeedbackRepository(s.db.WithContext(ctx)).Create(feedback); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrFeedbackAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback, nil
}

// ListForEvent returns an event's feedback, newest first
func (s *FeedbackService) ListForEvent(ctx context.Context, eventID string) ([]models.Feedback, error) {
	db := s.db.WithContext(ctx)
	if _, err := repositories.NewEventRepository(db).FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	feedbacks, err := repositories.NewFeedbackRepository(db).ListByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedbacks, nil
}

// ReplyToFeedback stores a staff answer to a piece of feedback
func (s *FeedbackService) ReplyToFeedback(ctx context.Context, actor Actor, feedbackID, reply string) (*models.Feedback, error) {
	if !actor.IsStaff {
		return nil, ErrPermissionDenied
	}

	feedbacks := repositories.NewFeedbackRepository(s.db.WithContext(ctx))
	feedback, err := feedbacks.FindByID(feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if err := feedbacks.UpdateReply(feedback.ID, reply); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}
	feedback.Reply = reply
	return feedback, nil
}
