// File: /controllers/feedback_controller.go
package controllers

import (
	"net/http"

	"eventhub-api/models"
	"eventhub-api/services"
	"eventhub-api/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackController(feedbackService *services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

type FeedbackRequest struct {
	Rating  *int   `json:"rating" form:"rating"`
	Comment string `json:"comment" form:"comment"`
}

type ReplyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

type FeedbackFormResponse struct {
	Event     *models.Event `json:"event"`
	MinRating int           `json:"min_rating"`
	MaxRating int           `json:"max_rating"`
	CanSubmit bool          `json:"can_submit"`
}

// GetFeedbackForm tells the caller whether they can still rate the event
func (fc *FeedbackController) GetFeedbackForm(c *gin.Context) {
	event, err := fc.feedbackService.Prepare(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, FeedbackFormResponse{
		Event:     event,
		MinRating: models.MinRating,
		MaxRating: models.MaxRating,
		CanSubmit: true,
	})
}

func (fc *FeedbackController) SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		// an unreadable rating still reports an existing feedback first
		if _, err := fc.feedbackService.Prepare(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
			utils.SendAppError(c, err)
			return
		}
		utils.SendAppError(c, services.ErrInvalidRating)
		return
	}

	feedback, err := fc.feedbackService.Submit(c.Request.Context(), currentUserID(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendCreated(c, "Thank you for your feedback!", feedback)
}

// GetEventFeedback lists feedback left on an event
func (fc *FeedbackController) GetEventFeedback(c *gin.Context) {
	feedbacks, err := fc.feedbackService.ListForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedbacks)
}

func (fc *FeedbackController) ReplyToFeedback(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	feedback, err := fc.feedbackService.ReplyToFeedback(c.Request.Context(), currentActor(c), c.Param("id"), req.Reply)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Reply saved", feedback)
}
