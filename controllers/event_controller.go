// File: /controllers/event_controller.go
package controllers

import (
	"net/http"

	"eventhub-api/services"
	"eventhub-api/utils"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	eventService        *services.EventService
	registrationService *services.RegistrationService
	now                 Clock
}

func NewEventController(eventService *services.EventService, registrationService *services.RegistrationService, now Clock) *EventController {
	return &EventController{
		eventService:        eventService,
		registrationService: registrationService,
		now:                 now,
	}
}

type CancelEventsRequest struct {
	EventIDs []string `json:"event_ids" binding:"required,min=1"`
}

// GetEvents lists every event that is not cancelled
func (ec *EventController) GetEvents(c *gin.Context) {
	events, err := ec.eventService.ListOpen(c.Request.Context(), ec.now())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetMyEvents lists the caller's upcoming registrations
func (ec *EventController) GetMyEvents(c *gin.Context) {
	events, err := ec.registrationService.MyEvents(c.Request.Context(), currentUserID(c), ec.now())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// BookEvent registers the caller for an event
func (ec *EventController) BookEvent(c *gin.Context) {
	registration, err := ec.registrationService.TryRegister(c.Request.Context(), currentUserID(c), c.Param("id"), ec.now())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendCreated(c, "You are registered! The event now shows up under My events.", registration)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	var req services.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	event, err := ec.eventService.CreateEvent(c.Request.Context(), currentActor(c), req, ec.now())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendCreated(c, "Event created", event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	var req services.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	event, notifications, err := ec.eventService.UpdateEvent(c.Request.Context(), currentActor(c), c.Param("id"), req, ec.now())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Event updated",
		"data":           event,
		"notified_users": len(notifications),
	})
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	if err := ec.eventService.DeleteEvent(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Event deleted", nil)
}

// CancelEvents is the bulk cancellation action for operators
func (ec *EventController) CancelEvents(c *gin.Context) {
	var req CancelEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	cancelled, err := ec.eventService.CancelEvents(c.Request.Context(), req.EventIDs, ec.now())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Events cancelled, registrants notified",
		"cancelled": cancelled,
	})
}
