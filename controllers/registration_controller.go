// File: /controllers/registration_controller.go
package controllers

import (
	"net/http"

	"eventhub-api/services"
	"eventhub-api/utils"

	"github.com/gin-gonic/gin"
)

type RegistrationController struct {
	registrationService *services.RegistrationService
}

func NewRegistrationController(registrationService *services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrationService: registrationService}
}

type AttendanceRequest struct {
	Attended *bool `json:"attended" binding:"required"`
}

type RegistrationResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Attended bool   `json:"attended"`
	Created  string `json:"created"`
}

// GetEventRegistrations lists who registered for an event
func (rc *RegistrationController) GetEventRegistrations(c *gin.Context) {
	registrations, err := rc.registrationService.ListForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	responses := make([]RegistrationResponse, 0, len(registrations))
	for _, registration := range registrations {
		responses = append(responses, RegistrationResponse{
			ID:       registration.ID,
			UserID:   registration.UserID,
			Username: registration.User.Username,
			Email:    registration.User.Email,
			Attended: registration.Attended,
			Created:  registration.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// MarkAttended records attendance for one registration
func (rc *RegistrationController) MarkAttended(c *gin.Context) {
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	registration, err := rc.registrationService.MarkAttended(c.Request.Context(), c.Param("id"), *req.Attended)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Attendance updated", registration)
}
