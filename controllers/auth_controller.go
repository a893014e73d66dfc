// File: /controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strings"

	"eventhub-api/models"
	"eventhub-api/services"
	"eventhub-api/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
	now         Clock
}

func NewAuthController(authService *services.AuthService, now Clock) *AuthController {
	return &AuthController{
		authService: authService,
		now:         now,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if email := strings.TrimSpace(req.Email); email != "" && !utils.IsValidEmail(email) {
		utils.SendValidationError(c, "Enter a valid email address")
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	ac.respondWithToken(c, http.StatusCreated, user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, err := ac.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	ac.respondWithToken(c, http.StatusOK, user)
}

// Logout only acknowledges the request; tokens are stateless and the client drops its copy
func (ac *AuthController) Logout(c *gin.Context) {
	utils.SendSuccess(c, "You have been logged out", nil)
}

func (ac *AuthController) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := ac.authService.IssueToken(user, ac.now())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(status, AuthResponse{Token: token, User: *user})
}
