// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"quickchat/internal/services"
	"quickchat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and session checks.
type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req httpdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	res, err := h.service.Signup(c.Request.Context(), services.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AuthResponse{
		Success:  true,
		UserData: httpdto.FromUser(res.User),
		Token:    res.Token,
		Message:  "Account created successfully",
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AuthResponse{
		Success:  true,
		UserData: httpdto.FromUser(res.User),
		Token:    res.Token,
		Message:  "Login successful",
	})
}

// Check handles GET /check: it returns the user the session token
// resolves to.
func (h *AuthHandler) Check(c *gin.Context) {
	u, ok := services.CurrentUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}
	c.JSON(http.StatusOK, httpdto.CheckResponse{Success: true, User: httpdto.FromUser(u)})
}
