package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/service"
)

const userEntity = "User"

// UserHandlers contains HTTP handlers for user endpoints
type UserHandlers struct {
	authService *service.AuthService
	userService *service.UserService
	metrics     *Metrics
	logger      *slog.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authService *service.AuthService, userService *service.UserService, metrics *Metrics, logger *slog.Logger) *UserHandlers {
	return &UserHandlers{
		authService: authService,
		userService: userService,
		metrics:     metrics,
		logger:      logger,
	}
}

// Register handles user registration
func (h *UserHandlers) Register(c *gin.Context) {
	var req struct {
		EnrollmentNumber string `json:"enrollmentNumber"`
		Email            string `json:"email"`
		Password         string `json:"password"`
		ConfirmPassword  string `json:"confirmPassword"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterUser{
		EnrollmentNumber: req.EnrollmentNumber,
		Email:            req.Email,
		Password:         req.Password,
		ConfirmPassword:  req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, h.logger, userEntity, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles user login by enrollment number or email
func (h *UserHandlers) Login(c *gin.Context) {
	var req struct {
		EnrollmentNumber string `json:"enrollmentNumber"`
		Email            string `json:"email"`
		Password         string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	key, err := core.UserLookupKey(req.EnrollmentNumber, req.Email)
	if err != nil {
		h.metrics.observeLogin(core.KindUser, err)
		respondError(c, h.logger, userEntity, err)
		return
	}

	token, err := h.authService.LoginUser(c.Request.Context(), key, req.Password)
	h.metrics.observeLogin(core.KindUser, err)
	if err != nil {
		respondError(c, h.logger, userEntity, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Authentication successful.",
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(h.authService.TokenTTL().Seconds()),
	})
}

// Logout revokes the presented token
func (h *UserHandlers) Logout(c *gin.Context) {
	logout(c, h.authService, h.logger)
}

func logout(c *gin.Context, authService *service.AuthService, logger *slog.Logger) {
	if err := authService.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		respondError(c, logger, "Session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me returns the user the presented token was issued for
func (h *UserHandlers) Me(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		respondError(c, h.logger, userEntity, core.ErrMissingToken)
		return
	}

	user, err := h.userService.Get(c.Request.Context(), session.Subject)
	if err != nil {
		respondError(c, h.logger, userEntity, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// List returns all users
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, userEntity, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Get returns one user
func (h *UserHandlers) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, userEntity, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update changes the email and/or password of a user
func (h *UserHandlers) Update(c *gin.Context) {
	var req struct {
		Email           *string `json:"email"`
		Password        *string `json:"password"`
		ConfirmPassword *string `json:"confirmPassword"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), service.UpdateUser{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, h.logger, userEntity, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete removes a user
func (h *UserHandlers) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, userEntity, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
