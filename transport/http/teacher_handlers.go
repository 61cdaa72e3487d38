package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/service"
)

const teacherEntity = "Teacher"

// TeacherHandlers contains HTTP handlers for teacher endpoints
type TeacherHandlers struct {
	authService    *service.AuthService
	teacherService *service.TeacherService
	metrics        *Metrics
	logger         *slog.Logger
}

// NewTeacherHandlers creates new teacher handlers
func NewTeacherHandlers(authService *service.AuthService, teacherService *service.TeacherService, metrics *Metrics, logger *slog.Logger) *TeacherHandlers {
	return &TeacherHandlers{
		authService:    authService,
		teacherService: teacherService,
		metrics:        metrics,
		logger:         logger,
	}
}

// Login handles teacher login by person email
func (h *TeacherHandlers) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	token, err := h.authService.LoginTeacher(c.Request.Context(), req.Email, req.Password)
	h.metrics.observeLogin(core.KindTeacher, err)
	if err != nil {
		respondError(c, h.logger, teacherEntity, err)
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
func (h *TeacherHandlers) Logout(c *gin.Context) {
	logout(c, h.authService, h.logger)
}

// Create handles teacher creation
func (h *TeacherHandlers) Create(c *gin.Context) {
	var req struct {
		PersonID        string `json:"personId"`
		Subject         string `json:"subject"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), service.CreateTeacher{
		PersonID:        req.PersonID,
		Subject:         req.Subject,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, h.logger, teacherEntity, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Teacher created successfully!",
		"teacher": teacher,
	})
}

// List returns all teachers
func (h *TeacherHandlers) List(c *gin.Context) {
	teachers, err := h.teacherService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, teacherEntity, err)
		return
	}

	c.JSON(http.StatusOK, teachers)
}

// Get returns one teacher
func (h *TeacherHandlers) Get(c *gin.Context) {
	teacher, err := h.teacherService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, teacherEntity, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// Update changes the subject of a teacher
func (h *TeacherHandlers) Update(c *gin.Context) {
	var req struct {
		Subject string `json:"subject"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	teacher, err := h.teacherService.UpdateSubject(c.Request.Context(), c.Param("id"), req.Subject)
	if err != nil {
		respondError(c, h.logger, teacherEntity, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Teacher updated successfully!",
		"teacher": teacher,
	})
}

// Delete removes a teacher
func (h *TeacherHandlers) Delete(c *gin.Context) {
	if err := h.teacherService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, teacherEntity, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Teacher deleted successfully!"})
}

// UpdatePassword replaces the password of a teacher
func (h *TeacherHandlers) UpdatePassword(c *gin.Context) {
	var req struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	if err := h.teacherService.UpdatePassword(c.Request.Context(), c.Param("id"), req.Password, req.ConfirmPassword); err != nil {
		respondError(c, h.logger, teacherEntity, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully!"})
}
