package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/campus/service"
)

// DirectoryHandlers contains HTTP handlers for persons and the roll
type DirectoryHandlers struct {
	directory *service.DirectoryService
	logger    *slog.Logger
}

// NewDirectoryHandlers creates new directory handlers
func NewDirectoryHandlers(directory *service.DirectoryService, logger *slog.Logger) *DirectoryHandlers {
	return &DirectoryHandlers{directory: directory, logger: logger}
}

func (h *DirectoryHandlers) CreatePerson(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	person, err := h.directory.CreatePerson(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondError(c, h.logger, "Person", err)
		return
	}

	c.JSON(http.StatusCreated, person)
}

func (h *DirectoryHandlers) GetPerson(c *gin.Context) {
	person, err := h.directory.GetPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Person", err)
		return
	}

	c.JSON(http.StatusOK, person)
}

func (h *DirectoryHandlers) ListPersons(c *gin.Context) {
	persons, err := h.directory.ListPersons(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Person", err)
		return
	}

	c.JSON(http.StatusOK, persons)
}

func (h *DirectoryHandlers) AddToRoll(c *gin.Context) {
	var req struct {
		EnrollmentNumber string `json:"enrollmentNumber"`
		Name             string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	entry, err := h.directory.AddToRoll(c.Request.Context(), req.EnrollmentNumber, req.Name)
	if err != nil {
		respondError(c, h.logger, "Enrollment", err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *DirectoryHandlers) ListRoll(c *gin.Context) {
	entries, err := h.directory.ListRoll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Enrollment", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
