package handlers

import (
	"errors"
	"net/http"

	"skilltrack/internal/domain"
	"skilltrack/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Auth   *service.AuthService
	Tasks  *service.TaskService
	Skills *service.SkillService

	CookieSecure bool
}

func NewHandler(auth *service.AuthService, tasks *service.TaskService, skills *service.SkillService) *Handler {
	return &Handler{Auth: auth, Tasks: tasks, Skills: skills}
}

// currentUserID reads the caller identity set by the identity middleware.
func currentUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get("user_id")
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// writeError maps sentinel errors to HTTP statuses; everything else is a
// 400 with the raw message, matching the small error vocabulary of the
// services.
func writeError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
