package handlers

import (
	"net/http"

	"skilltrack/internal/domain"

	"github.com/gin-gonic/gin"
)

type createSkillRequest struct {
	Name          string `json:"name"`
	TargetMinutes *int   `json:"target_minutes"`
}

type updateSkillRequest struct {
	Name          *string `json:"name"`
	TargetMinutes *int    `json:"target_minutes"`
}

func (h *Handler) ListSkills(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	skills, err := h.Skills.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if skills == nil {
		skills = []domain.Skill{}
	}
	c.JSON(http.StatusOK, skills)
}

func (h *Handler) CreateSkill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createSkillRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	skill, err := h.Skills.Create(c.Request.Context(), userID, req.Name, req.TargetMinutes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

func (h *Handler) UpdateSkill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateSkillRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	skill, err := h.Skills.Update(c.Request.Context(), userID, c.Param("id"), req.Name, req.TargetMinutes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h *Handler) DeleteSkill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Skills.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
