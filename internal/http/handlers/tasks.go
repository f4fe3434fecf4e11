package handlers

import (
	"net/http"

	"skilltrack/internal/domain"
	"skilltrack/internal/service"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	Priority        *int    `json:"priority"`
	LearningMinutes *int    `json:"learning_minutes"`
	DueDate         string  `json:"due_date"`
	SkillID         *string `json:"skill_id"`
}

type updateTaskRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	Priority        *int    `json:"priority"`
	LearningMinutes *int    `json:"learning_minutes"`
	DueDate         *string `json:"due_date"`
	SkillID         *string `json:"skill_id"`
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Status:          taskStatus(req.Status),
		Priority:        req.Priority,
		LearningMinutes: req.LearningMinutes,
		DueDate:         req.DueDate,
		SkillID:         req.SkillID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Status:          taskStatus(req.Status),
		Priority:        req.Priority,
		LearningMinutes: req.LearningMinutes,
		DueDate:         req.DueDate,
		SkillID:         req.SkillID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func taskStatus(s *string) *domain.TaskStatus {
	if s == nil {
		return nil
	}
	status := domain.TaskStatus(*s)
	return &status
}
