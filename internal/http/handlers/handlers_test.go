package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skilltrack/internal/repository"
	"skilltrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	tasks := repository.NewMemoryTaskRepository()
	skills := repository.NewMemorySkillRepository(tasks)
	tokens := service.NewTokenProvider("test-secret", 15*time.Minute, time.Hour)

	h := NewHandler(
		service.NewAuthService(users, tokens, nil),
		service.NewTaskService(tasks, skills),
		service.NewSkillService(skills),
	)

	// trusts the x-user-id header the way the identity middleware does
	identity := func(c *gin.Context) {
		id := c.GetHeader("x-user-id")
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("user_id", id)
	}

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.GET("/auth/me", identity, h.Me)
	r.GET("/tasks", identity, h.ListTasks)
	r.POST("/tasks", identity, h.CreateTask)
	r.PUT("/tasks/:id", identity, h.UpdateTask)
	r.DELETE("/tasks/:id", identity, h.DeleteTask)
	r.GET("/skills", identity, h.ListSkills)
	r.POST("/skills", identity, h.CreateSkill)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) (userID, accessToken string) {
	t.Helper()
	w := doJSON(t, r, "POST", "/auth/register", gin.H{"email": email, "password": "123456"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	return res.User.ID, res.AccessToken
}

func TestRegisterAndMe(t *testing.T) {
	r := newTestRouter()

	userID, _ := registerUser(t, r, "a@test.com")

	w := doJSON(t, r, "GET", "/auth/me", nil, map[string]string{"x-user-id": userID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@test.com")
}

func TestRegisterDuplicateIs409(t *testing.T) {
	r := newTestRouter()

	registerUser(t, r, "dup@test.com")
	w := doJSON(t, r, "POST", "/auth/register", gin.H{"email": "dup@test.com", "password": "x"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginBadCredentialsIs401(t *testing.T) {
	r := newTestRouter()

	registerUser(t, r, "b@test.com")
	w := doJSON(t, r, "POST", "/auth/login", gin.H{"email": "b@test.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotatesTokens(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, "POST", "/auth/register", gin.H{"email": "c@test.com", "password": "123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reg struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = doJSON(t, r, "POST", "/auth/refresh", gin.H{"refreshToken": reg.RefreshToken}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ref struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ref))
	assert.NotEqual(t, reg.RefreshToken, ref.RefreshToken)

	// old token is gone after rotation
	w = doJSON(t, r, "POST", "/auth/refresh", gin.H{"refreshToken": reg.RefreshToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTasksRequireIdentity(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, "GET", "/tasks", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateTaskMissingDueDateIs400(t *testing.T) {
	r := newTestRouter()
	userID, _ := registerUser(t, r, "d@test.com")

	w := doJSON(t, r, "POST", "/tasks", gin.H{"title": "no date"},
		map[string]string{"x-user-id": userID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "due date")
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter()
	userID, _ := registerUser(t, r, "e@test.com")
	auth := map[string]string{"x-user-id": userID}
	due := time.Now().Add(24 * time.Hour).Format(time.RFC3339)

	w := doJSON(t, r, "POST", "/skills", gin.H{"name": "English"}, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var skill struct {
		ID            string `json:"id"`
		TargetMinutes int    `json:"target_minutes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &skill))
	assert.Equal(t, 600000, skill.TargetMinutes)

	w = doJSON(t, r, "POST", "/tasks", gin.H{
		"title": "practice", "due_date": due, "learning_minutes": 50, "skill_id": skill.ID,
	}, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var task struct {
		ID       string `json:"id"`
		Priority int    `json:"priority"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, 1, task.Priority)

	w = doJSON(t, r, "GET", "/skills", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_minutes":50`)

	w = doJSON(t, r, "PUT", fmt.Sprintf("/tasks/%s", task.ID), gin.H{"status": "done"}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/tasks/%s", task.ID), nil, auth)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "GET", "/skills", nil, auth)
	assert.Contains(t, w.Body.String(), `"total_minutes":0`)

	// unknown task now
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/tasks/%s", task.ID), nil, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTasksScopedByOwner(t *testing.T) {
	r := newTestRouter()
	owner, _ := registerUser(t, r, "owner@test.com")
	intruder, _ := registerUser(t, r, "intruder@test.com")
	due := time.Now().Add(24 * time.Hour).Format(time.RFC3339)

	w := doJSON(t, r, "POST", "/tasks", gin.H{"title": "private", "due_date": due},
		map[string]string{"x-user-id": owner})
	require.Equal(t, http.StatusCreated, w.Code)
	var task struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	w = doJSON(t, r, "PUT", fmt.Sprintf("/tasks/%s", task.ID), gin.H{"title": "stolen"},
		map[string]string{"x-user-id": intruder})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
