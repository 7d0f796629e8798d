package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	userapp "github.com/satriadi/user-service/internal/application"
	"github.com/satriadi/user-service/internal/domain/entity"
	repo "github.com/satriadi/user-service/internal/domain/repository"
	handlers "github.com/satriadi/user-service/internal/interface/http"
	"github.com/satriadi/user-service/internal/router"
	"github.com/satriadi/user-service/internal/router/modules"
	"github.com/satriadi/user-service/pkg/validation"
)

type memRepo struct {
	mu     sync.Mutex
	users  map[int64]entity.User
	nextID int64
}

func newMemRepo() *memRepo { return &memRepo{users: map[int64]entity.User{}} }

func (m *memRepo) Insert(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = *u
	return nil
}

func (m *memRepo) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	existing.Name, existing.Email, existing.Age = u.Name, u.Email, u.Age
	m.users[u.ID] = existing
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) GetAll(_ context.Context) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := userapp.NewService(newMemRepo(), nil, logger)
	handler := handlers.NewUserHandler(svc, logger)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	// nil redis client disables the rate limiter
	reg.Add(modules.NewUserModule(handler, nil))
	reg.RegisterAll()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func createUser(t *testing.T, engine *gin.Engine, name, email string, age int) handlers.UserResponse {
	t.Helper()
	w, env := doJSON(t, engine, http.MethodPost, "/api/users", gin.H{"name": name, "email": email, "age": age})
	require.Equal(t, http.StatusCreated, w.Code)
	var u handlers.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &u))
	return u
}

func TestCreateUserReturns201(t *testing.T) {
	engine := newTestRouter(t)

	u := createUser(t, engine, "Alice", "alice@x.com", 30)
	require.Positive(t, u.ID)
	require.Equal(t, "Alice", u.Name)
	require.Equal(t, "alice@x.com", u.Email)
	require.Equal(t, 30, *u.Age)
	require.False(t, u.CreatedAt.IsZero())
}

func TestCreateUserInvalidPayload(t *testing.T) {
	engine := newTestRouter(t)

	w, env := doJSON(t, engine, http.MethodPost, "/api/users", gin.H{"name": "Alice", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)
	require.Contains(t, env.Error, "email")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	engine := newTestRouter(t)

	createUser(t, engine, "Alice", "alice@x.com", 30)
	w, env := doJSON(t, engine, http.MethodPost, "/api/users", gin.H{"name": "Bob", "email": "alice@x.com", "age": 40})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "email already exists", env.Message)
}

func TestGetUserByID(t *testing.T) {
	engine := newTestRouter(t)

	created := createUser(t, engine, "Alice", "alice@x.com", 30)
	w, env := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var u handlers.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &u))
	require.Equal(t, created.ID, u.ID)
	require.Equal(t, created.Email, u.Email)
}

func TestGetUserBadID(t *testing.T) {
	engine := newTestRouter(t)

	w, _ := doJSON(t, engine, http.MethodGet, "/api/users/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserNotFound(t *testing.T) {
	engine := newTestRouter(t)

	w, env := doJSON(t, engine, http.MethodGet, "/api/users/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "user not found", env.Message)
}

func TestListUsersEmpty(t *testing.T) {
	engine := newTestRouter(t)

	w, env := doJSON(t, engine, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var list []handlers.UserResponse
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &list))
	}
	require.Empty(t, list)
}

func TestUpdateUser(t *testing.T) {
	engine := newTestRouter(t)

	created := createUser(t, engine, "Alice", "alice@x.com", 30)
	w, env := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID),
		gin.H{"name": "Alicia", "email": "alicia@x.com", "age": 31})
	require.Equal(t, http.StatusOK, w.Code)

	var u handlers.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &u))
	require.Equal(t, created.ID, u.ID)
	require.Equal(t, "Alicia", u.Name)
	require.Equal(t, "alicia@x.com", u.Email)
	require.Equal(t, created.CreatedAt, u.CreatedAt)
}

func TestUpdateUserNotFound(t *testing.T) {
	engine := newTestRouter(t)

	w, _ := doJSON(t, engine, http.MethodPut, "/api/users/999", gin.H{"name": "Ghost", "email": "ghost@x.com"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserEmailCollision(t *testing.T) {
	engine := newTestRouter(t)

	createUser(t, engine, "Alice", "alice@x.com", 30)
	bob := createUser(t, engine, "Bob", "bob@x.com", 40)

	w, _ := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/users/%d", bob.ID),
		gin.H{"name": "Bob", "email": "alice@x.com"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteUser(t *testing.T) {
	engine := newTestRouter(t)

	created := createUser(t, engine, "Alice", "alice@x.com", 30)

	w, _ := doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Zero(t, w.Body.Len(), "204 must have no body")

	// Second delete: the user is gone.
	w, _ = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, env := doJSON(t, engine, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []handlers.UserResponse
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &list))
	}
	require.Empty(t, list)
}
