package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sporting-life/enrollment-api/internal/middleware"
	"github.com/sporting-life/enrollment-api/internal/models"
	"github.com/sporting-life/enrollment-api/internal/service"
)

type userServiceMock struct {
	registerResp    *service.RegisterResult
	registerErr     error
	listResp        []models.User
	getResp         *models.User
	getErr          error
	setRoleErr      error
	isAdminResp     bool
	instructorsResp []models.User
	lastRole        models.UserRole
	lastLimited     bool
	registerCalled  bool
}

func (m *userServiceMock) RegisterIfAbsent(ctx context.Context, req service.RegisterUserRequest) (*service.RegisterResult, error) {
	m.registerCalled = true
	return m.registerResp, m.registerErr
}

func (m *userServiceMock) List(ctx context.Context) ([]models.User, error) {
	return m.listResp, nil
}

func (m *userServiceMock) Get(ctx context.Context, email string) (*models.User, error) {
	return m.getResp, m.getErr
}

func (m *userServiceMock) SetRole(ctx context.Context, id string, role models.UserRole) error {
	m.lastRole = role
	return m.setRoleErr
}

func (m *userServiceMock) IsAdmin(ctx context.Context, email string) (bool, error) {
	return m.isAdminResp, nil
}

func (m *userServiceMock) IsInstructor(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *userServiceMock) ListInstructors(ctx context.Context, limited bool) ([]models.User, error) {
	m.lastLimited = limited
	return m.instructorsResp, nil
}

func TestUserHandlerRegisterNewUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userServiceMock{
		registerResp: &service.RegisterResult{User: &models.User{ID: "u1", Email: "new@example.com", Role: models.RoleStudent}},
	}
	handler := NewUserHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"email":"new@example.com","name":"New"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.registerCalled)
}

func TestUserHandlerRegisterExistingUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userServiceMock{
		registerResp: &service.RegisterResult{User: &models.User{ID: "u1", Email: "dup@example.com"}, AlreadyExists: true},
	}
	handler := NewUserHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"email":"dup@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user already exists")
}

func TestUserHandlerRegisterInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewUserHandler(&userServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandlerUpdateRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userServiceMock{}
	handler := NewUserHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/update-user/u1?role=instructor", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "u1"}}

	handler.UpdateRole(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleInstructor, mockSvc.lastRole)
}

func TestUserHandlerAdminProbeMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userServiceMock{isAdminResp: true}
	handler := NewUserHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/user/admin/other@example.com", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "email", Value: "other@example.com"}}
	c.Set(middleware.ContextUserKey, &models.SessionClaims{Email: "caller@example.com"})

	handler.AdminProbe(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin":false`)
}

func TestUserHandlerAdminProbeSelf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userServiceMock{isAdminResp: true}
	handler := NewUserHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/user/admin/caller@example.com", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "email", Value: "caller@example.com"}}
	c.Set(middleware.ContextUserKey, &models.SessionClaims{Email: "caller@example.com"})

	handler.AdminProbe(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin":true`)
}

func TestUserHandlerInstructorsLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userServiceMock{instructorsResp: []models.User{{ID: "u1", Role: models.RoleInstructor}}}
	handler := NewUserHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/instructors?limit=6", nil)
	c.Request = req

	handler.Instructors(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.lastLimited)
}
