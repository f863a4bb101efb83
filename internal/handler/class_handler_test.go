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
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
)

type classServiceMock struct {
	listApprovedResp []models.Class
	lastTop          bool
	createResp       *models.Class
	createErr        error
	lastClaims       *models.SessionClaims
	lastStatus       models.ClassStatus
	setStatusErr     error
	reserveErr       error
	lastFeedback     service.FeedbackRequest
}

func (m *classServiceMock) ListApproved(ctx context.Context, top bool) ([]models.Class, error) {
	m.lastTop = top
	return m.listApprovedResp, nil
}

func (m *classServiceMock) ListAll(ctx context.Context) ([]models.Class, error) {
	return nil, nil
}

func (m *classServiceMock) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	return nil, nil
}

func (m *classServiceMock) Create(ctx context.Context, req service.CreateClassRequest, instructor *models.SessionClaims) (*models.Class, error) {
	m.lastClaims = instructor
	return m.createResp, m.createErr
}

func (m *classServiceMock) SetStatus(ctx context.Context, id string, status models.ClassStatus) error {
	m.lastStatus = status
	return m.setStatusErr
}

func (m *classServiceMock) SetFeedback(ctx context.Context, id string, req service.FeedbackRequest) error {
	m.lastFeedback = req
	return nil
}

func (m *classServiceMock) ReserveSeat(ctx context.Context, id string) error {
	return m.reserveErr
}

func TestClassHandlerListPublicTop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{listApprovedResp: []models.Class{{ID: "c1", Title: "Archery"}}}
	handler := NewClassHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/classes?top=true", nil)
	c.Request = req

	handler.ListPublic(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.lastTop)
}

func TestClassHandlerCreateUsesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{createResp: &models.Class{ID: "c1", Title: "Archery", Status: models.ClassPending}}
	handler := NewClassHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/classes", bytes.NewBufferString(`{"title":"Archery","price":25,"available_seats":10}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.SessionClaims{Email: "teach@example.com", Name: "Teacher One"})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockSvc.lastClaims)
	assert.Equal(t, "teach@example.com", mockSvc.lastClaims.Email)
}

func TestClassHandlerCreateWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassHandler(&classServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/classes", bytes.NewBufferString(`{"title":"Archery"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClassHandlerUpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{}
	handler := NewClassHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/update-class-status/c1?status=approved", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.UpdateStatus(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ClassApproved, mockSvc.lastStatus)
}

func TestClassHandlerReserveSeatSoldOut(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{reserveErr: appErrors.ErrSoldOut}
	handler := NewClassHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/class/c1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.ReserveSeat(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClassHandlerUpdateFeedback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{}
	handler := NewClassHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/update-feedback/c1", bytes.NewBufferString(`{"feedback":"needs a safety plan"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.UpdateFeedback(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "needs a safety plan", mockSvc.lastFeedback.Feedback)
}
