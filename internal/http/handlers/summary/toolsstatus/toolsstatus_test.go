package toolsstatus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/acnode-server/internal/services/summary"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ToolsStatus(ctx context.Context) ([]summary.ToolStatus, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]summary.ToolStatus)
	return res, args.Error(1)
}

func TestToolsStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("renders projection", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ToolsStatus", mock.Anything).Return([]summary.ToolStatus{
			{ID: 1, Name: "test_tool", Status: "Operational", StatusMessage: "working ok", InUse: "no"},
		}, nil)

		w := httptest.NewRecorder()
		New(logger, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/get_tools_status", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.JSONEq(t,
			`[{"name":"test_tool","status":"Operational","status_message":"working ok","in_use":"no"}]`,
			w.Body.String())
	})

	t.Run("no tools renders empty array", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ToolsStatus", mock.Anything).Return([]summary.ToolStatus{}, nil)

		w := httptest.NewRecorder()
		New(logger, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/get_tools_status", nil))

		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ToolsStatus", mock.Anything).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		New(logger, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/get_tools_status", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"status":"Error","error":"could not build tools status"}`, w.Body.String())
	})
}
