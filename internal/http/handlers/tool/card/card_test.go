package card

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/acnode-server/internal/models"
)

// MockService реализует интерфейс card.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Resolve(ctx context.Context, cardID string, toolID int64) (models.PermissionLevel, error) {
	args := m.Called(ctx, cardID, toolID)
	return args.Get(0).(models.PermissionLevel), args.Error(1)
}

func TestCardHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		toolID         string
		cardID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "user level",
			toolID: "1",
			cardID: "ABC123",
			setupMock: func(m *MockService) {
				m.On("Resolve", mock.Anything, "ABC123", int64(1)).Return(models.LevelUser, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "1",
		},
		{
			name:   "maintainer level",
			toolID: "1",
			cardID: "ABC123",
			setupMock: func(m *MockService) {
				m.On("Resolve", mock.Anything, "ABC123", int64(1)).Return(models.LevelMaintainer, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "2",
		},
		{
			name:   "unknown card",
			toolID: "1",
			cardID: "NOPE",
			setupMock: func(m *MockService) {
				m.On("Resolve", mock.Anything, "NOPE", int64(1)).Return(models.LevelNotFound, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "-1",
		},
		{
			name:   "no permission",
			toolID: "2",
			cardID: "ABC123",
			setupMock: func(m *MockService) {
				m.On("Resolve", mock.Anything, "ABC123", int64(2)).Return(models.LevelNone, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "0",
		},
		{
			name:   "long card id on unknown tool",
			toolID: "999",
			cardID: "0123456789ABCDEF",
			setupMock: func(m *MockService) {
				m.On("Resolve", mock.Anything, "0123456789ABCDEF", int64(999)).Return(models.LevelNotFound, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "-1",
		},
		{
			name:   "long card id on known tool",
			toolID: "1",
			cardID: "0123456789ABCDEF",
			setupMock: func(m *MockService) {
				m.On("Resolve", mock.Anything, "0123456789ABCDEF", int64(1)).Return(models.LevelNotFound, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "-1",
		},
		{
			name:           "empty card id",
			toolID:         "1",
			cardID:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "tool id overflow",
			toolID:         "99999999999999999999",
			cardID:         "ABC123",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK,
			expectedBody:   "-1",
		},
		{
			name:   "storage failure",
			toolID: "1",
			cardID: "ABC123",
			setupMock: func(m *MockService) {
				m.On("Resolve", mock.Anything, "ABC123", int64(1)).Return(models.LevelNotFound, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not resolve permission"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/"+tt.toolID+"/card/"+tt.cardID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("tool_id", tt.toolID)
			rctx.URLParams.Add("card_id", tt.cardID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedBody, w.Body.String())
				assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
			} else {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}

			mockService.AssertExpectations(t)
		})
	}
}
