package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/middlewares"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestTodoCreateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTodoCreator(ctrl)

	userID := uuid.New()

	tests := []struct {
		name         string
		inputBody    interface{}
		withIdentity bool
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name:         "success",
			inputBody:    TodoCreateRequest{Title: "buy milk"},
			withIdentity: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), userID, "buy milk").
					Return(int64(1), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &TodoCreateResponse{OK: true, ID: 1},
		},
		{
			name:         "missing title",
			inputBody:    TodoCreateRequest{},
			withIdentity: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), userID, "").
					Return(int64(0), services.ErrInvalidInput)
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: &TodoCreateErrorResponse{Error: "invalid_input"},
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			withIdentity: true,
			mockSetup:    func() {},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: &TodoCreateErrorResponse{Error: "invalid_input"},
		},
		{
			name:         "no identity in context",
			inputBody:    TodoCreateRequest{Title: "buy milk"},
			withIdentity: false,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &TodoCreateErrorResponse{Error: "unauthenticated"},
		},
		{
			name:         "internal error",
			inputBody:    TodoCreateRequest{Title: "buy milk"},
			withIdentity: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), userID, "buy milk").
					Return(int64(0), errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: &TodoCreateErrorResponse{Error: "internal_error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/todos", bytes.NewReader(bodyBytes))
			if tt.withIdentity {
				req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
			}
			w := httptest.NewRecorder()

			NewTodoCreateHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			var respBody interface{}
			switch tt.expectedCode {
			case http.StatusOK:
				respBody = &TodoCreateResponse{}
			default:
				respBody = &TodoCreateErrorResponse{}
			}
			err := json.Unmarshal(w.Body.Bytes(), respBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, respBody)
		})
	}
}
