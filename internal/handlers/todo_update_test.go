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

func TestTodoUpdateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTodoUpdater(ctrl)

	userID := uuid.New()
	title := "new title"
	completed := true

	tests := []struct {
		name         string
		target       string
		inputBody    interface{}
		withIdentity bool
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name:         "title only",
			target:       "/todo?id=1",
			inputBody:    TodoUpdateRequest{Title: &title},
			withIdentity: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Update(gomock.Any(), userID, int64(1), gomock.Any(), gomock.Nil()).
					Return(int64(1), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &TodoUpdateResponse{OK: true, Updated: 1},
		},
		{
			name:         "completed only",
			target:       "/todo?id=1",
			inputBody:    TodoUpdateRequest{Completed: &completed},
			withIdentity: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Update(gomock.Any(), userID, int64(1), gomock.Nil(), gomock.Any()).
					Return(int64(1), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &TodoUpdateResponse{OK: true, Updated: 1},
		},
		{
			name:         "missing id",
			target:       "/todo",
			inputBody:    TodoUpdateRequest{Title: &title},
			withIdentity: true,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &TodoUpdateErrorResponse{Error: "id_required"},
		},
		{
			name:         "zero id",
			target:       "/todo?id=0",
			inputBody:    TodoUpdateRequest{Title: &title},
			withIdentity: true,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &TodoUpdateErrorResponse{Error: "id_required"},
		},
		{
			name:         "invalid JSON",
			target:       "/todo?id=1",
			inputBody:    "{invalid json}",
			withIdentity: true,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &TodoUpdateErrorResponse{Error: "invalid_request"},
		},
		{
			name:         "not found or foreign item",
			target:       "/todo?id=99",
			inputBody:    TodoUpdateRequest{Title: &title},
			withIdentity: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Update(gomock.Any(), userID, int64(99), gomock.Any(), gomock.Nil()).
					Return(int64(0), services.ErrItemNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: &TodoUpdateErrorResponse{Error: "not_found"},
		},
		{
			name:         "no identity in context",
			target:       "/todo?id=1",
			inputBody:    TodoUpdateRequest{Title: &title},
			withIdentity: false,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &TodoUpdateErrorResponse{Error: "unauthenticated"},
		},
		{
			name:         "internal error",
			target:       "/todo?id=1",
			inputBody:    TodoUpdateRequest{Title: &title},
			withIdentity: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Update(gomock.Any(), userID, int64(1), gomock.Any(), gomock.Nil()).
					Return(int64(0), errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: &TodoUpdateErrorResponse{Error: "internal_error"},
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

			req := httptest.NewRequest(http.MethodPut, tt.target, bytes.NewReader(bodyBytes))
			if tt.withIdentity {
				req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
			}
			w := httptest.NewRecorder()

			NewTodoUpdateHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			var respBody interface{}
			switch tt.expectedCode {
			case http.StatusOK:
				respBody = &TodoUpdateResponse{}
			default:
				respBody = &TodoUpdateErrorResponse{}
			}
			err := json.Unmarshal(w.Body.Bytes(), respBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, respBody)
		})
	}
}
