package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

func TestSendEmail_ValidatesPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "missing everything",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing code",
			body:           map[string]string{"email": "investor@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			body:           map[string]string{"code": "123456"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid email format",
			body:           map[string]string{"email": "not-an-email", "code": "123456"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "code too short",
			body:           map[string]string{"email": "investor@example.com", "code": "123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "code not numeric",
			body:           map[string]string{"email": "investor@example.com", "code": "abcdef"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Validation fails before the verification service is reached
			h := NewEmailHandlers(nil, logger.NewNop())

			router := gin.New()
			router.POST("/email/send", h.SendEmail)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/email/send", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestVerifyCode_ValidatesPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewEmailHandlers(nil, logger.NewNop())

	router := gin.New()
	router.POST("/email/verify", h.VerifyCode)

	body, _ := json.Marshal(map[string]string{"email": "investor@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/email/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
