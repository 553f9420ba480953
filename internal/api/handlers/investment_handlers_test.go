package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

func TestSubmitInvestment_RequiresAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewInvestmentHandlers(nil, logger.NewNop())

	router := gin.New()
	router.POST("/investments", h.SubmitInvestment)

	body, _ := json.Marshal(map[string]interface{}{
		"plan_id": uuid.New().String(),
		"amount":  "500",
	})
	req := httptest.NewRequest(http.MethodPost, "/investments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitInvestment_ValidatesPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing plan id",
			body: map[string]interface{}{"amount": "500", "proof_url": "https://cdn.example.com/proof.png"},
		},
		{
			name: "malformed plan id",
			body: map[string]interface{}{"plan_id": "nope", "amount": "500", "proof_url": "https://cdn.example.com/proof.png"},
		},
		{
			name: "proof url is not a url",
			body: map[string]interface{}{"plan_id": uuid.New().String(), "amount": "500", "proof_url": "not a url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewInvestmentHandlers(nil, logger.NewNop())

			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set("user_id", uuid.New())
			})
			router.POST("/investments", h.SubmitInvestment)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/investments", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
