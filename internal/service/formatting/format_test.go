package formatting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/format/date", Date())
	router.GET("/format/phone", Phone())

	tests := []struct {
		name           string
		url            string
		expectedStatus int
		expected       FormattedValue
	}{
		{"iso date", "/format/date?value=2024-03-05", http.StatusOK, FormattedValue{Input: "2024-03-05", Formatted: "03/05/2024", Valid: true}},
		{"epoch seconds", "/format/date?value=1709500000", http.StatusOK, FormattedValue{Input: "1709500000", Formatted: "03/03/2024 21:06", Valid: true}},
		{"garbage date", "/format/date?value=soon", http.StatusOK, FormattedValue{Input: "soon", Formatted: "", Valid: false}},
		{"missing date", "/format/date", http.StatusBadRequest, FormattedValue{}},
		{"phone", "/format/phone?value=1-305-123-4567", http.StatusOK, FormattedValue{Input: "1-305-123-4567", Formatted: "+1 (305) 123-4567", Valid: true}},
		{"short phone", "/format/phone?value=12345", http.StatusOK, FormattedValue{Input: "12345", Formatted: "N/A", Valid: false}},
		{"missing phone", "/format/phone", http.StatusBadRequest, FormattedValue{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var body struct {
				Data FormattedValue `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body.Data)
		})
	}
}
