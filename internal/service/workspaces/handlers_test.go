package workspaces_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"calldeskrest/internal/config"
	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"
	"calldeskrest/internal/service/sessions"
	"calldeskrest/internal/service/workspaces"
	"calldeskrest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onePage[T any](items ...T) func(dto.SearchScope) feed.Source[T] {
	return func(dto.SearchScope) feed.Source[T] {
		return feed.SourceFunc[T](func(context.Context, *string) (feed.Page[T], error) {
			return feed.Page[T]{Items: items}, nil
		})
	}
}

func setup(t *testing.T) (*gin.Engine, *config.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	next := "2"
	cfg := &config.App{Settings: config.DefaultSettings(), Logger: logger.Nop()}
	cfg.Sessions = sessions.NewRegistry(sessions.Sources{
		Tickets: func(dto.TicketScope) feed.Source[dto.Ticket] {
			return feed.SourceFunc[dto.Ticket](func(context.Context, *string) (feed.Page[dto.Ticket], error) {
				return feed.Page[dto.Ticket]{
					Items:             []dto.Ticket{{ID: "1"}, {ID: "2"}},
					ContinuationToken: &next,
				}, nil
			})
		},
		Patients:  onePage(dto.Patient{ID: "p1"}),
		Providers: onePage[dto.Provider](),
	}, cfg.Logger)

	router := gin.New()
	router.POST("/sessions", workspaces.Create(cfg))
	router.DELETE("/sessions/:id", workspaces.Dispose(cfg))
	router.GET("/sessions/:id/probe", workspaces.Load(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, workspaces.Current(c).ID)
	})
	return router, cfg
}

func do(router *gin.Engine, method, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	router, cfg := setup(t)

	w := do(router, http.MethodPost, "/sessions")
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool               `json:"success"`
		Data    dto.SessionCreated `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.SessionID)
	assert.Equal(t, dto.FeedStatus{Added: 2, Total: 2, HasMore: true}, body.Data.Tickets)
	assert.Equal(t, dto.FeedStatus{Added: 1, Total: 1}, body.Data.Patients)
	assert.Equal(t, dto.FeedStatus{}, body.Data.Providers)
	assert.Equal(t, 1, cfg.Sessions.Len())
}

func TestSessionLifecycle(t *testing.T) {
	router, cfg := setup(t)
	ws := cfg.Sessions.Create(context.Background())

	tests := []struct {
		name           string
		method         string
		url            string
		expectedStatus int
		expectedBody   string
	}{
		{"load known session", http.MethodGet, "/sessions/" + ws.ID + "/probe", http.StatusOK, ws.ID},
		{"load unknown session", http.MethodGet, "/sessions/nope/probe", http.StatusNotFound, ""},
		{"dispose", http.MethodDelete, "/sessions/" + ws.ID, http.StatusOK, ""},
		{"dispose twice", http.MethodDelete, "/sessions/" + ws.ID, http.StatusNotFound, ""},
		{"load disposed session", http.MethodGet, "/sessions/" + ws.ID + "/probe", http.StatusNotFound, ""},
	}

	// cases run in order; each depends on the previous state
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.url)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
	assert.Equal(t, 0, cfg.Sessions.Len())
}

func TestRespondFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	workspaces.RespondFeed(c, dto.FeedStatus{Total: 4, HasMore: true}, assert.AnError)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body struct {
		Success bool           `json:"success"`
		Code    int            `json:"code"`
		Details dto.FeedStatus `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusBadGateway, body.Code)
	assert.Equal(t, 4, body.Details.Total)
}
