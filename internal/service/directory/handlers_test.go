package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calldeskrest/internal/config"
	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"
	"calldeskrest/internal/service/directory"
	"calldeskrest/internal/service/sessions"
	"calldeskrest/internal/service/workspaces"
	"calldeskrest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patients = []dto.Patient{
	{ID: "10", FirstName: "Maria", LastName: "Souza", DOB: "1980-07-14", Phone: "305.123.4567", Email: " Maria@Example.com "},
	{ID: "11", Phone: "123", Email: "nobody"},
}

func patientSource(scope dto.SearchScope) feed.Source[dto.Patient] {
	return feed.SourceFunc[dto.Patient](func(context.Context, *string) (feed.Page[dto.Patient], error) {
		var out []dto.Patient
		for _, p := range patients {
			if scope.Query == "" || strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(scope.Query)) {
				out = append(out, p)
			}
		}
		return feed.Page[dto.Patient]{Items: out}, nil
	})
}

func providerSource(dto.SearchScope) feed.Source[dto.Provider] {
	return feed.SourceFunc[dto.Provider](func(_ context.Context, cursor *string) (feed.Page[dto.Provider], error) {
		switch feed.PageNumber(cursor, 1) {
		case 1:
			return feed.PageBySize([]dto.Provider{{ID: "a", Name: "Dr. Adams"}, {ID: "b", Name: "Dr. Brown"}}, 2, 2), nil
		default:
			return feed.PageBySize([]dto.Provider{{ID: "c", Name: "Dr. Costa", Phone: "+1 212 555 0100"}}, 2, 3), nil
		}
	})
}

func setup(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.App{Settings: config.DefaultSettings(), Logger: logger.Nop()}
	cfg.Sessions = sessions.NewRegistry(sessions.Sources{
		Tickets: func(dto.TicketScope) feed.Source[dto.Ticket] {
			return feed.SourceFunc[dto.Ticket](func(context.Context, *string) (feed.Page[dto.Ticket], error) {
				return feed.Page[dto.Ticket]{}, nil
			})
		},
		Patients:  patientSource,
		Providers: providerSource,
	}, cfg.Logger)

	router := gin.New()
	group := router.Group("/sessions/:id", workspaces.Load(cfg))
	group.GET("/patients", directory.Patients(cfg))
	group.POST("/patients/next", directory.NextPatients(cfg))
	group.GET("/providers", directory.Providers(cfg))
	group.POST("/providers/next", directory.NextProviders(cfg))

	return router, cfg.Sessions.Create(context.Background()).ID
}

func do(router *gin.Engine, method, url string, out interface{}) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, nil)
	router.ServeHTTP(w, req)
	if out != nil {
		_ = json.Unmarshal(w.Body.Bytes(), out)
	}
	return w.Code
}

type patientsBody struct {
	Data dto.DirectoryView[dto.PatientRow] `json:"data"`
}

type providersBody struct {
	Data dto.DirectoryView[dto.ProviderRow] `json:"data"`
}

type statusBody struct {
	Data dto.FeedStatus `json:"data"`
}

func TestPatients(t *testing.T) {
	router, id := setup(t)
	base := "/sessions/" + id + "/patients"

	var body patientsBody
	require.Equal(t, http.StatusOK, do(router, http.MethodGet, base, &body))
	require.Len(t, body.Data.Rows, 2)
	assert.False(t, body.Data.HasMore)

	maria := body.Data.Rows[0]
	assert.Equal(t, "Maria Souza", maria.FullName)
	assert.Equal(t, "07/14/1980", maria.DOBDisplay)
	assert.Equal(t, "+1 (305) 123-4567", maria.PhoneDisp)
	assert.Equal(t, "maria@example.com", maria.EmailDisp)

	blank := body.Data.Rows[1]
	assert.Equal(t, "N/A", blank.FullName)
	assert.Equal(t, "N/A", blank.DOBDisplay)
	assert.Equal(t, "N/A", blank.PhoneDisp)
	assert.Equal(t, "N/A", blank.EmailDisp)
}

func TestNextPatients(t *testing.T) {
	router, id := setup(t)
	base := "/sessions/" + id + "/patients"

	var st statusBody
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, base+"/next", &st))
	assert.Equal(t, "exhausted", st.Data.Skipped)

	st = statusBody{}
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, base+"/next?q=+souza+", &st))
	assert.Equal(t, dto.FeedStatus{Added: 1, Total: 1}, st.Data)

	var body patientsBody
	require.Equal(t, http.StatusOK, do(router, http.MethodGet, base, &body))
	assert.Equal(t, "souza", body.Data.Query)
	require.Len(t, body.Data.Rows, 1)
	assert.Equal(t, "10", body.Data.Rows[0].Key())
}

func TestProviders(t *testing.T) {
	router, id := setup(t)
	base := "/sessions/" + id + "/providers"

	var body providersBody
	require.Equal(t, http.StatusOK, do(router, http.MethodGet, base, &body))
	assert.Len(t, body.Data.Rows, 2)
	assert.True(t, body.Data.HasMore)

	var st statusBody
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, base+"/next", &st))
	assert.Equal(t, dto.FeedStatus{Added: 1, Total: 3}, st.Data)

	body = providersBody{}
	require.Equal(t, http.StatusOK, do(router, http.MethodGet, base, &body))
	require.Len(t, body.Data.Rows, 3)
	assert.Equal(t, "+1 (212) 555-0100", body.Data.Rows[2].PhoneDisp)
	assert.Equal(t, "N/A", body.Data.Rows[0].EmailDisp)
	assert.False(t, body.Data.HasMore)
}

func TestUnknownSession(t *testing.T) {
	router, _ := setup(t)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/sessions/missing/patients", nil))
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodPost, "/sessions/missing/providers/next", nil))
}
