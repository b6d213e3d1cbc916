package directory

import (
	"context"
	"net/http"
	"strings"

	"calldeskrest/internal/config"
	"calldeskrest/internal/models/dto"
	"calldeskrest/internal/service/sessions"
	"calldeskrest/internal/service/workspaces"

	"github.com/gin-gonic/gin"
)

// Patients lists the patients loaded so far in the session
// @Summary      Patient directory
// @Tags         directory
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  dto.SuccessResponse{data=dto.DirectoryView[dto.PatientRow]}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sessions/{id}/patients [get]
func Patients(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := workspaces.Current(c)
		items := ws.Patients.Items()

		rows := make([]dto.PatientRow, 0, len(items))
		for _, p := range items {
			rows = append(rows, NewPatientRow(p))
		}

		view := dto.DirectoryView[dto.PatientRow]{
			Rows:    rows,
			Query:   ws.PatientQuery(),
			HasMore: ws.Patients.HasMore(),
			Loading: ws.Patients.Loading(),
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, view, "200 OK"))
	}
}

// NextPatients pulls the next page of patients matching q
// @Summary      Load more patients
// @Description  A different query than the one loaded starts over
// @Tags         directory
// @Produce      json
// @Param        id   path      string  true   "Session id"
// @Param        q    query     string  false  "Free-text search"
// @Success      200  {object}  dto.SuccessResponse{data=dto.FeedStatus}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /sessions/{id}/patients/next [post]
func NextPatients(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.FetchTimeout())
		defer cancel()

		ws := workspaces.Current(c)
		added, err := ws.PatientsNext(ctx, strings.TrimSpace(c.Query("q")))
		st, err := sessions.Status(ws.Patients, added, err)
		workspaces.RespondFeed(c, st, err)
	}
}

// Providers lists the providers loaded so far in the session
// @Summary      Provider directory
// @Tags         directory
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  dto.SuccessResponse{data=dto.DirectoryView[dto.ProviderRow]}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sessions/{id}/providers [get]
func Providers(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := workspaces.Current(c)
		items := ws.Providers.Items()

		rows := make([]dto.ProviderRow, 0, len(items))
		for _, p := range items {
			rows = append(rows, NewProviderRow(p))
		}

		view := dto.DirectoryView[dto.ProviderRow]{
			Rows:    rows,
			Query:   ws.ProviderQuery(),
			HasMore: ws.Providers.HasMore(),
			Loading: ws.Providers.Loading(),
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, view, "200 OK"))
	}
}

// NextProviders pulls the next page of providers matching q
// @Summary      Load more providers
// @Tags         directory
// @Produce      json
// @Param        id   path      string  true   "Session id"
// @Param        q    query     string  false  "Free-text search"
// @Success      200  {object}  dto.SuccessResponse{data=dto.FeedStatus}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /sessions/{id}/providers/next [post]
func NextProviders(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.FetchTimeout())
		defer cancel()

		ws := workspaces.Current(c)
		added, err := ws.ProvidersNext(ctx, strings.TrimSpace(c.Query("q")))
		st, err := sessions.Status(ws.Providers, added, err)
		workspaces.RespondFeed(c, st, err)
	}
}
