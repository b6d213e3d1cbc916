package workspaces

import (
	"context"
	"errors"
	"net/http"

	"calldeskrest/internal/config"
	"calldeskrest/internal/middleware"
	"calldeskrest/internal/models/dto"
	"calldeskrest/internal/service/sessions"

	"github.com/gin-gonic/gin"
)

const workspaceKey = "workspace"

// Create starts a dashboard session and loads the first page of each feed
// @Summary      Start a dashboard session
// @Description  Creates a workspace holding the ticket, patient and provider feeds and warms them up
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  dto.SuccessResponse{data=dto.SessionCreated}
// @Router       /sessions [post]
func Create(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.FetchTimeout())
		defer cancel()

		ws := cfg.Sessions.Create(ctx)
		middleware.AddLogFields(c, map[string]interface{}{
			"session_id": ws.ID,
			"agent_id":   middleware.AgentID(c),
		})

		created := dto.SessionCreated{
			SessionID: ws.ID,
			Tickets:   snapshot(ws.Tickets.Len(), ws.Tickets.HasMore()),
			Patients:  snapshot(ws.Patients.Len(), ws.Patients.HasMore()),
			Providers: snapshot(ws.Providers.Len(), ws.Providers.HasMore()),
		}
		c.JSON(http.StatusCreated, dto.NewSuccessResponse(c, created, "201 Created"))
	}
}

// Dispose ends a dashboard session
// @Summary      End a dashboard session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sessions/{id} [delete]
func Dispose(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cfg.Sessions.Dispose(c.Param("id")); err != nil {
			notFound(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, nil, "200 OK"))
	}
}

// Load resolves the :id path parameter to a workspace for the handlers below it
func Load(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := cfg.Sessions.Get(c.Param("id"))
		if err != nil {
			notFound(c, err)
			c.Abort()
			return
		}
		middleware.AddLogFields(c, map[string]interface{}{"session_id": ws.ID})
		c.Set(workspaceKey, ws)
		c.Next()
	}
}

// Current returns the workspace stored by Load
func Current(c *gin.Context) *sessions.Workspace {
	if v, ok := c.Get(workspaceKey); ok {
		if ws, ok := v.(*sessions.Workspace); ok {
			return ws
		}
	}
	return nil
}

// RespondFeed writes the outcome of a next-page pull. Fetch failures map to
// 502; rows loaded earlier stay available to the view endpoints.
func RespondFeed(c *gin.Context, st dto.FeedStatus, err error) {
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(c, http.StatusBadGateway, err.Error(), "Error while fetching the next page", st))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, st, "200 OK"))
}

func notFound(c *gin.Context, err error) {
	if errors.Is(err, sessions.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(c, http.StatusNotFound, err.Error(), "Session not found", nil))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, err.Error(), "Error while loading the session", nil))
}

func snapshot(total int, hasMore bool) dto.FeedStatus {
	return dto.FeedStatus{Added: total, Total: total, HasMore: hasMore}
}
