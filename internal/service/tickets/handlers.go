package tickets

import (
	"context"
	"net/http"

	"calldeskrest/internal/config"
	"calldeskrest/internal/models/dto"
	"calldeskrest/internal/service/sessions"
	"calldeskrest/internal/service/workspaces"
	"calldeskrest/internal/utils"
	"calldeskrest/pkg/format"

	"github.com/gin-gonic/gin"
)

const defaultRowsPerPage = 25

// ViewParams are the query parameters of the ticket table
type ViewParams struct {
	Status      string   `form:"status"`
	Agents      []string `form:"agents"`
	Callers     []string `form:"callers"`
	Departments []string `form:"departments"`
	Date        string   `form:"date"`
	Order       string   `form:"order" binding:"omitempty,oneof=asc desc"`
	Page        int      `form:"page" binding:"min=0"`
	RowsPerPage int      `form:"rows_per_page" binding:"min=0,max=500"`
}

// ScopeParams select which tickets are fetched upstream
type ScopeParams struct {
	Status string `form:"status"`
	Date   string `form:"date"`
}

// GetView returns one page of the accumulated tickets with status counts
// @Summary      Ticket table
// @Description  Filters, sorts and paginates the tickets loaded so far in the session
// @Tags         tickets
// @Produce      json
// @Param        id             path      string  true   "Session id"
// @Param        status         query     string  false  "Status tab (Total for all)"
// @Param        agents         query     string  false  "Comma-separated agents"
// @Param        callers        query     string  false  "Comma-separated caller ids"
// @Param        departments    query     string  false  "Comma-separated departments"
// @Param        order          query     string  false  "asc or desc" default(desc)
// @Param        page           query     int     false  "Zero-based page" default(0)
// @Param        rows_per_page  query     int     false  "Rows per page" default(25) maximum(500)
// @Success      200  {object}  dto.SuccessResponse{data=dto.TicketView}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sessions/{id}/tickets [get]
func GetView(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ViewParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, err.Error(), "Error while reading ticket filters", nil))
			return
		}
		if params.RowsPerPage == 0 {
			params.RowsPerPage = defaultRowsPerPage
		}

		criteria := dto.Criteria{
			Status:      utils.CanonicalStatus(params.Status),
			Agents:      utils.SplitList(params.Agents),
			Callers:     utils.SplitList(params.Callers),
			Departments: utils.SplitList(params.Departments),
		}
		if params.Date != "" {
			criteria.Date = &params.Date
		}

		ws := workspaces.Current(c)
		view := BuildView(ws.Tickets.Items(), criteria, params.Order, params.Page, params.RowsPerPage)
		view.HasMore = ws.Tickets.HasMore()
		view.Loading = ws.Tickets.Loading()

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, view, "200 OK"))
	}
}

// NextPage pulls the next upstream page of tickets for the given scope
// @Summary      Load more tickets
// @Description  Fetches the next page for the status and date scope. A different scope than the one loaded starts over.
// @Tags         tickets
// @Produce      json
// @Param        id      path      string  true   "Session id"
// @Param        status  query     string  false  "Status sent upstream"
// @Param        date    query     string  false  "Creation day sent upstream"
// @Success      200  {object}  dto.SuccessResponse{data=dto.FeedStatus}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /sessions/{id}/tickets/next [post]
func NextPage(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ScopeParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, err.Error(), "Error while reading ticket scope", nil))
			return
		}

		scope := dto.TicketScope{Status: utils.CanonicalStatus(params.Status)}
		if scope.Status == dto.StatusTotal {
			scope.Status = ""
		}
		if params.Date != "" {
			scope.Date = format.DateKey(params.Date)
			if scope.Date == "" {
				c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "invalid date "+params.Date, "Error while reading ticket scope", nil))
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.FetchTimeout())
		defer cancel()

		ws := workspaces.Current(c)
		added, err := ws.TicketsNext(ctx, scope)
		st, err := sessions.Status(ws.Tickets, added, err)
		workspaces.RespondFeed(c, st, err)
	}
}
