package dashapi

import (
	"context"
	"encoding/json"
	"fmt"

	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"
)

const (
	ticketsPath   = "/tickets/search"
	patientsPath  = "/patients/search"
	providersPath = "/providers/search"
)

type listMessage[T any] struct {
	Items             []T     `json:"items"`
	Value             []T     `json:"value"`
	ContinuationToken *string `json:"continuationToken"`
}

// decodePage turns an envelope into a feed page. An empty continuation
// token means the end of the collection.
func decodePage[T any](env Envelope) (feed.Page[T], error) {
	if !env.Success {
		return feed.Page[T]{}, &APIError{Message: env.Text()}
	}

	var msg listMessage[T]
	if err := json.Unmarshal(env.Message, &msg); err != nil {
		return feed.Page[T]{}, &APIError{Message: fmt.Sprintf("unexpected message: %v", err)}
	}

	items := msg.Items
	if items == nil {
		items = msg.Value
	}
	token := msg.ContinuationToken
	if token != nil && *token == "" {
		token = nil
	}
	return feed.Page[T]{Items: items, ContinuationToken: token}, nil
}

// Tickets returns a cursor-paginated ticket source restricted to scope
func (c *Client) Tickets(scope dto.TicketScope) feed.Source[dto.Ticket] {
	filter := map[string]string{}
	if scope.Status != "" && scope.Status != dto.StatusTotal {
		filter["status"] = scope.Status
	}
	if scope.Date != "" {
		filter["date"] = scope.Date
	}
	if len(filter) == 0 {
		filter = nil
	}

	return feed.SourceFunc[dto.Ticket](func(ctx context.Context, cursor *string) (feed.Page[dto.Ticket], error) {
		env := c.Search(ctx, ticketsPath, SearchRequest{
			Filter:            filter,
			Page:              1,
			Size:              c.pageSize,
			ContinuationToken: cursor,
		})
		return decodePage[dto.Ticket](env)
	})
}

// Patients returns a cursor-paginated patient source for scope.Query
func (c *Client) Patients(scope dto.SearchScope) feed.Source[dto.Patient] {
	return feed.SourceFunc[dto.Patient](func(ctx context.Context, cursor *string) (feed.Page[dto.Patient], error) {
		env := c.Search(ctx, patientsPath, SearchRequest{
			Query:             scope.Query,
			Page:              1,
			Size:              c.pageSize,
			ContinuationToken: cursor,
		})
		return decodePage[dto.Patient](env)
	})
}

// Providers returns a page-numbered provider source. The endpoint issues no
// continuation token, so a full page is taken to mean more may follow.
func (c *Client) Providers(scope dto.SearchScope) feed.Source[dto.Provider] {
	return feed.SourceFunc[dto.Provider](func(ctx context.Context, cursor *string) (feed.Page[dto.Provider], error) {
		page := feed.PageNumber(cursor, 1)
		env := c.Search(ctx, providersPath, SearchRequest{
			Query: scope.Query,
			Page:  page,
			Size:  c.pageSize,
		})
		p, err := decodePage[dto.Provider](env)
		if err != nil {
			return p, err
		}
		return feed.PageBySize(p.Items, c.pageSize, page+1), nil
	})
}
