package elsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"

	"github.com/elastic/go-elasticsearch/v9/esapi"
)

type esResponse struct {
	Hits struct {
		Hits []esHit `json:"hits"`
	} `json:"hits"`
}

type esHit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
	Sort   []interface{}   `json:"sort"`
}

// Tickets returns a cursor-paginated source over the tickets in scope
func (es *Client) Tickets(scope dto.TicketScope) feed.Source[dto.Ticket] {
	return feed.SourceFunc[dto.Ticket](func(ctx context.Context, cursor *string) (feed.Page[dto.Ticket], error) {
		return es.SearchTicketsPage(ctx, scope, cursor)
	})
}

// SearchTicketsPage fetches the page that follows cursor using search_after
func (es *Client) SearchTicketsPage(ctx context.Context, scope dto.TicketScope, cursor *string) (feed.Page[dto.Ticket], error) {
	after, err := decodeCursor(cursor)
	if err != nil {
		return feed.Page[dto.Ticket]{}, err
	}

	size := es.config.PageSize
	queryJSON, err := json.Marshal(es.buildScopeQuery(scope, after, size))
	if err != nil {
		return feed.Page[dto.Ticket]{}, fmt.Errorf("encoding query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{es.config.IndexName},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, es.ES)
	if err != nil {
		return feed.Page[dto.Ticket]{}, fmt.Errorf("executing search: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return feed.Page[dto.Ticket]{}, fmt.Errorf("reading search response: %w", err)
	}
	if res.IsError() {
		return feed.Page[dto.Ticket]{}, fmt.Errorf("search failed: %s - %s", res.Status(), string(body))
	}

	var parsed esResponse
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		return feed.Page[dto.Ticket]{}, fmt.Errorf("decoding search response: %w", err)
	}

	hits := parsed.Hits.Hits
	more := len(hits) > size
	if more {
		hits = hits[:size]
	}

	tickets := make([]dto.Ticket, 0, len(hits))
	for _, hit := range hits {
		var ticket dto.Ticket
		if err := json.Unmarshal(hit.Source, &ticket); err != nil {
			return feed.Page[dto.Ticket]{}, fmt.Errorf("decoding ticket %s: %w", hit.ID, err)
		}
		if ticket.ID == "" {
			ticket.ID = dto.FlexString(hit.ID)
		}
		tickets = append(tickets, ticket)
	}

	page := feed.Page[dto.Ticket]{Items: tickets}
	if more && len(hits) > 0 {
		token, err := encodeCursor(hits[len(hits)-1].Sort)
		if err != nil {
			return feed.Page[dto.Ticket]{}, err
		}
		page.ContinuationToken = token
	}
	return page, nil
}
