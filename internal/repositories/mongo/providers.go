package mongo

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type providerDocument struct {
	ID        interface{} `bson:"_id"`
	Name      string      `bson:"name"`
	Specialty string      `bson:"specialty"`
	Phone     string      `bson:"phone"`
	Email     string      `bson:"email"`
}

func (d providerDocument) toDTO() dto.Provider {
	return dto.Provider{
		ID:        dto.FlexString(idString(d.ID)),
		Name:      d.Name,
		Specialty: d.Specialty,
		Phone:     d.Phone,
		Email:     d.Email,
	}
}

func idString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// ProviderStore searches the provider collection
type ProviderStore struct {
	coll     *mongo.Collection
	pageSize int
}

// NewProviderStore pages over coll in pages of pageSize documents
func NewProviderStore(coll *mongo.Collection, pageSize int) *ProviderStore {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &ProviderStore{coll: coll, pageSize: pageSize}
}

// Providers returns a page-numbered provider source for scope.Query
func (s *ProviderStore) Providers(scope dto.SearchScope) feed.Source[dto.Provider] {
	return feed.SourceFunc[dto.Provider](func(ctx context.Context, cursor *string) (feed.Page[dto.Provider], error) {
		return s.SearchProvidersPage(ctx, scope.Query, cursor)
	})
}

// SearchProvidersPage fetches one page ordered by name. A full page is taken
// to mean another may follow.
func (s *ProviderStore) SearchProvidersPage(ctx context.Context, query string, cursor *string) (feed.Page[dto.Provider], error) {
	page := feed.PageNumber(cursor, 1)

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * s.pageSize)).
		SetLimit(int64(s.pageSize))

	cur, err := s.coll.Find(ctx, providerFilter(query), opts)
	if err != nil {
		return feed.Page[dto.Provider]{}, fmt.Errorf("failed to search providers: %w", err)
	}
	defer cur.Close(ctx)

	var docs []providerDocument
	if err := cur.All(ctx, &docs); err != nil {
		return feed.Page[dto.Provider]{}, fmt.Errorf("failed to decode providers: %w", err)
	}

	items := make([]dto.Provider, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDTO())
	}
	return feed.PageBySize(items, s.pageSize, page+1), nil
}

func providerFilter(query string) bson.M {
	query = strings.TrimSpace(query)
	if query == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"specialty": pattern},
			bson.M{"phone": pattern},
			bson.M{"email": pattern},
		},
	}
}
