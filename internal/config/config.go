package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"
	"calldeskrest/internal/repositories/dashapi"
	"calldeskrest/internal/repositories/elsearch"
	"calldeskrest/internal/repositories/mongo"
	"calldeskrest/internal/repositories/redis"
	"calldeskrest/internal/repositories/sqlserver"
	"calldeskrest/internal/service/sessions"
	"calldeskrest/pkg/logger"

	"github.com/google/uuid"
)

const connectTimeout = 10 * time.Second

// App holds the settings, the clients built from them and the session registry
type App struct {
	Settings  Settings
	Logger    logger.Logger
	Redis     *redis.RedisInternal
	ES        *elsearch.Client
	SqlServer *sqlserver.Internal
	Mongo     *mongo.MongoInternal
	DashAPI   *dashapi.Client
	Sessions  *sessions.Registry
	StartedAt time.Time

	fileLogger *logger.FileLogger
}

// NewConfig connects the backends the settings select and builds the registry
func NewConfig(s Settings) (*App, error) {
	cfg := &App{Settings: s, StartedAt: time.Now()}

	executionID := uuid.New().String()[0:5]
	cfg.fileLogger = logger.NewLogger(logger.Config{
		Service:       s.Service.Name,
		Version:       s.Service.Version,
		Environment:   s.Service.Environment,
		LogDir:        s.Log.Dir,
		FlushInterval: 5 * time.Second,
		BatchSize:     50,
		BufferSize:    1000,
		LogLevel:      logger.LogLevel(strings.ToUpper(s.Log.Level)),
		EnableCaller:  true,
		ExecutionID:   executionID,
	})
	cfg.Logger = cfg.fileLogger

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if s.Redis.Addr != "" {
		if err := cfg.newClientRedis(ctx); err != nil {
			return cfg, err
		}
	}
	if s.uses(BackendAPI) {
		if err := cfg.newClientDashAPI(); err != nil {
			return cfg, err
		}
	}
	if s.uses(BackendElasticsearch) {
		if err := cfg.newClientES(ctx); err != nil {
			return cfg, err
		}
	}
	if s.uses(BackendSQLServer) {
		if err := cfg.newClientSQLServer(ctx); err != nil {
			return cfg, err
		}
	}
	if s.uses(BackendMongo) {
		if err := cfg.newClientMongo(ctx); err != nil {
			return cfg, err
		}
	}

	sources, err := cfg.Sources()
	if err != nil {
		return cfg, err
	}
	cfg.Sessions = sessions.NewRegistry(sources, cfg.Logger)

	cfg.Logger.Info("Configuration loaded", map[string]interface{}{
		"tickets_backend":   s.Backends.Tickets,
		"patients_backend":  s.Backends.Patients,
		"providers_backend": s.Backends.Providers,
		"page_cache":        cfg.Redis != nil,
	})
	return cfg, nil
}

// Sources maps each entity to the source factory of its selected backend,
// wrapped in the Redis page cache when Redis is configured
func (cfg *App) Sources() (sessions.Sources, error) {
	var src sessions.Sources

	switch cfg.Settings.Backends.Tickets {
	case BackendAPI:
		if cfg.DashAPI == nil {
			return src, errors.New("tickets: dashboard api client not configured")
		}
		src.Tickets = cfg.DashAPI.Tickets
	case BackendElasticsearch:
		if cfg.ES == nil {
			return src, errors.New("tickets: elasticsearch client not configured")
		}
		src.Tickets = cfg.ES.Tickets
	default:
		return src, fmt.Errorf("tickets: unsupported backend %q", cfg.Settings.Backends.Tickets)
	}

	switch cfg.Settings.Backends.Patients {
	case BackendAPI:
		if cfg.DashAPI == nil {
			return src, errors.New("patients: dashboard api client not configured")
		}
		src.Patients = cfg.DashAPI.Patients
	case BackendSQLServer:
		if cfg.SqlServer == nil {
			return src, errors.New("patients: sqlserver client not configured")
		}
		src.Patients = cfg.SqlServer.Patients
	default:
		return src, fmt.Errorf("patients: unsupported backend %q", cfg.Settings.Backends.Patients)
	}

	switch cfg.Settings.Backends.Providers {
	case BackendAPI:
		if cfg.DashAPI == nil {
			return src, errors.New("providers: dashboard api client not configured")
		}
		src.Providers = cfg.DashAPI.Providers
	case BackendMongo:
		if cfg.Mongo == nil {
			return src, errors.New("providers: mongo client not configured")
		}
		src.Providers = cfg.Mongo.Providers().Providers
	default:
		return src, fmt.Errorf("providers: unsupported backend %q", cfg.Settings.Backends.Providers)
	}

	ttl := Duration(cfg.Settings.Redis.PageCacheTTL, 0)
	if cfg.Redis != nil && ttl > 0 {
		src = cfg.cached(src, ttl)
	}
	return src, nil
}

func (cfg *App) cached(src sessions.Sources, ttl time.Duration) sessions.Sources {
	tickets, patients, providers := src.Tickets, src.Patients, src.Providers
	return sessions.Sources{
		Tickets: func(scope dto.TicketScope) feed.Source[dto.Ticket] {
			ns := "tickets:" + scope.Status + ":" + scope.Date
			return redis.CachePages(cfg.Redis, ns, ttl, tickets(scope), cfg.Logger)
		},
		Patients: func(scope dto.SearchScope) feed.Source[dto.Patient] {
			return redis.CachePages(cfg.Redis, "patients:"+scope.Query, ttl, patients(scope), cfg.Logger)
		},
		Providers: func(scope dto.SearchScope) feed.Source[dto.Provider] {
			return redis.CachePages(cfg.Redis, "providers:"+scope.Query, ttl, providers(scope), cfg.Logger)
		},
	}
}

// CloseAll - a function that closes all connections
func (cfg *App) CloseAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cfg.Redis != nil {
		_ = cfg.Redis.Close()
	}
	if cfg.SqlServer != nil {
		_ = cfg.SqlServer.Close()
	}
	if cfg.Mongo != nil {
		_ = cfg.Mongo.Close(ctx)
	}
	if cfg.DashAPI != nil {
		cfg.DashAPI.Close()
	}
	if cfg.fileLogger != nil {
		_ = cfg.fileLogger.Close()
	}
}

func (cfg *App) newClientRedis(ctx context.Context) error {
	r, err := redis.NewRedisInternal(ctx, redis.Config{
		Addr:     cfg.Settings.Redis.Addr,
		Password: cfg.Settings.Redis.Password,
		DB:       cfg.Settings.Redis.DB,
	}, "localhost:6379")
	if err != nil {
		return errors.New("creating redis client: " + err.Error())
	}
	cfg.Redis = r
	return nil
}

func (cfg *App) newClientDashAPI() error {
	s := cfg.Settings.DashAPI
	c, err := dashapi.NewClient(dashapi.Config{
		BaseURL:  s.BaseURL,
		Token:    s.Token,
		Timeout:  Duration(s.Timeout, 30*time.Second),
		PageSize: s.PageSize,
	})
	if err != nil {
		return errors.New("creating dashboard api client: " + err.Error())
	}
	cfg.DashAPI = c
	return nil
}

func (cfg *App) newClientES(ctx context.Context) error {
	s := cfg.Settings.Elasticsearch
	es, err := elsearch.NewClient(ctx, &elsearch.Config{
		Addresses:          s.Addresses,
		Username:           s.Username,
		Password:           s.Password,
		MaxRetries:         3,
		RetryBackoff:       100 * time.Millisecond,
		Timeout:            5 * time.Second,
		InsecureSkipVerify: s.InsecureSkipVerify,
		IndexName:          s.IndexName,
		PageSize:           s.PageSize,
	})
	if err != nil {
		return errors.New("creating elastic client: " + err.Error())
	}
	if s.EnsureIndex {
		if err := es.EnsureIndex(ctx); err != nil {
			return errors.New("preparing ticket index: " + err.Error())
		}
	}
	cfg.ES = es
	return nil
}

func (cfg *App) newClientSQLServer(ctx context.Context) error {
	s := cfg.Settings.SQLServer
	db, err := sqlserver.NewSQLServerInternal(ctx, sqlserver.Config{
		Host:     s.Host,
		Port:     s.Port,
		Username: s.Username,
		Password: s.Password,
		Database: s.Database,
		PageSize: s.PageSize,
	})
	if err != nil {
		return errors.New("creating sqlserver client: " + err.Error())
	}
	cfg.SqlServer = db
	return nil
}

func (cfg *App) newClientMongo(ctx context.Context) error {
	s := cfg.Settings.Mongo
	m, err := mongo.NewMongoInternal(ctx, mongo.Config{
		URI:        s.URI,
		Database:   s.Database,
		Collection: s.Collection,
		PageSize:   s.PageSize,
	})
	if err != nil {
		return errors.New("creating mongo client: " + err.Error())
	}
	cfg.Mongo = m
	return nil
}

// Checks pings every connected backend, keyed by backend name
func (cfg *App) Checks(ctx context.Context) map[string]string {
	checks := map[string]string{}
	record := func(name string, err error) {
		if err != nil {
			checks[name] = "unhealthy: " + err.Error()
			return
		}
		checks[name] = "healthy"
	}

	if cfg.Redis != nil {
		record("redis", cfg.Redis.Ping(ctx))
	}
	if cfg.ES != nil {
		record("elasticsearch", cfg.ES.Ping(ctx))
	}
	if cfg.SqlServer != nil {
		record("sqlserver", cfg.SqlServer.Ping(ctx))
	}
	if cfg.Mongo != nil {
		record("mongo", cfg.Mongo.Ping(ctx))
	}
	if cfg.DashAPI != nil {
		checks["dash_api"] = "configured"
	}
	return checks
}

// FetchTimeout bounds each upstream page fetch triggered by a request
func (cfg *App) FetchTimeout() time.Duration {
	return Duration(cfg.Settings.Server.FetchTimeout, 30*time.Second)
}
