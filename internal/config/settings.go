package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted per entity
const (
	BackendAPI           = "api"
	BackendElasticsearch = "elasticsearch"
	BackendSQLServer     = "sqlserver"
	BackendMongo         = "mongo"
)

// Settings is the file-backed configuration of the service
type Settings struct {
	Service       ServiceSettings       `yaml:"service"`
	Server        ServerSettings        `yaml:"server"`
	Backends      BackendSettings       `yaml:"backends"`
	DashAPI       DashAPISettings       `yaml:"dash_api"`
	Elasticsearch ElasticsearchSettings `yaml:"elasticsearch"`
	Redis         RedisSettings         `yaml:"redis"`
	SQLServer     SQLServerSettings     `yaml:"sqlserver"`
	Mongo         MongoSettings         `yaml:"mongo"`
	Log           LogSettings           `yaml:"log"`
	Sessions      SessionSettings       `yaml:"sessions"`
}

type ServiceSettings struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

type ServerSettings struct {
	Port              string   `yaml:"port"`
	CertFile          string   `yaml:"cert_file"`
	KeyFile           string   `yaml:"key_file"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
	MaxRequestsGlobal int64    `yaml:"max_requests_global"`
	MaxRequestsPerIP  int      `yaml:"max_requests_per_ip"`
	RateWindow        string   `yaml:"rate_window"`
	FetchTimeout      string   `yaml:"fetch_timeout"`
	JWTSecret         string   `yaml:"jwt_secret"`
}

// BackendSettings picks where each entity is read from
type BackendSettings struct {
	Tickets   string `yaml:"tickets"`
	Patients  string `yaml:"patients"`
	Providers string `yaml:"providers"`
}

type DashAPISettings struct {
	BaseURL  string `yaml:"base_url"`
	Token    string `yaml:"token"`
	Timeout  string `yaml:"timeout"`
	PageSize int    `yaml:"page_size"`
}

type ElasticsearchSettings struct {
	Addresses          []string `yaml:"addresses"`
	Username           string   `yaml:"username"`
	Password           string   `yaml:"password"`
	IndexName          string   `yaml:"index_name"`
	PageSize           int      `yaml:"page_size"`
	InsecureSkipVerify bool     `yaml:"insecure_skip_verify"`
	EnsureIndex        bool     `yaml:"ensure_index"`
}

type RedisSettings struct {
	Addr         string `yaml:"addr"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db"`
	PageCacheTTL string `yaml:"page_cache_ttl"`
}

type SQLServerSettings struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	PageSize int    `yaml:"page_size"`
}

type MongoSettings struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	PageSize   int    `yaml:"page_size"`
}

type LogSettings struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

type SessionSettings struct {
	MaxIdle       string `yaml:"max_idle"`
	SweepInterval string `yaml:"sweep_interval"`
}

// DefaultSettings is what an empty or missing file yields
func DefaultSettings() Settings {
	return Settings{
		Service: ServiceSettings{
			Name:        "calldesk-api",
			Version:     "1.0.0",
			Environment: "development",
		},
		Server: ServerSettings{
			Port:              "8080",
			AllowedOrigins:    []string{"*"},
			MaxRequestsGlobal: 10,
			MaxRequestsPerIP:  120,
			RateWindow:        "60s",
			FetchTimeout:      "30s",
		},
		Backends: BackendSettings{
			Tickets:   BackendAPI,
			Patients:  BackendAPI,
			Providers: BackendAPI,
		},
		DashAPI: DashAPISettings{
			Timeout:  "30s",
			PageSize: 50,
		},
		Elasticsearch: ElasticsearchSettings{
			IndexName: "support_tickets",
			PageSize:  50,
		},
		Redis: RedisSettings{
			PageCacheTTL: "30s",
		},
		SQLServer: SQLServerSettings{
			Port:     "1433",
			PageSize: 50,
		},
		Mongo: MongoSettings{
			Database:   "calldesk",
			Collection: "providers",
			PageSize:   50,
		},
		Log: LogSettings{
			Dir:   "logs",
			Level: "INFO",
		},
		Sessions: SessionSettings{
			MaxIdle:       "30m",
			SweepInterval: "1m",
		},
	}
}

// LoadSettings reads path over the defaults, then applies environment
// overrides. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("parsing %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return s, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	s.applyEnv()
	return s, s.Validate()
}

func (s *Settings) applyEnv() {
	setString(&s.Server.Port, "PORT")
	setString(&s.Server.CertFile, "CERT_FILE")
	setString(&s.Server.KeyFile, "KEY_FILE")
	setString(&s.Server.JWTSecret, "JWT_SECRET")
	setInt64(&s.Server.MaxRequestsGlobal, "MAX_REQUEST_COUNT_GLOBAL")
	if v, ok := lookupInt("MAX_REQUEST_COUNT_BY_IP"); ok {
		s.Server.MaxRequestsPerIP = v
	}

	setString(&s.Backends.Tickets, "TICKETS_BACKEND")
	setString(&s.Backends.Patients, "PATIENTS_BACKEND")
	setString(&s.Backends.Providers, "PROVIDERS_BACKEND")

	setString(&s.DashAPI.BaseURL, "DASH_API_URL")
	setString(&s.DashAPI.Token, "DASH_API_TOKEN")

	if v := os.Getenv("ELASTICSEARCH_URL"); v != "" {
		s.Elasticsearch.Addresses = strings.Split(v, ",")
	}
	setString(&s.Elasticsearch.Username, "ELASTICSEARCH_USERNAME")
	setString(&s.Elasticsearch.Password, "ELASTICSEARCH_PASSWORD")

	setString(&s.Redis.Addr, "REDIS_ADDR")
	setString(&s.Redis.Password, "REDIS_PASSWORD")

	setString(&s.SQLServer.Host, "SQLSERVER_HOST")
	setString(&s.SQLServer.Port, "SQLSERVER_PORT")
	setString(&s.SQLServer.Username, "SQLSERVER_USERNAME")
	setString(&s.SQLServer.Password, "SQLSERVER_PASSWORD")
	setString(&s.SQLServer.Database, "SQLSERVER_DATABASE")

	setString(&s.Mongo.URI, "MONGO_URI")

	setString(&s.Log.Dir, "LOG_DIR")
	setString(&s.Log.Level, "LOG_LEVEL")
}

// Validate checks backend names and that each selected backend can be reached
func (s Settings) Validate() error {
	var errs []error

	check := func(entity, backend string, allowed ...string) {
		for _, a := range allowed {
			if backend == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("backends.%s: unsupported backend %q (want one of %s)", entity, backend, strings.Join(allowed, ", ")))
	}
	check("tickets", s.Backends.Tickets, BackendAPI, BackendElasticsearch)
	check("patients", s.Backends.Patients, BackendAPI, BackendSQLServer)
	check("providers", s.Backends.Providers, BackendAPI, BackendMongo)

	if s.uses(BackendAPI) && s.DashAPI.BaseURL == "" {
		errs = append(errs, errors.New("dash_api.base_url is required by the api backend"))
	}
	if s.uses(BackendElasticsearch) && len(s.Elasticsearch.Addresses) == 0 {
		errs = append(errs, errors.New("elasticsearch.addresses is required by the elasticsearch backend"))
	}
	if s.uses(BackendSQLServer) && s.SQLServer.Host == "" {
		errs = append(errs, errors.New("sqlserver.host is required by the sqlserver backend"))
	}
	if s.uses(BackendMongo) && s.Mongo.URI == "" {
		errs = append(errs, errors.New("mongo.uri is required by the mongo backend"))
	}

	return errors.Join(errs...)
}

func (s Settings) uses(backend string) bool {
	return s.Backends.Tickets == backend || s.Backends.Patients == backend || s.Backends.Providers == backend
}

// Duration parses a settings duration, falling back to def when it is blank
// or invalid
func Duration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, name string) {
	if v, ok := lookupInt(name); ok {
		*dst = int64(v)
	}
}

func lookupInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
