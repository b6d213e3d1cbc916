package sqlserver

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds the SQL Server connection settings
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	PageSize int
}

// Internal wraps the gorm connection to the patient directory
type Internal struct {
	db       *gorm.DB
	pageSize int
}

// DSN builds the sqlserver:// connection string, escaping credentials
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     c.Host + ":" + c.Port,
		RawQuery: url.Values{"database": []string{c.Database}}.Encode(),
	}
	return u.String()
}

// NewSQLServerInternal opens the connection and pings the server
func NewSQLServerInternal(ctx context.Context, cfg Config) (*Internal, error) {
	db, err := gorm.Open(sqlserver.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlserver: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging sqlserver: %w", err)
	}

	size := cfg.PageSize
	if size <= 0 {
		size = 50
	}
	return &Internal{db: db, pageSize: size}, nil
}

// Ping checks the connection
func (s *Internal) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool
func (s *Internal) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
