package elsearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
)

// DefaultIndex holds the support tickets
const DefaultIndex = "support_tickets"

type Config struct {
	Addresses []string
	Username  string
	Password  string

	// Connection settings
	MaxRetries    int
	RetryBackoff  time.Duration
	Timeout       time.Duration
	EnableLogging bool

	// TLS settings
	InsecureSkipVerify bool

	IndexName string
	PageSize  int
}

type Client struct {
	ES     *elasticsearch.Client
	config *Config
}

// NewClient creates an Elasticsearch client and pings the cluster
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("at least one elasticsearch address is required")
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.IndexName == "" {
		cfg.IndexName = DefaultIndex
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}

	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,

		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
		RetryBackoff: func(i int) time.Duration {
			return cfg.RetryBackoff * time.Duration(i)
		},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: cfg.Timeout,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
			},
		},
		EnableMetrics:     cfg.EnableLogging,
		EnableDebugLogger: cfg.EnableLogging,
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	client := &Client{
		ES:     es,
		config: cfg,
	}

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}

	return client, nil
}

// Ping tests the connection to Elasticsearch
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.ES.Ping(c.ES.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping failed with status: %s", res.Status())
	}
	return nil
}

// IndexName is the ticket index searched by this client
func (c *Client) IndexName() string {
	return c.config.IndexName
}

// EnsureIndex creates the ticket index with its mapping when missing
func (c *Client) EnsureIndex(ctx context.Context) error {
	exists, err := c.indexExists(ctx, c.config.IndexName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	res, err := c.ES.Indices.Create(
		c.config.IndexName,
		c.ES.Indices.Create.WithContext(ctx),
		c.ES.Indices.Create.WithBody(strings.NewReader(ticketMapping)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", c.config.IndexName, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		// lost a race with another instance
		if bytes.Contains(body, []byte("resource_already_exists_exception")) {
			return nil
		}
		return fmt.Errorf("failed to create index %s: %s", c.config.IndexName, string(body))
	}
	return nil
}

func (c *Client) indexExists(ctx context.Context, name string) (bool, error) {
	res, err := c.ES.Indices.Exists([]string{name}, c.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to check index %s: %w", name, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("failed to check index %s: %s", name, res.Status())
	}
}

const ticketMapping = `{
  "mappings": {
    "properties": {
      "id":                  {"type": "keyword"},
      "status":              {"type": "keyword"},
      "creation_date":       {"type": "date"},
      "agent_assigned":      {"type": "keyword"},
      "caller_id":           {"type": "keyword"},
      "caller_name":         {"type": "text"},
      "assigned_department": {"type": "keyword"},
      "reason":              {"type": "text"},
      "patient_name":        {"type": "text"}
    }
  }
}`
