package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettings_FileOverDefaults(t *testing.T) {
	path := writeFile(t, `
service:
  name: calldesk-test
backends:
  tickets: elasticsearch
  patients: sqlserver
  providers: mongo
elasticsearch:
  addresses: ["http://es:9200"]
  page_size: 25
sqlserver:
  host: db
mongo:
  uri: mongodb://mongo:27017
sessions:
  max_idle: 10m
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "calldesk-test", s.Service.Name)
	assert.Equal(t, "1.0.0", s.Service.Version, "unset keys keep their default")
	assert.Equal(t, BackendElasticsearch, s.Backends.Tickets)
	assert.Equal(t, []string{"http://es:9200"}, s.Elasticsearch.Addresses)
	assert.Equal(t, 25, s.Elasticsearch.PageSize)
	assert.Equal(t, "support_tickets", s.Elasticsearch.IndexName)
	assert.Equal(t, "1433", s.SQLServer.Port)
	assert.Equal(t, 10*time.Minute, Duration(s.Sessions.MaxIdle, time.Hour))
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	path := writeFile(t, "dash_api:\n  base_url: http://file\n")
	t.Setenv("DASH_API_URL", "http://env")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_REQUEST_COUNT_BY_IP", "7")
	t.Setenv("MAX_REQUEST_COUNT_GLOBAL", "not-a-number")
	t.Setenv("ELASTICSEARCH_URL", "http://a:9200,http://b:9200")

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env", s.DashAPI.BaseURL)
	assert.Equal(t, "9090", s.Server.Port)
	assert.Equal(t, 7, s.Server.MaxRequestsPerIP)
	assert.EqualValues(t, 10, s.Server.MaxRequestsGlobal, "invalid numbers are ignored")
	assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, s.Elasticsearch.Addresses)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	t.Setenv("DASH_API_URL", "http://api")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().Backends, s.Backends)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadSettings(writeFile(t, "backends: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := LoadSettings(writeFile(t, "dash_api:\n  base_url: http://api\nbackends:\n  tickets: postgres\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backends.tickets")
	})

	t.Run("selected backend without connection settings", func(t *testing.T) {
		_, err := LoadSettings(writeFile(t, "backends:\n  tickets: elasticsearch\n  patients: api\n  providers: api\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "elasticsearch.addresses")
		assert.Contains(t, err.Error(), "dash_api.base_url")
	})
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, Duration("5s", time.Minute))
	assert.Equal(t, time.Minute, Duration("", time.Minute))
	assert.Equal(t, time.Minute, Duration("soon", time.Minute))
	assert.Equal(t, time.Minute, Duration("-1s", time.Minute))
}
