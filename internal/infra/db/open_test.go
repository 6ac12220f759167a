package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestGetConnectionConfigFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected ConnectionConfig
	}{
		{
			name:     "defaults",
			env:      map[string]string{},
			expected: DefaultConnectionConfig(),
		},
		{
			name: "all custom values",
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":     "50",
				"DB_MAX_IDLE_CONNS":     "20",
				"DB_CONN_MAX_LIFETIME":  "2h",
				"DB_CONN_MAX_IDLE_TIME": "45m",
			},
			expected: ConnectionConfig{
				MaxOpenConns:    50,
				MaxIdleConns:    20,
				ConnMaxLifetime: 2 * time.Hour,
				ConnMaxIdleTime: 45 * time.Minute,
			},
		},
		{
			name: "invalid values fall back to defaults",
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":     "invalid",
				"DB_MAX_IDLE_CONNS":     "-5",
				"DB_CONN_MAX_LIFETIME":  "0s",
				"DB_CONN_MAX_IDLE_TIME": "soon",
			},
			expected: DefaultConnectionConfig(),
		},
		{
			name: "partial override",
			env:  map[string]string{"DB_MAX_OPEN_CONNS": "5"},
			expected: ConnectionConfig{
				MaxOpenConns:    5,
				MaxIdleConns:    10,
				ConnMaxLifetime: 1 * time.Hour,
				ConnMaxIdleTime: 30 * time.Minute,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME"} {
				t.Setenv(key, tt.env[key])
			}

			assert.Equal(t, tt.expected, getConnectionConfigFromEnv())
		})
	}
}

func TestOpenPostgres_EmptyDSN(t *testing.T) {
	db, err := OpenPostgres(t.Context(), "")
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "DATABASE_URL not set")
}

func TestOpenPostgres_Live(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := OpenPostgres(t.Context(), dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, DefaultConnectionConfig().MaxOpenConns, db.Stats().MaxOpenConnections)
}

func TestOpenSQLite_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blog.db")

	db, err := OpenSQLite(t.Context(), path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite(t.Context(), "")
	assert.Error(t, err)
}

func TestConnectMongo_EmptyURI(t *testing.T) {
	client, err := ConnectMongo(t.Context(), "")
	assert.Nil(t, client)
	assert.ErrorContains(t, err, "MONGODB_URI not set")
}
