package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://tracker:pw@localhost:5432/tracker")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/tracker")

	cfg := Load()
	require.Equal(t, "postgres://tracker:pw@localhost:5432/tracker", cfg.DBUrl)
	require.Equal(t, "mongodb://localhost:27017/tracker", cfg.MongoUrl)
}
