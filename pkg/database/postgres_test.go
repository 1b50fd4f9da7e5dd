package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-admin-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "pw", Name: "campus", SSLMode: "require"})

	assert.Equal(t, "host=db port=5433 user=app password=pw dbname=campus sslmode=require application_name=campus-admin-api", dsn)
}
