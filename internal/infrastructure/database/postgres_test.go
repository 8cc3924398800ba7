package database

import (
	"testing"

	"clinic-backoffice/config"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{Host: "db", Port: "5432", User: "clinic", Password: "secret", Name: "clinic"})

	assert.Equal(t, "host=db user=clinic password=secret dbname=clinic port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, logLevel("development"))
	assert.Equal(t, logger.Warn, logLevel("production"))
}
