package database

import (
	"testing"

	"signlearn_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "signs", SSLMode: "disable"}

	for driver, name := range map[string]string{"": "mysql", "mysql": "mysql", "postgres": "postgres"} {
		cfg.Driver = driver
		d, err := Dialector(cfg)
		require.NoError(t, err, driver)
		assert.Equal(t, name, d.Name())
	}

	cfg.Driver = "sqlite"
	_, err := Dialector(cfg)
	assert.Error(t, err)
}
