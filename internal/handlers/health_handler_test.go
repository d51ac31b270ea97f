package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	env := newHandlerTestEnv(t)
	defer env.cleanup(t)

	handler := NewHealthCheckHandler(env.db.DB)

	c, rec := env.newJSONContext(t, http.MethodGet, "/health", nil)
	assert.NoError(t, handler.HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]string
	decodeBody(t, rec, &response)
	assert.Equal(t, "healthy", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	env := newHandlerTestEnv(t)

	sqlDB, err := env.db.DB.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Close())

	handler := NewHealthCheckHandler(env.db.DB)

	c, rec := env.newJSONContext(t, http.MethodGet, "/health", nil)
	assert.NoError(t, handler.HealthCheck(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
