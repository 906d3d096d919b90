package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubChecker struct{ err error }

func (s stubChecker) Health(context.Context) error { return s.err }

func healthEngine(db, redis HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(db, redis)
	engine := gin.New()
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
	engine.GET("/live", h.Live)
	return engine
}

func doHealth(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthWithNilCheckers(t *testing.T) {
	engine := healthEngine(nil, nil)

	assert.Equal(t, http.StatusOK, doHealth(engine, "/health").Code)
	assert.Equal(t, http.StatusOK, doHealth(engine, "/ready").Code)
	assert.Equal(t, http.StatusOK, doHealth(engine, "/live").Code)
}

func TestHealthReportsFailingDatabase(t *testing.T) {
	engine := healthEngine(stubChecker{err: errors.New("connection refused")}, nil)

	assert.Equal(t, http.StatusServiceUnavailable, doHealth(engine, "/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doHealth(engine, "/ready").Code)
	assert.Equal(t, http.StatusOK, doHealth(engine, "/live").Code)
}

func TestHealthReportsFailingRedis(t *testing.T) {
	engine := healthEngine(stubChecker{}, stubChecker{err: errors.New("redis down")})

	assert.Equal(t, http.StatusServiceUnavailable, doHealth(engine, "/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doHealth(engine, "/ready").Code)
}
