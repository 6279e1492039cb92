package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmo-observer/mmo_uploader/analyzers"
	"github.com/mmo-observer/mmo_uploader/inits"
	"github.com/mmo-observer/mmo_uploader/middleware"
	"github.com/mmo-observer/mmo_uploader/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopLogger struct{}

func (nopLogger) Log(context.Context, models.LogPayload) error { return nil }

func TestSetupRouter_Routes(t *testing.T) {
	r := setupRouter(&inits.Config{MaxUploadBytes: 1 << 20}, analyzers.NewStubAnalyzer(), nopLogger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/upload", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRouter_HostWhitelist(t *testing.T) {
	cfg := &inits.Config{MaxUploadBytes: 1 << 20, AllowedHosts: []string{"mmo.example.org"}}
	r := setupRouter(cfg, analyzers.NewStubAnalyzer(), nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "other.example.org"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestNewAnalyzer_SelectsImplementation(t *testing.T) {
	_, ok := newAnalyzer(&inits.Config{}).(*analyzers.StubAnalyzer)
	assert.True(t, ok)

	_, ok = newAnalyzer(&inits.Config{AnalyzerURL: "http://model.local/analyze", AnalyzerMaxSide: 512}).(*analyzers.RemoteAnalyzer)
	assert.True(t, ok)
}
