package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kpango/glg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	recorder := httptest.NewRecorder()
	healthHandler(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Up", recorder.Body.String())
}

func TestConfigureLoggingWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisors.log")

	ConfigureLogging("warn", path)
	defer CloseLogger()

	glg.Info("hidden message")
	glg.Warn("visible message")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible message")
	assert.NotContains(t, string(data), "hidden message")
}
