package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iksnae/bizspark-chat/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	svc := testutil.NewFakeService(t)

	out, err := executeCommand(t, nil, "health", "--ephemeral", "--endpoint", svc.URL, "--details")
	require.NoError(t, err)
	assert.Contains(t, out, "Service is healthy")
	assert.Contains(t, out, "Found 3 item(s)")
	assert.Contains(t, out, "Endpoint: "+svc.URL)
	assert.Contains(t, out, "All checks passed")
}

func TestHealthCatalogFailure(t *testing.T) {
	svc := testutil.NewFakeService(t)
	svc.FailItems()

	out, err := executeCommand(t, nil, "health", "--ephemeral", "--endpoint", svc.URL)
	require.Error(t, err)
	assert.Contains(t, out, "Catalog could not be fetched")
}

func TestHealthServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, err := executeCommand(t, nil, "health", "--ephemeral", "--endpoint", url)
	require.Error(t, err)
	assert.Contains(t, out, "Service unreachable")
	assert.Contains(t, out, "Health check failed")
}
