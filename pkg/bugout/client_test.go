package bugout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, broodURL, spireURL string) *Client {
	t.Helper()
	cfg := Config{BroodAPIURL: broodURL, SpireAPIURL: spireURL}
	if cfg.BroodAPIURL == "" {
		cfg.BroodAPIURL = DefaultBroodURL
	}
	if cfg.SpireAPIURL == "" {
		cfg.SpireAPIURL = DefaultSpireURL
	}
	client, err := New(cfg)
	require.NoError(t, err)
	return client
}

func TestNew_Defaults(t *testing.T) {
	client, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBroodURL, client.BroodURL())
	assert.Equal(t, DefaultSpireURL, client.SpireURL())
}

func TestNew_EnvFallback(t *testing.T) {
	t.Setenv(EnvBroodURL, "https://brood.example.com")
	t.Setenv(EnvSpireURL, "https://spire.example.com/")

	client, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, "https://brood.example.com", client.BroodURL())
	assert.Equal(t, "https://spire.example.com", client.SpireURL())
}

func TestNew_ExplicitConfigWinsOverEnv(t *testing.T) {
	t.Setenv(EnvBroodURL, "https://brood.example.com")

	client, err := New(Config{BroodAPIURL: "https://auth.internal.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://auth.internal.example.com", client.BroodURL())
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(Config{BroodAPIURL: "not a url", SpireAPIURL: DefaultSpireURL})
	assert.Error(t, err)
}

func TestConfigFromEnv_Timeout(t *testing.T) {
	t.Setenv(EnvTimeoutSeconds, "7")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
}

func TestNew_TimeoutFromEnv(t *testing.T) {
	t.Setenv(EnvTimeoutSeconds, "7")

	client, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, client.brood.HTTPClient().Timeout)
	assert.Equal(t, 7*time.Second, client.spire.HTTPClient().Timeout)
}

func TestConfigFromEnv_TimeoutUnset(t *testing.T) {
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestConfigFromEnv_TimeoutNotAnInteger(t *testing.T) {
	t.Setenv(EnvTimeoutSeconds, "soon")

	_, err := ConfigFromEnv()
	assert.Error(t, err)
}

func TestConfig_Validate_ReportsAllProblems(t *testing.T) {
	cfg := Config{BroodAPIURL: "not a url", SpireAPIURL: "", Timeout: -time.Second}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brood")
	assert.Contains(t, err.Error(), "spire")
	assert.Contains(t, err.Error(), "timeout")
}

func TestClient_Ping(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ping", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Pong{Status: "ok"})
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, mockServer.URL)

	pong, err := client.BroodPing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", pong.Status)

	pong, err = client.SpirePing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", pong.Status)
}
