package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCaller(t *testing.T, serverURL string) *Caller {
	t.Helper()
	caller, err := NewCaller(Config{BaseURL: serverURL})
	require.NoError(t, err)
	return caller
}

func TestCaller_Do(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/journals/abc", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"name": "ops journal"})
	}))
	defer mockServer.Close()

	caller := newTestCaller(t, mockServer.URL)

	var result struct {
		Name string `json:"name"`
	}
	err := caller.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "journals/abc",
		Token:  "test-token",
	}, &result)

	require.NoError(t, err)
	assert.Equal(t, "ops journal", result.Name)
}

func TestCaller_Do_PostBodyAndQuery(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["title"])

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer mockServer.Close()

	caller := newTestCaller(t, mockServer.URL)

	query := url.Values{}
	query.Set("limit", "1")
	err := caller.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/entries",
		Token:  "test-token",
		Query:  query,
		Body:   map[string]string{"title": "hello"},
	}, nil)
	require.NoError(t, err)
}

func TestCaller_Do_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		wantErr    func(t *testing.T, err error)
	}{
		{
			name:   "404 not found",
			status: http.StatusNotFound,
			body:   `{"detail": "journal not found"}`,
			wantErr: func(t *testing.T, err error) {
				var notFound *NotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, "journal not found", notFound.Detail)
			},
		},
		{
			name:   "401 auth",
			status: http.StatusUnauthorized,
			body:   `{"detail": "invalid token"}`,
			wantErr: func(t *testing.T, err error) {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
			},
		},
		{
			name:   "403 auth",
			status: http.StatusForbidden,
			body:   `{"detail": "not allowed"}`,
			wantErr: func(t *testing.T, err error) {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, http.StatusForbidden, authErr.StatusCode)
			},
		},
		{
			name:   "422 validation with server detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail": "field required: name"}`,
			wantErr: func(t *testing.T, err error) {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, http.StatusUnprocessableEntity, validationErr.StatusCode)
				assert.Equal(t, "field required: name", validationErr.Detail)
			},
		},
		{
			name:   "500 remote",
			status: http.StatusInternalServerError,
			body:   `{"detail": "boom"}`,
			wantErr: func(t *testing.T, err error) {
				var remoteErr *RemoteError
				require.ErrorAs(t, err, &remoteErr)
				assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer mockServer.Close()

			caller := newTestCaller(t, mockServer.URL)
			err := caller.Do(context.Background(), Request{
				Method: http.MethodGet,
				Path:   "thing",
				Token:  "test-token",
			}, nil)
			require.Error(t, err)
			tt.wantErr(t, err)
		})
	}
}

func TestCaller_Do_NonJSONErrorBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer mockServer.Close()

	caller := newTestCaller(t, mockServer.URL)
	err := caller.Do(context.Background(), Request{Method: http.MethodGet, Path: "ping"}, nil)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "upstream down", remoteErr.Detail)
}

func TestCaller_Do_TransportFailure(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	mockServer.Close() // connection refused from here on

	caller := newTestCaller(t, mockServer.URL)
	err := caller.Do(context.Background(), Request{Method: http.MethodGet, Path: "ping"}, nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Error(t, errors.Unwrap(transportErr))
}

func TestCaller_Do_Timeout(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer mockServer.Close()

	caller, err := NewCaller(Config{
		BaseURL: mockServer.URL,
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	err = caller.Do(context.Background(), Request{Method: http.MethodGet, Path: "slow"}, nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestCaller_Do_MalformedResponse(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": not-json`))
	}))
	defer mockServer.Close()

	caller := newTestCaller(t, mockServer.URL)
	var out map[string]any
	err := caller.Do(context.Background(), Request{Method: http.MethodGet, Path: "thing"}, &out)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
}

func TestNewCaller_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "empty", baseURL: ""},
		{name: "bad scheme", baseURL: "ftp://example.com"},
		{name: "no host", baseURL: "https://"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCaller(Config{BaseURL: tt.baseURL})
			assert.Error(t, err)
		})
	}
}

func TestCaller_BaseURLNormalized(t *testing.T) {
	caller, err := NewCaller(Config{BaseURL: "https://spire.bugout.dev/"})
	require.NoError(t, err)
	assert.Equal(t, "https://spire.bugout.dev", caller.BaseURL())
}
