package bugout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

func TestUserClient_Create(t *testing.T) {
	userID := uuid.New()
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/user", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "hunter2", body["password"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"user_id": %q,
			"username": "alice",
			"email": "alice@example.com",
			"normalized_email": "alice@example.com",
			"verified": false,
			"autogenerated": false,
			"created_at": "2023-06-01T12:00:00Z",
			"updated_at": "2023-06-01T12:00:00Z"
		}`, userID)
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, "")

	user, err := client.CreateUser(context.Background(), CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.Verified)
	assert.Equal(t, time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC), user.CreatedAt)
}

func TestUserClient_Get_EmptyToken(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, "")

	_, err := client.GetUser(context.Background(), "")

	var validationErr *rest.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, validationErr.StatusCode)
	assert.Zero(t, requests, "local validation must not reach the server")
}

func TestUserClient_Get_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr func(t *testing.T, err error)
	}{
		{
			name:   "401 invalid token",
			status: http.StatusUnauthorized,
			wantErr: func(t *testing.T, err error) {
				var authErr *rest.AuthError
				require.ErrorAs(t, err, &authErr)
			},
		},
		{
			name:   "404 unknown user",
			status: http.StatusNotFound,
			wantErr: func(t *testing.T, err error) {
				var notFound *rest.NotFoundError
				require.ErrorAs(t, err, &notFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"detail": "no"}`))
			}))
			defer mockServer.Close()

			client := newTestClient(t, mockServer.URL, "")
			_, err := client.GetUser(context.Background(), "some-token")
			require.Error(t, err)
			tt.wantErr(t, err)
		})
	}
}

func TestUserClient_Get_MissingID(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"username": "alice"}`))
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, "")
	_, err := client.GetUser(context.Background(), "some-token")

	var remoteErr *rest.RemoteError
	require.ErrorAs(t, err, &remoteErr)
}

func TestUserClient_Find(t *testing.T) {
	userID := uuid.New()
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/find", r.URL.Path)
		assert.Equal(t, "bob", r.URL.Query().Get("username"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"user_id": %q, "username": "bob"}`, userID)
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, "")

	user, err := client.FindUser(context.Background(), "some-token", "bob")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestUserClient_RestorePassword(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/password/restore", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reset_password": "Please check your email"}`))
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, "")

	reply, err := client.RestorePassword(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Please check your email", reply["reset_password"])
}

func TestUserClient_RevokeToken(t *testing.T) {
	tokenID := uuid.New()
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "Bearer some-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, "%q", tokenID)
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, "")

	revoked, err := client.RevokeToken(context.Background(), "some-token", "")
	require.NoError(t, err)
	assert.Equal(t, tokenID, revoked)
}

func TestUserClient_UpdateToken_NothingToUpdate(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, "")

	_, err := client.UpdateToken(context.Background(), "some-token", nil, nil)

	var validationErr *rest.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, requests)
}

func TestUserClient_Tokens_QueryFilters(t *testing.T) {
	active := true
	restricted := false
	tokenType := TokenTypeBugout

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("active"))
		assert.Equal(t, "0", r.URL.Query().Get("restricted"))
		assert.Equal(t, "bugout", r.URL.Query().Get("token_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user_id": "` + uuid.NewString() + `", "username": "alice", "token": []}`))
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL, "")

	tokens, err := client.UserTokens(context.Background(), "some-token", TokenListOptions{
		Active:     &active,
		Restricted: &restricted,
		TokenType:  &tokenType,
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Tokens)
}
