package bugout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

func TestJournalClient_Create_DefaultType(t *testing.T) {
	journalID := uuid.New()
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/journals", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "deploy log", body["name"])
		assert.Equal(t, "DEFAULT", body["journal_type"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": %q, "bugout_user_id": %q, "name": "deploy log"}`, journalID, uuid.New())
	}))
	defer mockServer.Close()

	client := newTestClient(t, "", mockServer.URL)

	journal, err := client.CreateJournal(context.Background(), "some-token", "deploy log", "")
	require.NoError(t, err)
	assert.Equal(t, journalID, journal.ID)
	assert.Equal(t, "deploy log", journal.Name)
}

func TestJournalClient_List(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/journals", r.URL.Path)
		assert.Equal(t, "Bearer some-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"journals": [{"id": %q, "name": "a"}, {"id": %q, "name": "b"}]}`,
			uuid.New(), uuid.New())
	}))
	defer mockServer.Close()

	client := newTestClient(t, "", mockServer.URL)

	journals, err := client.ListJournals(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Len(t, journals.Journals, 2)
}

func TestJournalClient_CheckPublic(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantPublic bool
		wantErr    bool
	}{
		{name: "readable without token", status: http.StatusOK, wantPublic: true},
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "forbidden", status: http.StatusForbidden},
		{name: "unknown journal", status: http.StatusNotFound},
		{name: "server failure", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journalID := uuid.New()
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, fmt.Sprintf("/journals/%s", journalID), r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{}`))
			}))
			defer mockServer.Close()

			client := newTestClient(t, "", mockServer.URL)

			public, err := client.CheckJournalPublic(context.Background(), journalID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPublic, public)
		})
	}
}

func TestJournalClient_CheckPublic_NilID(t *testing.T) {
	client := newTestClient(t, "", "")

	_, err := client.CheckJournalPublic(context.Background(), uuid.Nil)

	var validationErr *rest.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestJournalClient_Scopes(t *testing.T) {
	journalID := uuid.New()
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, fmt.Sprintf("/journals/%s/scopes", journalID), r.URL.Path)
		case http.MethodPost:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "user", body["holder_type"])
			assert.Equal(t, []any{"journals.read"}, body["permission_list"])
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"scopes": [
			{"journal_id": %q, "holder_type": "user", "holder_id": "some-holder", "permission": "journals.read"}
		]}`, journalID)
	}))
	defer mockServer.Close()

	client := newTestClient(t, "", mockServer.URL)

	scopes, err := client.GetJournalScopes(context.Background(), "some-token", journalID)
	require.NoError(t, err)
	require.Len(t, scopes.Scopes, 1)
	assert.Equal(t, "journals.read", scopes.Scopes[0].Permission)

	updated, err := client.UpdateJournalScopes(context.Background(), "some-token", journalID,
		HolderTypeUser, "some-holder", []string{"journals.read"})
	require.NoError(t, err)
	assert.Len(t, updated.Scopes, 1)
}

func TestJournalClient_Permissions(t *testing.T) {
	journalID := uuid.New()
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fmt.Sprintf("/journals/%s/permissions", journalID), r.URL.Path)
		assert.Equal(t, []string{"holder-a", "holder-b"}, r.URL.Query()["holder_ids"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"journal_id": %q, "permissions": []}`, journalID)
	}))
	defer mockServer.Close()

	client := newTestClient(t, "", mockServer.URL)

	permissions, err := client.GetJournalPermissions(context.Background(), "some-token", journalID,
		[]string{"holder-a", "holder-b"})
	require.NoError(t, err)
	assert.Equal(t, journalID, permissions.JournalID)
}
