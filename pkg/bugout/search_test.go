package bugout

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

func TestJournalClient_Search(t *testing.T) {
	journalID := uuid.New()
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fmt.Sprintf("/journals/%s/search", journalID), r.URL.Path)
		assert.Equal(t, "deployment failure", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		assert.Equal(t, "true", r.URL.Query().Get("content"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total_results": 10,
			"offset": 0,
			"next_offset": 3,
			"max_score": 2.5,
			"results": [
				{"entry_url": "https://spire.example.com/journals/x/entries/1", "title": "first", "tags": ["prod"], "score": 2.5},
				{"entry_url": "https://spire.example.com/journals/x/entries/2", "title": "second", "tags": [], "score": 1.1},
				{"entry_url": "https://spire.example.com/journals/x/entries/3", "title": "third", "tags": [], "score": 0.4}
			]
		}`))
	}))
	defer mockServer.Close()

	client := newTestClient(t, "", mockServer.URL)

	results, err := client.Search(context.Background(), "some-token", journalID,
		"deployment failure", SearchOptions{})
	require.NoError(t, err)

	// the page size and the total hit count are independent
	assert.Equal(t, 10, results.TotalResults)
	require.Len(t, results.Results, 3)
	assert.Equal(t, "first", results.Results[0].Title)
	assert.Equal(t, 2.5, results.Results[0].Score)
	require.NotNil(t, results.NextOffset)
	assert.Equal(t, 3, *results.NextOffset)
}

func TestJournalClient_Search_Options(t *testing.T) {
	journalID := uuid.New()
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "50", r.URL.Query().Get("offset"))
		assert.Equal(t, "false", r.URL.Query().Get("content"))
		assert.Equal(t, "asc", r.URL.Query().Get("order"))
		assert.Equal(t, []string{"tag:prod", "context_type:deploy"}, r.URL.Query()["filters"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_results": 0, "offset": 50, "max_score": 0, "results": []}`))
	}))
	defer mockServer.Close()

	client := newTestClient(t, "", mockServer.URL)

	results, err := client.Search(context.Background(), "some-token", journalID, "", SearchOptions{
		Filters:     []string{"tag:prod", "context_type:deploy"},
		Limit:       25,
		Offset:      50,
		OmitContent: true,
		Order:       SearchOrderAscending,
	})
	require.NoError(t, err)
	assert.Empty(t, results.Results)
	assert.Nil(t, results.NextOffset)
}

func TestJournalClient_Search_EmptyToken(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer mockServer.Close()

	client := newTestClient(t, "", mockServer.URL)

	_, err := client.Search(context.Background(), "", uuid.New(), "anything", SearchOptions{})

	var validationErr *rest.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, requests)
}
