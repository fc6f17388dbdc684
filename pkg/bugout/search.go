package bugout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// DefaultSearchLimit applies when SearchOptions.Limit is zero.
const DefaultSearchLimit = 10

// SearchResult is one hit of a journal search. Timestamps come back in
// the index's own string format and are not parsed.
type SearchResult struct {
	EntryURL   string   `json:"entry_url"`
	ContentURL string   `json:"content_url"`
	Title      string   `json:"title"`
	Content    string   `json:"content,omitempty"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	Score      float64  `json:"score"`
}

// SearchResults is one page of hits plus pagination metadata.
type SearchResults struct {
	TotalResults int            `json:"total_results"`
	Offset       int            `json:"offset"`
	NextOffset   *int           `json:"next_offset"`
	MaxScore     float64        `json:"max_score"`
	Results      []SearchResult `json:"results"`
}

// SearchOptions tune a search call. The zero value means: no filters,
// DefaultSearchLimit hits from offset 0, full entry content included,
// newest first.
type SearchOptions struct {
	// Filters are passed to the server verbatim, e.g. "tag:job".
	Filters []string

	// Limit caps the number of hits per page.
	Limit int

	// Offset is the pagination cursor.
	Offset int

	// OmitContent drops entry bodies from the hits, which makes large
	// result pages much cheaper.
	OmitContent bool

	// Order sorts hits by creation time. Default: descending.
	Order SearchOrder
}

// Search runs a free-text query over a journal. The query string is
// forwarded verbatim.
func (c *JournalClient) Search(ctx context.Context, token string, journalID uuid.UUID, query string, opts SearchOptions) (SearchResults, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
	}); err != nil {
		return SearchResults{}, err
	}

	limit := opts.Limit
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	order := opts.Order
	if order == "" {
		order = SearchOrderDescending
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(opts.Offset))
	params.Set("content", strconv.FormatBool(!opts.OmitContent))
	params.Set("order", string(order))
	for _, filter := range opts.Filters {
		params.Add("filters", filter)
	}

	var results SearchResults
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s/search", journalID),
		Token:  token,
		Query:  params,
	}, &results)
	if err != nil {
		return SearchResults{}, fmt.Errorf("failed to search journal: %w", err)
	}
	return results, nil
}
