package bugout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// Entry is a spire journal entry. The journal it belongs to is
// referenced through JournalURL.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	JournalURL  string    `json:"journal_url"`
	ContentURL  string    `json:"content_url,omitempty"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ContextURL  string    `json:"context_url,omitempty"`
	ContextID   string    `json:"context_id,omitempty"`
	ContextType string    `json:"context_type,omitempty"`
}

// Entries is an entry listing.
type Entries struct {
	Entries []Entry `json:"entries"`
}

// EntryContent is the title/content pair of one entry, without the
// surrounding metadata.
type EntryContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// EntryRequest carries the fields of a new entry. The context triple is
// optional; spire deduplicates entries on (context_type, context_id).
// CreatedAt, when set, backdates the entry.
type EntryRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	ContextURL  string     `json:"context_url,omitempty"`
	ContextID   string     `json:"context_id,omitempty"`
	ContextType string     `json:"context_type,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CreateEntry appends a new entry to a journal.
func (c *JournalClient) CreateEntry(ctx context.Context, token string, journalID uuid.UUID, req EntryRequest) (Entry, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"title":      validation.Validate(req.Title, validation.Required),
	}); err != nil {
		return Entry{}, err
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	var entry Entry
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("journals/%s/entries", journalID),
		Token:  token,
		Body:   req,
	}, &entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, checkDecoded("entry", entry.ID)
}

// CreateEntries appends a pack of entries to a journal in one request.
func (c *JournalClient) CreateEntries(ctx context.Context, token string, journalID uuid.UUID, entries []EntryRequest) (Entries, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"entries":    validation.Validate(entries, validation.Required),
	}); err != nil {
		return Entries{}, err
	}
	for i := range entries {
		if entries[i].Tags == nil {
			entries[i].Tags = []string{}
		}
	}

	var created Entries
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("journals/%s/entries/pack", journalID),
		Token:  token,
		Body:   map[string][]EntryRequest{"entries": entries},
	}, &created)
	if err != nil {
		return Entries{}, fmt.Errorf("failed to create entries pack: %w", err)
	}
	return created, nil
}

// GetEntry fetches one entry.
func (c *JournalClient) GetEntry(ctx context.Context, token string, journalID, entryID uuid.UUID) (Entry, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"entry_id":   validation.Validate(entryID, requiredUUID),
	}); err != nil {
		return Entry{}, err
	}

	var entry Entry
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s/entries/%s", journalID, entryID),
		Token:  token,
	}, &entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, checkDecoded("entry", entry.ID)
}

// ListEntries lists the entries of a journal.
func (c *JournalClient) ListEntries(ctx context.Context, token string, journalID uuid.UUID) (Entries, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
	}); err != nil {
		return Entries{}, err
	}

	var entries Entries
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s/entries", journalID),
		Token:  token,
	}, &entries)
	if err != nil {
		return Entries{}, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// EntryContent fetches just the title and content of one entry.
func (c *JournalClient) EntryContent(ctx context.Context, token string, journalID, entryID uuid.UUID) (EntryContent, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"entry_id":   validation.Validate(entryID, requiredUUID),
	}); err != nil {
		return EntryContent{}, err
	}

	var content EntryContent
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s/entries/%s/content", journalID, entryID),
		Token:  token,
	}, &content)
	if err != nil {
		return EntryContent{}, fmt.Errorf("failed to get entry content: %w", err)
	}
	return content, nil
}

// UpdateEntryContent replaces the title and content of an entry. When
// tags is non-nil it is applied according to tagsAction (merge by
// default).
func (c *JournalClient) UpdateEntryContent(ctx context.Context, token string, journalID, entryID uuid.UUID, content EntryContent, tags []string, tagsAction TagsAction) (EntryContent, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"entry_id":   validation.Validate(entryID, requiredUUID),
		"title":      validation.Validate(content.Title, validation.Required),
	}); err != nil {
		return EntryContent{}, err
	}

	body := map[string]any{
		"title":   content.Title,
		"content": content.Content,
	}
	if tags != nil {
		body["tags"] = tags
	}

	query := url.Values{}
	if tagsAction != "" {
		query.Set("tags_action", string(tagsAction))
	}

	var updated EntryContent
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("journals/%s/entries/%s/content", journalID, entryID),
		Token:  token,
		Query:  query,
		Body:   body,
	}, &updated)
	if err != nil {
		return EntryContent{}, fmt.Errorf("failed to update entry content: %w", err)
	}
	return updated, nil
}

// DeleteEntry removes one entry.
func (c *JournalClient) DeleteEntry(ctx context.Context, token string, journalID, entryID uuid.UUID) (Entry, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"entry_id":   validation.Validate(entryID, requiredUUID),
	}); err != nil {
		return Entry{}, err
	}

	var entry Entry
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("journals/%s/entries/%s", journalID, entryID),
		Token:  token,
	}, &entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to delete entry: %w", err)
	}
	return entry, checkDecoded("entry", entry.ID)
}
