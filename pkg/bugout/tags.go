package bugout

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// EntryTags is the tag set of one entry.
type EntryTags struct {
	JournalID uuid.UUID `json:"journal_id"`
	EntryID   uuid.UUID `json:"entry_id"`
	Tags      []string  `json:"tags"`
}

// TagUsage pairs a tag with how often it appears in a journal.
type TagUsage struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// MostUsedTags lists a journal's tags by frequency.
func (c *JournalClient) MostUsedTags(ctx context.Context, token string, journalID uuid.UUID) ([]TagUsage, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
	}); err != nil {
		return nil, err
	}

	var usage []TagUsage
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s/tags", journalID),
		Token:  token,
	}, &usage)
	if err != nil {
		return nil, fmt.Errorf("failed to get most used tags: %w", err)
	}
	return usage, nil
}

// CreateTags adds tags to an entry and returns the resulting tag list.
func (c *JournalClient) CreateTags(ctx context.Context, token string, journalID, entryID uuid.UUID, tags []string) ([]string, error) {
	return c.writeTags(ctx, http.MethodPost, token, journalID, entryID, tags)
}

// UpdateTags replaces the tags of an entry and returns the resulting
// tag list.
func (c *JournalClient) UpdateTags(ctx context.Context, token string, journalID, entryID uuid.UUID, tags []string) ([]string, error) {
	return c.writeTags(ctx, http.MethodPut, token, journalID, entryID, tags)
}

func (c *JournalClient) writeTags(ctx context.Context, method, token string, journalID, entryID uuid.UUID, tags []string) ([]string, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"entry_id":   validation.Validate(entryID, requiredUUID),
		"tags":       validation.Validate(tags, validation.Required),
	}); err != nil {
		return nil, err
	}

	var result []string
	err := c.caller.Do(ctx, rest.Request{
		Method: method,
		Path:   fmt.Sprintf("journals/%s/entries/%s/tags", journalID, entryID),
		Token:  token,
		Body:   map[string][]string{"tags": tags},
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to write tags: %w", err)
	}
	return result, nil
}

// Tags fetches the tag set of one entry.
func (c *JournalClient) Tags(ctx context.Context, token string, journalID, entryID uuid.UUID) (EntryTags, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"entry_id":   validation.Validate(entryID, requiredUUID),
	}); err != nil {
		return EntryTags{}, err
	}

	var tags EntryTags
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s/entries/%s/tags", journalID, entryID),
		Token:  token,
	}, &tags)
	if err != nil {
		return EntryTags{}, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes one tag from an entry.
func (c *JournalClient) DeleteTag(ctx context.Context, token string, journalID, entryID uuid.UUID, tag string) (EntryTags, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"entry_id":   validation.Validate(entryID, requiredUUID),
		"tag":        validation.Validate(tag, validation.Required),
	}); err != nil {
		return EntryTags{}, err
	}

	var tags EntryTags
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("journals/%s/entries/%s/tags", journalID, entryID),
		Token:  token,
		Body:   map[string]string{"tag": tag},
	}, &tags)
	if err != nil {
		return EntryTags{}, fmt.Errorf("failed to delete tag: %w", err)
	}
	return tags, nil
}
