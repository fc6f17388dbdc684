// Package jobs implements a job queue on top of a spire journal,
// inspired by the thorax integration.
//
// Jobs are journal entries with a dedicated context type, deduplicated
// by the server on (context_type, context_id). Completion and failure
// are recorded as tags, and a cursor entry marks how far consumers have
// read.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/bugout-dev/bugout-go/pkg/bugout"
	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// Queue conventions. Override them with the With* options when several
// queues share one journal.
const (
	DefaultContextType       = "job"
	DefaultSuccessTag        = "job:success"
	DefaultFailureTag        = "job:failure"
	DefaultCursorContextType = "job_cursor"
)

// DefaultPageSize caps RemainingJobs pages when no limit is given.
const DefaultPageSize = 10

// Queue reads and writes jobs in one journal on behalf of one token.
type Queue struct {
	client    *bugout.Client
	token     string
	journalID uuid.UUID

	contextType       string
	successTag        string
	failureTag        string
	cursorContextType string

	logger hclog.Logger
}

// Option adjusts a Queue at construction time.
type Option func(*Queue)

// WithContextType changes the context type that marks entries as jobs.
func WithContextType(contextType string) Option {
	return func(q *Queue) { q.contextType = contextType }
}

// WithSuccessTag changes the tag that marks a job as completed.
func WithSuccessTag(tag string) Option {
	return func(q *Queue) { q.successTag = tag }
}

// WithFailureTag changes the tag that marks a job as failed.
func WithFailureTag(tag string) Option {
	return func(q *Queue) { q.failureTag = tag }
}

// WithCursorContextType changes the context type of cursor entries.
func WithCursorContextType(contextType string) Option {
	return func(q *Queue) { q.cursorContextType = contextType }
}

// WithLogger attaches a logger for queue-level traces.
func WithLogger(logger hclog.Logger) Option {
	return func(q *Queue) { q.logger = logger }
}

// New builds a Queue over the given journal.
func New(client *bugout.Client, token string, journalID uuid.UUID, opts ...Option) (*Queue, error) {
	if client == nil {
		return nil, rest.NewValidationError(errors.New("client must not be nil"))
	}
	if token == "" {
		return nil, rest.NewValidationError(errors.New("token must not be empty"))
	}
	if journalID == uuid.Nil {
		return nil, rest.NewValidationError(errors.New("journal id must not be nil"))
	}

	queue := &Queue{
		client:            client,
		token:             token,
		journalID:         journalID,
		contextType:       DefaultContextType,
		successTag:        DefaultSuccessTag,
		failureTag:        DefaultFailureTag,
		cursorContextType: DefaultCursorContextType,
		logger:            hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(queue)
	}
	return queue, nil
}

// CreateJob enqueues a job. jobID deduplicates: creating the same jobID
// twice fails on the server with a validation error.
func (q *Queue) CreateJob(ctx context.Context, jobID, title, content string) (bugout.Entry, error) {
	if jobID == "" {
		return bugout.Entry{}, rest.NewValidationError(errors.New("job id must not be empty"))
	}

	entry, err := q.client.CreateEntry(ctx, q.token, q.journalID, bugout.EntryRequest{
		Title:       title,
		Content:     content,
		ContextID:   jobID,
		ContextType: q.contextType,
	})
	if err != nil {
		return bugout.Entry{}, fmt.Errorf("failed to create job: %w", err)
	}
	q.logger.Debug("job created", "job_id", jobID, "entry_id", entry.ID)
	return entry, nil
}

// UpdateCursor advances the queue cursor to position by appending a new
// cursor entry backdated to that time.
func (q *Queue) UpdateCursor(ctx context.Context, position time.Time) (bugout.Entry, error) {
	cursorTag := "cursor:" + q.cursorContextType
	entry, err := q.client.CreateEntry(ctx, q.token, q.journalID, bugout.EntryRequest{
		Title:       cursorTag,
		Tags:        []string{cursorTag},
		ContextType: q.cursorContextType,
		CreatedAt:   &position,
	})
	if err != nil {
		return bugout.Entry{}, fmt.Errorf("failed to update cursor: %w", err)
	}
	return entry, nil
}

// RemainingJobsOptions tune a RemainingJobs call. The zero value reads
// the first DefaultPageSize jobs past the most recent cursor.
type RemainingJobsOptions struct {
	// IgnoreCursor lists incomplete jobs from the beginning of time
	// instead of from the most recent cursor.
	IgnoreCursor bool

	// Limit caps the page size.
	Limit int

	// Offset is the pagination cursor within the page sequence.
	Offset int
}

// RemainingJobs lists jobs that are neither completed nor failed, in
// chronological order.
func (q *Queue) RemainingJobs(ctx context.Context, opts RemainingJobsOptions) ([]bugout.SearchResult, error) {
	queryComponents := []string{
		"context_type:" + q.contextType,
		"!tag:" + q.successTag,
		"!tag:" + q.failureTag,
	}

	if !opts.IgnoreCursor {
		cursor, found, err := q.latestCursor(ctx)
		if err != nil {
			return nil, err
		}
		if found {
			queryComponents = append(queryComponents, "created_at:>"+cursor)
		}
	}

	limit := opts.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}

	results, err := q.client.Search(ctx, q.token, q.journalID,
		strings.Join(queryComponents, " "),
		bugout.SearchOptions{
			Limit:  limit,
			Offset: opts.Offset,
			Order:  bugout.SearchOrderAscending,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list remaining jobs: %w", err)
	}
	return results.Results, nil
}

// latestCursor finds the creation time of the most recent cursor entry,
// normalized to the timestamp format the search index filters on.
func (q *Queue) latestCursor(ctx context.Context) (string, bool, error) {
	results, err := q.client.Search(ctx, q.token, q.journalID,
		"context_type:"+q.cursorContextType,
		bugout.SearchOptions{
			Limit:       1,
			OmitContent: true,
			Order:       bugout.SearchOrderDescending,
		})
	if err != nil {
		return "", false, fmt.Errorf("failed to find queue cursor: %w", err)
	}
	if len(results.Results) == 0 {
		return "", false, nil
	}
	createdAt := strings.Replace(results.Results[0].CreatedAt, " ", "T", 1)
	return createdAt, true, nil
}

// CompleteJob marks one job as successfully processed.
func (q *Queue) CompleteJob(ctx context.Context, entryID uuid.UUID) error {
	return q.markJob(ctx, entryID, q.successTag)
}

// FailJob marks one job as failed.
func (q *Queue) FailJob(ctx context.Context, entryID uuid.UUID) error {
	return q.markJob(ctx, entryID, q.failureTag)
}

func (q *Queue) markJob(ctx context.Context, entryID uuid.UUID, tag string) error {
	if _, err := q.client.CreateTags(ctx, q.token, q.journalID, entryID, []string{tag}); err != nil {
		return fmt.Errorf("failed to mark job %s with %q: %w", entryID, tag, err)
	}
	return nil
}

// CompleteJobs marks a batch of jobs as successfully processed. All
// entries are attempted; failures are aggregated.
func (q *Queue) CompleteJobs(ctx context.Context, entryIDs []uuid.UUID) error {
	return q.markJobs(ctx, entryIDs, q.successTag)
}

// FailJobs marks a batch of jobs as failed. All entries are attempted;
// failures are aggregated.
func (q *Queue) FailJobs(ctx context.Context, entryIDs []uuid.UUID) error {
	return q.markJobs(ctx, entryIDs, q.failureTag)
}

func (q *Queue) markJobs(ctx context.Context, entryIDs []uuid.UUID, tag string) error {
	var result *multierror.Error
	for _, entryID := range entryIDs {
		if err := q.markJob(ctx, entryID, tag); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// EntryID extracts the entry id from a search result, which carries the
// entry URL rather than a bare id.
func EntryID(result bugout.SearchResult) (uuid.UUID, error) {
	parsed, err := url.Parse(result.EntryURL)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse entry URL %q: %w", result.EntryURL, err)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	entryID, err := uuid.Parse(segments[len(segments)-1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("entry URL %q does not end in an entry id: %w", result.EntryURL, err)
	}
	return entryID, nil
}
