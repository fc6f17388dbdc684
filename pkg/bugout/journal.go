package bugout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// Journal is a spire journal, the container for entries.
type Journal struct {
	ID           uuid.UUID   `json:"id"`
	BugoutUserID uuid.UUID   `json:"bugout_user_id"`
	HolderIDs    []uuid.UUID `json:"holder_ids,omitempty"`
	Name         string      `json:"name"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Journals is a journal listing.
type Journals struct {
	Journals []Journal `json:"journals"`
}

// Scope describes one permission the spire API understands.
type Scope struct {
	API         string `json:"api"`
	Scope       string `json:"scope"`
	Description string `json:"description"`
}

// Scopes is a scope listing.
type Scopes struct {
	Scopes []Scope `json:"scopes"`
}

// JournalScopeSpec grants one permission on a journal to a holder.
type JournalScopeSpec struct {
	JournalID  uuid.UUID  `json:"journal_id"`
	HolderType HolderType `json:"holder_type"`
	HolderID   string     `json:"holder_id"`
	Permission string     `json:"permission"`
}

// JournalScopeSpecs is a journal scope listing.
type JournalScopeSpecs struct {
	Scopes []JournalScopeSpec `json:"scopes"`
}

// JournalPermissions lists the permission grants on one journal.
type JournalPermissions struct {
	JournalID   uuid.UUID          `json:"journal_id"`
	Permissions []JournalScopeSpec `json:"permissions"`
}

// JournalClient operates on spire journals and everything inside them:
// entries, tags, scopes and search.
type JournalClient struct {
	caller *rest.Caller
}

// NewJournalClient wraps a spire caller.
func NewJournalClient(caller *rest.Caller) *JournalClient {
	return &JournalClient{caller: caller}
}

// Create makes a new journal owned by the token's user.
func (c *JournalClient) Create(ctx context.Context, token, name string, journalType JournalType) (Journal, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
		"name":  validation.Validate(name, validation.Required),
	}); err != nil {
		return Journal{}, err
	}
	if journalType == "" {
		journalType = JournalTypeDefault
	}

	var journal Journal
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "journals",
		Token:  token,
		Body: map[string]string{
			"name":         name,
			"journal_type": string(journalType),
		},
	}, &journal)
	if err != nil {
		return Journal{}, fmt.Errorf("failed to create journal: %w", err)
	}
	return journal, checkDecoded("journal", journal.ID)
}

// List lists the journals the token's user can read.
func (c *JournalClient) List(ctx context.Context, token string) (Journals, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return Journals{}, err
	}

	var journals Journals
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "journals",
		Token:  token,
	}, &journals)
	if err != nil {
		return Journals{}, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, nil
}

// Get fetches a journal by id.
func (c *JournalClient) Get(ctx context.Context, token string, journalID uuid.UUID) (Journal, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
	}); err != nil {
		return Journal{}, err
	}

	var journal Journal
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s", journalID),
		Token:  token,
	}, &journal)
	if err != nil {
		return Journal{}, fmt.Errorf("failed to get journal: %w", err)
	}
	return journal, checkDecoded("journal", journal.ID)
}

// Update renames a journal.
func (c *JournalClient) Update(ctx context.Context, token string, journalID uuid.UUID, name string) (Journal, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
		"name":       validation.Validate(name, validation.Required),
	}); err != nil {
		return Journal{}, err
	}

	var journal Journal
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("journals/%s", journalID),
		Token:  token,
		Body:   map[string]string{"name": name},
	}, &journal)
	if err != nil {
		return Journal{}, fmt.Errorf("failed to update journal: %w", err)
	}
	return journal, checkDecoded("journal", journal.ID)
}

// Delete removes a journal and everything in it.
func (c *JournalClient) Delete(ctx context.Context, token string, journalID uuid.UUID) (Journal, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
	}); err != nil {
		return Journal{}, err
	}

	var journal Journal
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("journals/%s", journalID),
		Token:  token,
	}, &journal)
	if err != nil {
		return Journal{}, fmt.Errorf("failed to delete journal: %w", err)
	}
	return journal, checkDecoded("journal", journal.ID)
}

// CheckPublic reports whether a journal is readable without a token.
// A 2xx means public; 401, 403 and 404 mean not public (a journal that
// does not exist is indistinguishable from a private one by design of
// the server).
func (c *JournalClient) CheckPublic(ctx context.Context, journalID uuid.UUID) (bool, error) {
	if err := checkParams(validation.Errors{
		"journal_id": validation.Validate(journalID, requiredUUID),
	}); err != nil {
		return false, err
	}

	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s", journalID),
	}, nil)
	if err == nil {
		return true, nil
	}
	var authErr *rest.AuthError
	var notFound *rest.NotFoundError
	if errors.As(err, &authErr) || errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check journal visibility: %w", err)
}

// ListScopes lists the permissions the given API knows about.
func (c *JournalClient) ListScopes(ctx context.Context, token, api string) (Scopes, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
		"api":   validation.Validate(api, validation.Required),
	}); err != nil {
		return Scopes{}, err
	}

	var scopes Scopes
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "journals/scopes",
		Token:  token,
		Body:   map[string]string{"api": api},
	}, &scopes)
	if err != nil {
		return Scopes{}, fmt.Errorf("failed to list scopes: %w", err)
	}
	return scopes, nil
}

// Scopes lists the permission grants on a journal.
func (c *JournalClient) Scopes(ctx context.Context, token string, journalID uuid.UUID) (JournalScopeSpecs, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
	}); err != nil {
		return JournalScopeSpecs{}, err
	}

	var specs JournalScopeSpecs
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s/scopes", journalID),
		Token:  token,
	}, &specs)
	if err != nil {
		return JournalScopeSpecs{}, fmt.Errorf("failed to get journal scopes: %w", err)
	}
	return specs, nil
}

// Permissions lists the grants on a journal, optionally filtered to the
// given holder ids.
func (c *JournalClient) Permissions(ctx context.Context, token string, journalID uuid.UUID, holderIDs []string) (JournalPermissions, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"journal_id": validation.Validate(journalID, requiredUUID),
	}); err != nil {
		return JournalPermissions{}, err
	}

	req := rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("journals/%s/permissions", journalID),
		Token:  token,
	}
	if len(holderIDs) > 0 {
		req.Query = map[string][]string{"holder_ids": holderIDs}
	}

	var permissions JournalPermissions
	if err := c.caller.Do(ctx, req, &permissions); err != nil {
		return JournalPermissions{}, fmt.Errorf("failed to get journal permissions: %w", err)
	}
	return permissions, nil
}

// UpdateScopes grants a permission list on the journal to a holder.
func (c *JournalClient) UpdateScopes(ctx context.Context, token string, journalID uuid.UUID, holderType HolderType, holderID string, permissions []string) (JournalScopeSpecs, error) {
	return c.changeScopes(ctx, http.MethodPost, token, journalID, holderType, holderID, permissions)
}

// DeleteScopes revokes a permission list on the journal from a holder.
func (c *JournalClient) DeleteScopes(ctx context.Context, token string, journalID uuid.UUID, holderType HolderType, holderID string, permissions []string) (JournalScopeSpecs, error) {
	return c.changeScopes(ctx, http.MethodDelete, token, journalID, holderType, holderID, permissions)
}

func (c *JournalClient) changeScopes(ctx context.Context, method, token string, journalID uuid.UUID, holderType HolderType, holderID string, permissions []string) (JournalScopeSpecs, error) {
	if err := checkParams(validation.Errors{
		"token":           validation.Validate(token, validation.Required),
		"journal_id":      validation.Validate(journalID, requiredUUID),
		"holder_type":     validation.Validate(string(holderType), validation.Required),
		"holder_id":       validation.Validate(holderID, validation.Required),
		"permission_list": validation.Validate(permissions, validation.Required),
	}); err != nil {
		return JournalScopeSpecs{}, err
	}

	var specs JournalScopeSpecs
	err := c.caller.Do(ctx, rest.Request{
		Method: method,
		Path:   fmt.Sprintf("journals/%s/scopes", journalID),
		Token:  token,
		Body: map[string]any{
			"holder_type":     holderType,
			"holder_id":       holderID,
			"permission_list": permissions,
		},
	}, &specs)
	if err != nil {
		return JournalScopeSpecs{}, fmt.Errorf("failed to change journal scopes: %w", err)
	}
	return specs, nil
}
