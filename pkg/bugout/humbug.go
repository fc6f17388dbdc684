package bugout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// HumbugIntegration is a crash/usage reporting integration that writes
// into a journal.
type HumbugIntegration struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"group_id"`
	JournalID   uuid.UUID `json:"journal_id"`
	JournalName string    `json:"journal_name,omitempty"`
}

// HumbugIntegrationsList lists humbug integrations.
type HumbugIntegrationsList struct {
	Integrations []HumbugIntegration `json:"integrations"`
}

// HumbugClient operates on spire humbug integrations.
type HumbugClient struct {
	caller *rest.Caller
}

// NewHumbugClient wraps a spire caller.
func NewHumbugClient(caller *rest.Caller) *HumbugClient {
	return &HumbugClient{caller: caller}
}

// Integrations lists the humbug integrations visible to the caller,
// optionally restricted to one group.
func (c *HumbugClient) Integrations(ctx context.Context, token string, groupID *uuid.UUID) (HumbugIntegrationsList, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return HumbugIntegrationsList{}, err
	}

	query := url.Values{}
	if groupID != nil {
		query.Set("group_id", groupID.String())
	}

	var integrations HumbugIntegrationsList
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "humbug/integrations",
		Token:  token,
		Query:  query,
	}, &integrations)
	if err != nil {
		return HumbugIntegrationsList{}, fmt.Errorf("failed to list humbug integrations: %w", err)
	}
	return integrations, nil
}
