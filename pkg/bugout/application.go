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

// Application is a brood application registered under a group.
type Application struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"group_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// Applications is an application listing.
type Applications struct {
	Applications []Application `json:"applications"`
}

// CreateApplication registers an application under a group.
func (c *GroupClient) CreateApplication(ctx context.Context, token, name, description string, groupID uuid.UUID) (Application, error) {
	if err := checkParams(validation.Errors{
		"token":    validation.Validate(token, validation.Required),
		"name":     validation.Validate(name, validation.Required),
		"group_id": validation.Validate(groupID, requiredUUID),
	}); err != nil {
		return Application{}, err
	}

	var app Application
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "applications",
		Token:  token,
		Body: map[string]string{
			"name":        name,
			"description": description,
			"group_id":    groupID.String(),
		},
	}, &app)
	if err != nil {
		return Application{}, fmt.Errorf("failed to create application: %w", err)
	}
	return app, checkDecoded("application", app.ID)
}

// GetApplication fetches an application by id.
func (c *GroupClient) GetApplication(ctx context.Context, token string, applicationID uuid.UUID) (Application, error) {
	if err := checkParams(validation.Errors{
		"token":          validation.Validate(token, validation.Required),
		"application_id": validation.Validate(applicationID, requiredUUID),
	}); err != nil {
		return Application{}, err
	}

	var app Application
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("applications/%s", applicationID),
		Token:  token,
	}, &app)
	if err != nil {
		return Application{}, fmt.Errorf("failed to get application: %w", err)
	}
	return app, checkDecoded("application", app.ID)
}

// ListApplications lists applications visible to the caller, optionally
// restricted to one group.
func (c *GroupClient) ListApplications(ctx context.Context, token string, groupID *uuid.UUID) (Applications, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return Applications{}, err
	}

	query := url.Values{}
	if groupID != nil {
		query.Set("group_id", groupID.String())
	}

	var apps Applications
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "applications",
		Token:  token,
		Query:  query,
	}, &apps)
	if err != nil {
		return Applications{}, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// DeleteApplication removes an application.
func (c *GroupClient) DeleteApplication(ctx context.Context, token string, applicationID uuid.UUID) (Application, error) {
	if err := checkParams(validation.Errors{
		"token":          validation.Validate(token, validation.Required),
		"application_id": validation.Validate(applicationID, requiredUUID),
	}); err != nil {
		return Application{}, err
	}

	var app Application
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("applications/%s", applicationID),
		Token:  token,
	}, &app)
	if err != nil {
		return Application{}, fmt.Errorf("failed to delete application: %w", err)
	}
	return app, checkDecoded("application", app.ID)
}
