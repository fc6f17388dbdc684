package bugout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// Resource is an application-scoped blob of structured data stored in
// brood. Data is schemaless on the wire; DecodeData maps it into a
// caller-defined struct.
type Resource struct {
	ID            uuid.UUID      `json:"id"`
	ApplicationID uuid.UUID      `json:"application_id"`
	Data          map[string]any `json:"resource_data"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DecodeData decodes the schemaless resource data into out, which must
// be a pointer to a struct or map. Decoding is weakly typed so JSON
// numbers land in integer fields.
func (r Resource) DecodeData(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build resource data decoder: %w", err)
	}
	if err := decoder.Decode(r.Data); err != nil {
		return fmt.Errorf("failed to decode resource data: %w", err)
	}
	return nil
}

// Resources is a resource listing.
type Resources struct {
	Resources []Resource `json:"resources"`
}

// ResourceHolder grants a user or group a permission set on a resource.
type ResourceHolder struct {
	HolderID    uuid.UUID  `json:"holder_id"`
	HolderType  HolderType `json:"holder_type"`
	Permissions []string   `json:"permissions"`
}

// ResourceHolders lists the holders of one resource.
type ResourceHolders struct {
	ResourceID uuid.UUID        `json:"resource_id"`
	Holders    []ResourceHolder `json:"holders"`
}

// ResourceClient operates on brood resources.
type ResourceClient struct {
	caller *rest.Caller
}

// NewResourceClient wraps a brood caller.
func NewResourceClient(caller *rest.Caller) *ResourceClient {
	return &ResourceClient{caller: caller}
}

// Create stores a new resource under an application.
func (c *ResourceClient) Create(ctx context.Context, token string, applicationID uuid.UUID, data map[string]any) (Resource, error) {
	if err := checkParams(validation.Errors{
		"token":          validation.Validate(token, validation.Required),
		"application_id": validation.Validate(applicationID, requiredUUID),
		"resource_data":  validation.Validate(data, validation.Required),
	}); err != nil {
		return Resource{}, err
	}

	var resource Resource
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "resources",
		Token:  token,
		Body: map[string]any{
			"application_id": applicationID.String(),
			"resource_data":  data,
		},
	}, &resource)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to create resource: %w", err)
	}
	return resource, checkDecoded("resource", resource.ID)
}

// Get fetches a resource by id.
func (c *ResourceClient) Get(ctx context.Context, token string, resourceID uuid.UUID) (Resource, error) {
	if err := checkParams(validation.Errors{
		"token":       validation.Validate(token, validation.Required),
		"resource_id": validation.Validate(resourceID, requiredUUID),
	}); err != nil {
		return Resource{}, err
	}

	var resource Resource
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("resources/%s", resourceID),
		Token:  token,
	}, &resource)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to get resource: %w", err)
	}
	return resource, checkDecoded("resource", resource.ID)
}

// List fetches resources matching the given query parameters. Parameters
// filter on resource data fields server-side and may be nil.
func (c *ResourceClient) List(ctx context.Context, token string, params map[string]string) (Resources, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return Resources{}, err
	}

	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}

	var resources Resources
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "resources",
		Token:  token,
		Query:  query,
	}, &resources)
	if err != nil {
		return Resources{}, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// Update replaces fields of the resource data.
func (c *ResourceClient) Update(ctx context.Context, token string, resourceID uuid.UUID, update map[string]any) (Resource, error) {
	if err := checkParams(validation.Errors{
		"token":       validation.Validate(token, validation.Required),
		"resource_id": validation.Validate(resourceID, requiredUUID),
		"update":      validation.Validate(update, validation.Required),
	}); err != nil {
		return Resource{}, err
	}

	var resource Resource
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("resources/%s", resourceID),
		Token:  token,
		Body:   update,
	}, &resource)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to update resource: %w", err)
	}
	return resource, checkDecoded("resource", resource.ID)
}

// Delete removes a resource.
func (c *ResourceClient) Delete(ctx context.Context, token string, resourceID uuid.UUID) (Resource, error) {
	if err := checkParams(validation.Errors{
		"token":       validation.Validate(token, validation.Required),
		"resource_id": validation.Validate(resourceID, requiredUUID),
	}); err != nil {
		return Resource{}, err
	}

	var resource Resource
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("resources/%s", resourceID),
		Token:  token,
	}, &resource)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to delete resource: %w", err)
	}
	return resource, checkDecoded("resource", resource.ID)
}

// Holders lists who holds permissions on a resource.
func (c *ResourceClient) Holders(ctx context.Context, token string, resourceID uuid.UUID) (ResourceHolders, error) {
	if err := checkParams(validation.Errors{
		"token":       validation.Validate(token, validation.Required),
		"resource_id": validation.Validate(resourceID, requiredUUID),
	}); err != nil {
		return ResourceHolders{}, err
	}

	var holders ResourceHolders
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("resources/%s/holders", resourceID),
		Token:  token,
	}, &holders)
	if err != nil {
		return ResourceHolders{}, fmt.Errorf("failed to get resource holders: %w", err)
	}
	return holders, nil
}

// AddHolderPermissions grants holder its permission set on the resource.
func (c *ResourceClient) AddHolderPermissions(ctx context.Context, token string, resourceID uuid.UUID, holder ResourceHolder) (ResourceHolders, error) {
	return c.changeHolderPermissions(ctx, http.MethodPost, token, resourceID, holder)
}

// RemoveHolderPermissions revokes holder's listed permissions on the
// resource.
func (c *ResourceClient) RemoveHolderPermissions(ctx context.Context, token string, resourceID uuid.UUID, holder ResourceHolder) (ResourceHolders, error) {
	return c.changeHolderPermissions(ctx, http.MethodDelete, token, resourceID, holder)
}

func (c *ResourceClient) changeHolderPermissions(ctx context.Context, method, token string, resourceID uuid.UUID, holder ResourceHolder) (ResourceHolders, error) {
	if err := checkParams(validation.Errors{
		"token":       validation.Validate(token, validation.Required),
		"resource_id": validation.Validate(resourceID, requiredUUID),
		"holder_id":   validation.Validate(holder.HolderID, requiredUUID),
		"holder_type": validation.Validate(string(holder.HolderType), validation.Required),
		"permissions": validation.Validate(holder.Permissions, validation.Required),
	}); err != nil {
		return ResourceHolders{}, err
	}

	var holders ResourceHolders
	err := c.caller.Do(ctx, rest.Request{
		Method: method,
		Path:   fmt.Sprintf("resources/%s/holders", resourceID),
		Token:  token,
		Body:   holder,
	}, &holders)
	if err != nil {
		return ResourceHolders{}, fmt.Errorf("failed to change resource holder permissions: %w", err)
	}
	return holders, nil
}
