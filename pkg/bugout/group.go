package bugout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// Group is a brood group, the ownership unit for journals and
// applications.
type Group struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"group_name,omitempty"`
	Autogenerated bool      `json:"autogenerated"`
}

// GroupUser is a user's membership record within a group.
type GroupUser struct {
	GroupID       uuid.UUID `json:"group_id"`
	UserID        uuid.UUID `json:"user_id"`
	UserType      string    `json:"user_type"`
	Autogenerated *bool     `json:"autogenerated,omitempty"`
	GroupName     string    `json:"group_name,omitempty"`
}

// UserGroups lists the memberships of the authenticated user.
type UserGroups struct {
	Groups []GroupUser `json:"groups"`
}

// GroupMembers lists the users of one group.
type GroupMembers struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Users []UserShort `json:"users"`
}

// GroupClient operates on brood group and application resources.
type GroupClient struct {
	caller *rest.Caller
}

// NewGroupClient wraps a brood caller.
func NewGroupClient(caller *rest.Caller) *GroupClient {
	return &GroupClient{caller: caller}
}

// Get fetches a group by id.
func (c *GroupClient) Get(ctx context.Context, token string, groupID uuid.UUID) (Group, error) {
	if err := checkParams(validation.Errors{
		"token":    validation.Validate(token, validation.Required),
		"group_id": validation.Validate(groupID, requiredUUID),
	}); err != nil {
		return Group{}, err
	}

	var group Group
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("group/%s", groupID),
		Token:  token,
	}, &group)
	if err != nil {
		return Group{}, fmt.Errorf("failed to get group: %w", err)
	}
	return group, checkDecoded("group", group.ID)
}

// Find resolves a group through the find endpoint, which also matches
// groups the caller belongs to but does not own.
func (c *GroupClient) Find(ctx context.Context, token string, groupID uuid.UUID) (Group, error) {
	if err := checkParams(validation.Errors{
		"token":    validation.Validate(token, validation.Required),
		"group_id": validation.Validate(groupID, requiredUUID),
	}); err != nil {
		return Group{}, err
	}

	query := url.Values{}
	query.Set("group_id", groupID.String())

	var group Group
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "groups/find",
		Token:  token,
		Query:  query,
	}, &group)
	if err != nil {
		return Group{}, fmt.Errorf("failed to find group: %w", err)
	}
	return group, checkDecoded("group", group.ID)
}

// UserGroups lists the groups the token's user belongs to.
func (c *GroupClient) UserGroups(ctx context.Context, token string) (UserGroups, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return UserGroups{}, err
	}

	var groups UserGroups
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "groups",
		Token:  token,
	}, &groups)
	if err != nil {
		return UserGroups{}, fmt.Errorf("failed to list user groups: %w", err)
	}
	return groups, nil
}

// Create makes a new group owned by the token's user.
func (c *GroupClient) Create(ctx context.Context, token, name string) (Group, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"group_name": validation.Validate(name, validation.Required),
	}); err != nil {
		return Group{}, err
	}

	var group Group
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "group",
		Token:  token,
		Body:   map[string]string{"group_name": name},
	}, &group)
	if err != nil {
		return Group{}, fmt.Errorf("failed to create group: %w", err)
	}
	return group, checkDecoded("group", group.ID)
}

// SetUserRole grants role to a user identified by username or email; at
// least one of the two must be supplied.
func (c *GroupClient) SetUserRole(ctx context.Context, token string, groupID uuid.UUID, role Role, username, email string) (GroupUser, error) {
	if err := checkParams(validation.Errors{
		"token":     validation.Validate(token, validation.Required),
		"group_id":  validation.Validate(groupID, requiredUUID),
		"user_type": validation.Validate(string(role), validation.Required),
	}); err != nil {
		return GroupUser{}, err
	}
	body, err := memberBody(username, email)
	if err != nil {
		return GroupUser{}, err
	}
	body["user_type"] = string(role)

	var member GroupUser
	err = c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("group/%s/role", groupID),
		Token:  token,
		Body:   body,
	}, &member)
	if err != nil {
		return GroupUser{}, fmt.Errorf("failed to set user role: %w", err)
	}
	return member, nil
}

// RemoveUserRole removes a user, identified by username or email, from
// the group.
func (c *GroupClient) RemoveUserRole(ctx context.Context, token string, groupID uuid.UUID, username, email string) (GroupUser, error) {
	if err := checkParams(validation.Errors{
		"token":    validation.Validate(token, validation.Required),
		"group_id": validation.Validate(groupID, requiredUUID),
	}); err != nil {
		return GroupUser{}, err
	}
	body, err := memberBody(username, email)
	if err != nil {
		return GroupUser{}, err
	}

	var member GroupUser
	err = c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("group/%s/role", groupID),
		Token:  token,
		Body:   body,
	}, &member)
	if err != nil {
		return GroupUser{}, fmt.Errorf("failed to remove user role: %w", err)
	}
	return member, nil
}

// Members lists the users of a group.
func (c *GroupClient) Members(ctx context.Context, token string, groupID uuid.UUID) (GroupMembers, error) {
	if err := checkParams(validation.Errors{
		"token":    validation.Validate(token, validation.Required),
		"group_id": validation.Validate(groupID, requiredUUID),
	}); err != nil {
		return GroupMembers{}, err
	}

	var members GroupMembers
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("group/%s/users", groupID),
		Token:  token,
	}, &members)
	if err != nil {
		return GroupMembers{}, fmt.Errorf("failed to get group members: %w", err)
	}
	return members, nil
}

// Rename changes the group name.
func (c *GroupClient) Rename(ctx context.Context, token string, groupID uuid.UUID, name string) (Group, error) {
	if err := checkParams(validation.Errors{
		"token":      validation.Validate(token, validation.Required),
		"group_id":   validation.Validate(groupID, requiredUUID),
		"group_name": validation.Validate(name, validation.Required),
	}); err != nil {
		return Group{}, err
	}

	var group Group
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("group/%s/name", groupID),
		Token:  token,
		Body:   map[string]string{"group_name": name},
	}, &group)
	if err != nil {
		return Group{}, fmt.Errorf("failed to rename group: %w", err)
	}
	return group, checkDecoded("group", group.ID)
}

// Delete removes a group.
func (c *GroupClient) Delete(ctx context.Context, token string, groupID uuid.UUID) (Group, error) {
	if err := checkParams(validation.Errors{
		"token":    validation.Validate(token, validation.Required),
		"group_id": validation.Validate(groupID, requiredUUID),
	}); err != nil {
		return Group{}, err
	}

	var group Group
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("group/%s", groupID),
		Token:  token,
	}, &group)
	if err != nil {
		return Group{}, fmt.Errorf("failed to delete group: %w", err)
	}
	return group, checkDecoded("group", group.ID)
}

// memberBody builds the username/email body shared by the role
// endpoints.
func memberBody(username, email string) (map[string]string, error) {
	if username == "" && email == "" {
		return nil, rest.NewValidationError(
			errors.New("at least one of username or email must be specified"))
	}
	body := map[string]string{}
	if username != "" {
		body["username"] = username
	}
	if email != "" {
		body["email"] = email
	}
	return body, nil
}
