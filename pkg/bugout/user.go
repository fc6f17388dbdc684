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

// User is a brood account, reconstructed fresh from each response.
type User struct {
	ID              uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	NormalizedEmail string    `json:"normalized_email"`
	Verified        bool      `json:"verified"`
	Autogenerated   bool      `json:"autogenerated"`
	ApplicationID   string    `json:"application_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserShort is the member projection returned inside group listings.
type UserShort struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserType Role      `json:"user_type"`
}

// CreateUserRequest carries the signup parameters. Signature and
// ApplicationID support web3/application signup and are optional.
type CreateUserRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Signature     string `json:"signature,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`
}

// UserClient operates on brood user and token resources.
type UserClient struct {
	caller *rest.Caller
}

// NewUserClient wraps a brood caller.
func NewUserClient(caller *rest.Caller) *UserClient {
	return &UserClient{caller: caller}
}

// Create registers a new user. No token is required.
func (c *UserClient) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	if err := checkParams(validation.Errors{
		"username": validation.Validate(req.Username, validation.Required),
		"email":    validation.Validate(req.Email, validation.Required),
		"password": validation.Validate(req.Password, validation.Required),
	}); err != nil {
		return User{}, err
	}

	var user User
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "user",
		Body:   req,
	}, &user)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, checkDecoded("user", user.ID)
}

// Get returns the user the token belongs to.
func (c *UserClient) Get(ctx context.Context, token string) (User, error) {
	return c.get(ctx, token, AuthTypeBearer)
}

// GetWithAuthType is Get with an explicit Authorization scheme, for
// web3-signed tokens.
func (c *UserClient) GetWithAuthType(ctx context.Context, token string, authType AuthType) (User, error) {
	return c.get(ctx, token, authType)
}

func (c *UserClient) get(ctx context.Context, token string, authType AuthType) (User, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return User{}, err
	}

	var user User
	err := c.caller.Do(ctx, rest.Request{
		Method:   http.MethodGet,
		Path:     "user",
		Token:    token,
		AuthType: string(authType),
	}, &user)
	if err != nil {
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, checkDecoded("user", user.ID)
}

// GetByID fetches another user by id.
func (c *UserClient) GetByID(ctx context.Context, token string, userID uuid.UUID) (User, error) {
	if err := checkParams(validation.Errors{
		"token":   validation.Validate(token, validation.Required),
		"user_id": validation.Validate(userID, requiredUUID),
	}); err != nil {
		return User{}, err
	}

	var user User
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("user/%s", userID),
		Token:  token,
	}, &user)
	if err != nil {
		return User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, checkDecoded("user", user.ID)
}

// Find looks a user up by username. The token is optional; public
// profiles resolve without one.
func (c *UserClient) Find(ctx context.Context, token, username string) (User, error) {
	if err := checkParams(validation.Errors{
		"username": validation.Validate(username, validation.Required),
	}); err != nil {
		return User{}, err
	}

	query := url.Values{}
	query.Set("username", username)

	var user User
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "user/find",
		Token:  token,
		Query:  query,
	}, &user)
	if err != nil {
		return User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, checkDecoded("user", user.ID)
}

// ConfirmEmail completes signup with the emailed verification code.
func (c *UserClient) ConfirmEmail(ctx context.Context, token, verificationCode string) (User, error) {
	if err := checkParams(validation.Errors{
		"token":             validation.Validate(token, validation.Required),
		"verification_code": validation.Validate(verificationCode, validation.Required),
	}); err != nil {
		return User{}, err
	}

	var user User
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "confirm",
		Token:  token,
		Body:   map[string]string{"verification_code": verificationCode},
	}, &user)
	if err != nil {
		return User{}, fmt.Errorf("failed to confirm email: %w", err)
	}
	return user, checkDecoded("user", user.ID)
}

// RestorePassword starts the password-reset flow. The server replies
// with a human-readable hint keyed by action.
func (c *UserClient) RestorePassword(ctx context.Context, email string) (map[string]string, error) {
	if err := checkParams(validation.Errors{
		"email": validation.Validate(email, validation.Required),
	}); err != nil {
		return nil, err
	}

	var result map[string]string
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "password/restore",
		Body:   map[string]string{"email": email},
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to restore password: %w", err)
	}
	return result, nil
}

// ResetPassword finishes the password-reset flow.
func (c *UserClient) ResetPassword(ctx context.Context, resetID uuid.UUID, newPassword string) (User, error) {
	if err := checkParams(validation.Errors{
		"reset_id":     validation.Validate(resetID, requiredUUID),
		"new_password": validation.Validate(newPassword, validation.Required),
	}); err != nil {
		return User{}, err
	}

	var user User
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "password/reset",
		Body: map[string]string{
			"reset_id":     resetID.String(),
			"new_password": newPassword,
		},
	}, &user)
	if err != nil {
		return User{}, fmt.Errorf("failed to reset password: %w", err)
	}
	return user, checkDecoded("user", user.ID)
}

// ChangePassword rotates the password of the token's user.
func (c *UserClient) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) (User, error) {
	if err := checkParams(validation.Errors{
		"token":            validation.Validate(token, validation.Required),
		"current_password": validation.Validate(currentPassword, validation.Required),
		"new_password":     validation.Validate(newPassword, validation.Required),
	}); err != nil {
		return User{}, err
	}

	var user User
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "password/change",
		Token:  token,
		Body: map[string]string{
			"current_password": currentPassword,
			"new_password":     newPassword,
		},
	}, &user)
	if err != nil {
		return User{}, fmt.Errorf("failed to change password: %w", err)
	}
	return user, checkDecoded("user", user.ID)
}

// Delete removes a user account. The password confirmation is optional;
// restricted tokens require it.
func (c *UserClient) Delete(ctx context.Context, token string, userID uuid.UUID, password string) (User, error) {
	if err := checkParams(validation.Errors{
		"token":   validation.Validate(token, validation.Required),
		"user_id": validation.Validate(userID, requiredUUID),
	}); err != nil {
		return User{}, err
	}

	var body any
	if password != "" {
		body = map[string]string{"password": password}
	}

	var user User
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("user/%s", userID),
		Token:  token,
		Body:   body,
	}, &user)
	if err != nil {
		return User{}, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, checkDecoded("user", user.ID)
}
