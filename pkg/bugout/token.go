package bugout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// Token is a brood access token. The token value itself is only returned
// at creation time, as the id.
type Token struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Active    bool      `json:"active"`
	TokenType string    `json:"token_type,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserTokens lists a user's tokens. The wire field for the list is
// "token", singular.
type UserTokens struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Tokens   []Token   `json:"token"`
}

// CreateTokenRequest carries login credentials plus optional token
// metadata.
type CreateTokenRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ApplicationID string `json:"application_id,omitempty"`
	Note          string `json:"token_note,omitempty"`
}

// TokenListOptions filter the Tokens listing. Nil fields are not sent.
type TokenListOptions struct {
	Active     *bool
	TokenType  *TokenType
	Restricted *bool
}

// CreateToken logs in with username/password and mints a new token.
func (c *UserClient) CreateToken(ctx context.Context, req CreateTokenRequest) (Token, error) {
	if err := checkParams(validation.Errors{
		"username": validation.Validate(req.Username, validation.Required),
		"password": validation.Validate(req.Password, validation.Required),
	}); err != nil {
		return Token{}, err
	}

	var token Token
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "token",
		Body:   req,
	}, &token)
	if err != nil {
		return Token{}, fmt.Errorf("failed to create token: %w", err)
	}
	return token, checkDecoded("token", token.ID)
}

// CreateRestrictedToken mints a restricted token on behalf of the
// authenticated user.
func (c *UserClient) CreateRestrictedToken(ctx context.Context, token string) (Token, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return Token{}, err
	}

	var restricted Token
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "token/restricted",
		Token:  token,
	}, &restricted)
	if err != nil {
		return Token{}, fmt.Errorf("failed to create restricted token: %w", err)
	}
	return restricted, checkDecoded("token", restricted.ID)
}

// RevokeToken revokes targetToken, or the authenticating token itself
// when targetToken is empty. Returns the id of the revoked token.
func (c *UserClient) RevokeToken(ctx context.Context, token, targetToken string) (uuid.UUID, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return uuid.Nil, err
	}

	var body any
	if targetToken != "" {
		body = map[string]string{"target_token": targetToken}
	}

	var revoked uuid.UUID
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   "token",
		Token:  token,
		Body:   body,
	}, &revoked)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to revoke token: %w", err)
	}
	return revoked, nil
}

// RevokeTokenByID revokes a token addressed by its own value, without a
// separate authenticating token.
func (c *UserClient) RevokeTokenByID(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, requiredUUID),
	}); err != nil {
		return uuid.Nil, err
	}

	var revoked uuid.UUID
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("token/%s", token),
	}, &revoked)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to revoke token by id: %w", err)
	}
	return revoked, nil
}

// UpdateToken changes a token's type and/or note. At least one of the
// two must be supplied.
func (c *UserClient) UpdateToken(ctx context.Context, token string, tokenType *TokenType, note *string) (Token, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return Token{}, err
	}
	if tokenType == nil && note == nil {
		return Token{}, rest.NewValidationError(
			errors.New("at least one of token type or token note must be specified"))
	}

	body := map[string]string{"access_token": token}
	if tokenType != nil {
		body["token_type"] = string(*tokenType)
	}
	if note != nil {
		body["token_note"] = *note
	}

	var updated Token
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   "token",
		Body:   body,
	}, &updated)
	if err != nil {
		return Token{}, fmt.Errorf("failed to update token: %w", err)
	}
	return updated, checkDecoded("token", updated.ID)
}

// TokenTypes lists the token types the server accepts.
func (c *UserClient) TokenTypes(ctx context.Context, token string) ([]string, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return nil, err
	}

	var types []string
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "token/types",
		Token:  token,
	}, &types)
	if err != nil {
		return nil, fmt.Errorf("failed to get token types: %w", err)
	}
	return types, nil
}

// Tokens lists the user's tokens, optionally filtered.
func (c *UserClient) Tokens(ctx context.Context, token string, opts TokenListOptions) (UserTokens, error) {
	if err := checkParams(validation.Errors{
		"token": validation.Validate(token, validation.Required),
	}); err != nil {
		return UserTokens{}, err
	}

	query := url.Values{}
	if opts.Active != nil {
		query.Set("active", strconv.Itoa(boolToInt(*opts.Active)))
	}
	if opts.TokenType != nil {
		query.Set("token_type", string(*opts.TokenType))
	}
	if opts.Restricted != nil {
		query.Set("restricted", strconv.Itoa(boolToInt(*opts.Restricted)))
	}

	var tokens UserTokens
	err := c.caller.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "tokens",
		Token:  token,
		Query:  query,
	}, &tokens)
	if err != nil {
		return UserTokens{}, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
