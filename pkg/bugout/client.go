package bugout

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// Pong is the reply of a sub-service ping endpoint.
type Pong struct {
	Status string `json:"status"`
}

// Client is the single configured entry point to both Bugout
// sub-services. All fields are set at construction and never mutated;
// a Client is safe for concurrent use.
type Client struct {
	broodURL string
	spireURL string

	brood *rest.Caller
	spire *rest.Caller

	user     *UserClient
	group    *GroupClient
	resource *ResourceClient
	journal  *JournalClient
	humbug   *HumbugClient
}

// New builds a Client from cfg. Unset fields fall back to the
// environment, then to the package defaults.
func New(cfg Config) (*Client, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("bugout")

	brood, err := rest.NewCaller(rest.Config{
		BaseURL:    cfg.BroodAPIURL,
		Timeout:    cfg.Timeout,
		Logger:     logger.Named("brood"),
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	spire, err := rest.NewCaller(rest.Config{
		BaseURL:    cfg.SpireAPIURL,
		Timeout:    cfg.Timeout,
		Logger:     logger.Named("spire"),
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		broodURL: brood.BaseURL(),
		spireURL: spire.BaseURL(),
		brood:    brood,
		spire:    spire,
		user:     NewUserClient(brood),
		group:    NewGroupClient(brood),
		resource: NewResourceClient(brood),
		journal:  NewJournalClient(spire),
		humbug:   NewHumbugClient(spire),
	}, nil
}

// NewFromEnv builds a Client entirely from the environment.
func NewFromEnv() (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// BroodURL returns the configured brood base URL.
func (c *Client) BroodURL() string { return c.broodURL }

// SpireURL returns the configured spire base URL.
func (c *Client) SpireURL() string { return c.spireURL }

// BroodPing checks brood liveness.
func (c *Client) BroodPing(ctx context.Context) (Pong, error) {
	return ping(ctx, c.brood)
}

// SpirePing checks spire liveness.
func (c *Client) SpirePing(ctx context.Context) (Pong, error) {
	return ping(ctx, c.spire)
}

func ping(ctx context.Context, caller *rest.Caller) (Pong, error) {
	var pong Pong
	err := caller.Do(ctx, rest.Request{Method: http.MethodGet, Path: "ping"}, &pong)
	if err != nil {
		return Pong{}, fmt.Errorf("failed to ping: %w", err)
	}
	return pong, nil
}

// User operations (brood).

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	return c.user.Create(ctx, req)
}

func (c *Client) GetUser(ctx context.Context, token string) (User, error) {
	return c.user.Get(ctx, token)
}

func (c *Client) GetUserWithAuthType(ctx context.Context, token string, authType AuthType) (User, error) {
	return c.user.GetWithAuthType(ctx, token, authType)
}

func (c *Client) GetUserByID(ctx context.Context, token string, userID uuid.UUID) (User, error) {
	return c.user.GetByID(ctx, token, userID)
}

func (c *Client) FindUser(ctx context.Context, token, username string) (User, error) {
	return c.user.Find(ctx, token, username)
}

func (c *Client) ConfirmEmail(ctx context.Context, token, verificationCode string) (User, error) {
	return c.user.ConfirmEmail(ctx, token, verificationCode)
}

func (c *Client) RestorePassword(ctx context.Context, email string) (map[string]string, error) {
	return c.user.RestorePassword(ctx, email)
}

func (c *Client) ResetPassword(ctx context.Context, resetID uuid.UUID, newPassword string) (User, error) {
	return c.user.ResetPassword(ctx, resetID, newPassword)
}

func (c *Client) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) (User, error) {
	return c.user.ChangePassword(ctx, token, currentPassword, newPassword)
}

func (c *Client) DeleteUser(ctx context.Context, token string, userID uuid.UUID, password string) (User, error) {
	return c.user.Delete(ctx, token, userID, password)
}

// Token operations (brood).

func (c *Client) CreateToken(ctx context.Context, req CreateTokenRequest) (Token, error) {
	return c.user.CreateToken(ctx, req)
}

func (c *Client) CreateRestrictedToken(ctx context.Context, token string) (Token, error) {
	return c.user.CreateRestrictedToken(ctx, token)
}

func (c *Client) RevokeToken(ctx context.Context, token, targetToken string) (uuid.UUID, error) {
	return c.user.RevokeToken(ctx, token, targetToken)
}

func (c *Client) RevokeTokenByID(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
	return c.user.RevokeTokenByID(ctx, token)
}

func (c *Client) UpdateToken(ctx context.Context, token string, tokenType *TokenType, note *string) (Token, error) {
	return c.user.UpdateToken(ctx, token, tokenType, note)
}

func (c *Client) TokenTypes(ctx context.Context, token string) ([]string, error) {
	return c.user.TokenTypes(ctx, token)
}

func (c *Client) UserTokens(ctx context.Context, token string, opts TokenListOptions) (UserTokens, error) {
	return c.user.Tokens(ctx, token, opts)
}

// Group operations (brood).

func (c *Client) GetGroup(ctx context.Context, token string, groupID uuid.UUID) (Group, error) {
	return c.group.Get(ctx, token, groupID)
}

func (c *Client) FindGroup(ctx context.Context, token string, groupID uuid.UUID) (Group, error) {
	return c.group.Find(ctx, token, groupID)
}

func (c *Client) GetUserGroups(ctx context.Context, token string) (UserGroups, error) {
	return c.group.UserGroups(ctx, token)
}

func (c *Client) CreateGroup(ctx context.Context, token, name string) (Group, error) {
	return c.group.Create(ctx, token, name)
}

func (c *Client) SetUserGroup(ctx context.Context, token string, groupID uuid.UUID, role Role, username, email string) (GroupUser, error) {
	return c.group.SetUserRole(ctx, token, groupID, role, username, email)
}

func (c *Client) DeleteUserGroup(ctx context.Context, token string, groupID uuid.UUID, username, email string) (GroupUser, error) {
	return c.group.RemoveUserRole(ctx, token, groupID, username, email)
}

func (c *Client) GetGroupMembers(ctx context.Context, token string, groupID uuid.UUID) (GroupMembers, error) {
	return c.group.Members(ctx, token, groupID)
}

func (c *Client) UpdateGroup(ctx context.Context, token string, groupID uuid.UUID, name string) (Group, error) {
	return c.group.Rename(ctx, token, groupID, name)
}

func (c *Client) DeleteGroup(ctx context.Context, token string, groupID uuid.UUID) (Group, error) {
	return c.group.Delete(ctx, token, groupID)
}

// Application operations (brood).

func (c *Client) CreateApplication(ctx context.Context, token, name, description string, groupID uuid.UUID) (Application, error) {
	return c.group.CreateApplication(ctx, token, name, description, groupID)
}

func (c *Client) GetApplication(ctx context.Context, token string, applicationID uuid.UUID) (Application, error) {
	return c.group.GetApplication(ctx, token, applicationID)
}

func (c *Client) ListApplications(ctx context.Context, token string, groupID *uuid.UUID) (Applications, error) {
	return c.group.ListApplications(ctx, token, groupID)
}

func (c *Client) DeleteApplication(ctx context.Context, token string, applicationID uuid.UUID) (Application, error) {
	return c.group.DeleteApplication(ctx, token, applicationID)
}

// Resource operations (brood).

func (c *Client) CreateResource(ctx context.Context, token string, applicationID uuid.UUID, data map[string]any) (Resource, error) {
	return c.resource.Create(ctx, token, applicationID, data)
}

func (c *Client) GetResource(ctx context.Context, token string, resourceID uuid.UUID) (Resource, error) {
	return c.resource.Get(ctx, token, resourceID)
}

func (c *Client) ListResources(ctx context.Context, token string, params map[string]string) (Resources, error) {
	return c.resource.List(ctx, token, params)
}

func (c *Client) UpdateResource(ctx context.Context, token string, resourceID uuid.UUID, update map[string]any) (Resource, error) {
	return c.resource.Update(ctx, token, resourceID, update)
}

func (c *Client) DeleteResource(ctx context.Context, token string, resourceID uuid.UUID) (Resource, error) {
	return c.resource.Delete(ctx, token, resourceID)
}

func (c *Client) GetResourceHolders(ctx context.Context, token string, resourceID uuid.UUID) (ResourceHolders, error) {
	return c.resource.Holders(ctx, token, resourceID)
}

func (c *Client) AddResourceHolderPermissions(ctx context.Context, token string, resourceID uuid.UUID, holder ResourceHolder) (ResourceHolders, error) {
	return c.resource.AddHolderPermissions(ctx, token, resourceID, holder)
}

func (c *Client) DeleteResourceHolderPermissions(ctx context.Context, token string, resourceID uuid.UUID, holder ResourceHolder) (ResourceHolders, error) {
	return c.resource.RemoveHolderPermissions(ctx, token, resourceID, holder)
}

// Journal operations (spire).

func (c *Client) CreateJournal(ctx context.Context, token, name string, journalType JournalType) (Journal, error) {
	return c.journal.Create(ctx, token, name, journalType)
}

func (c *Client) ListJournals(ctx context.Context, token string) (Journals, error) {
	return c.journal.List(ctx, token)
}

func (c *Client) GetJournal(ctx context.Context, token string, journalID uuid.UUID) (Journal, error) {
	return c.journal.Get(ctx, token, journalID)
}

func (c *Client) UpdateJournal(ctx context.Context, token string, journalID uuid.UUID, name string) (Journal, error) {
	return c.journal.Update(ctx, token, journalID, name)
}

func (c *Client) DeleteJournal(ctx context.Context, token string, journalID uuid.UUID) (Journal, error) {
	return c.journal.Delete(ctx, token, journalID)
}

func (c *Client) CheckJournalPublic(ctx context.Context, journalID uuid.UUID) (bool, error) {
	return c.journal.CheckPublic(ctx, journalID)
}

// Journal scope operations (spire).

func (c *Client) ListScopes(ctx context.Context, token, api string) (Scopes, error) {
	return c.journal.ListScopes(ctx, token, api)
}

func (c *Client) GetJournalScopes(ctx context.Context, token string, journalID uuid.UUID) (JournalScopeSpecs, error) {
	return c.journal.Scopes(ctx, token, journalID)
}

func (c *Client) GetJournalPermissions(ctx context.Context, token string, journalID uuid.UUID, holderIDs []string) (JournalPermissions, error) {
	return c.journal.Permissions(ctx, token, journalID, holderIDs)
}

func (c *Client) UpdateJournalScopes(ctx context.Context, token string, journalID uuid.UUID, holderType HolderType, holderID string, permissions []string) (JournalScopeSpecs, error) {
	return c.journal.UpdateScopes(ctx, token, journalID, holderType, holderID, permissions)
}

func (c *Client) DeleteJournalScopes(ctx context.Context, token string, journalID uuid.UUID, holderType HolderType, holderID string, permissions []string) (JournalScopeSpecs, error) {
	return c.journal.DeleteScopes(ctx, token, journalID, holderType, holderID, permissions)
}

// Entry operations (spire).

func (c *Client) CreateEntry(ctx context.Context, token string, journalID uuid.UUID, req EntryRequest) (Entry, error) {
	return c.journal.CreateEntry(ctx, token, journalID, req)
}

func (c *Client) CreateEntries(ctx context.Context, token string, journalID uuid.UUID, entries []EntryRequest) (Entries, error) {
	return c.journal.CreateEntries(ctx, token, journalID, entries)
}

func (c *Client) GetEntry(ctx context.Context, token string, journalID, entryID uuid.UUID) (Entry, error) {
	return c.journal.GetEntry(ctx, token, journalID, entryID)
}

func (c *Client) GetEntries(ctx context.Context, token string, journalID uuid.UUID) (Entries, error) {
	return c.journal.ListEntries(ctx, token, journalID)
}

func (c *Client) GetEntryContent(ctx context.Context, token string, journalID, entryID uuid.UUID) (EntryContent, error) {
	return c.journal.EntryContent(ctx, token, journalID, entryID)
}

func (c *Client) UpdateEntryContent(ctx context.Context, token string, journalID, entryID uuid.UUID, content EntryContent, tags []string, tagsAction TagsAction) (EntryContent, error) {
	return c.journal.UpdateEntryContent(ctx, token, journalID, entryID, content, tags, tagsAction)
}

func (c *Client) DeleteEntry(ctx context.Context, token string, journalID, entryID uuid.UUID) (Entry, error) {
	return c.journal.DeleteEntry(ctx, token, journalID, entryID)
}

// Tag operations (spire).

func (c *Client) GetMostUsedTags(ctx context.Context, token string, journalID uuid.UUID) ([]TagUsage, error) {
	return c.journal.MostUsedTags(ctx, token, journalID)
}

func (c *Client) CreateTags(ctx context.Context, token string, journalID, entryID uuid.UUID, tags []string) ([]string, error) {
	return c.journal.CreateTags(ctx, token, journalID, entryID, tags)
}

func (c *Client) GetTags(ctx context.Context, token string, journalID, entryID uuid.UUID) (EntryTags, error) {
	return c.journal.Tags(ctx, token, journalID, entryID)
}

func (c *Client) UpdateTags(ctx context.Context, token string, journalID, entryID uuid.UUID, tags []string) ([]string, error) {
	return c.journal.UpdateTags(ctx, token, journalID, entryID, tags)
}

func (c *Client) DeleteTag(ctx context.Context, token string, journalID, entryID uuid.UUID, tag string) (EntryTags, error) {
	return c.journal.DeleteTag(ctx, token, journalID, entryID, tag)
}

// Search (spire).

func (c *Client) Search(ctx context.Context, token string, journalID uuid.UUID, query string, opts SearchOptions) (SearchResults, error) {
	return c.journal.Search(ctx, token, journalID, query, opts)
}

// Humbug (spire).

func (c *Client) GetHumbugIntegrations(ctx context.Context, token string, groupID *uuid.UUID) (HumbugIntegrationsList, error) {
	return c.humbug.Integrations(ctx, token, groupID)
}

// Users returns the underlying user client.
func (c *Client) Users() *UserClient { return c.user }

// Groups returns the underlying group client.
func (c *Client) Groups() *GroupClient { return c.group }

// Resources returns the underlying resource client.
func (c *Client) Resources() *ResourceClient { return c.resource }

// Journals returns the underlying journal client.
func (c *Client) Journals() *JournalClient { return c.journal }

// Humbug returns the underlying humbug client.
func (c *Client) Humbug() *HumbugClient { return c.humbug }
