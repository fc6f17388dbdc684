package bugout

// Role of a user within a group.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// TokenType distinguishes how a token was issued.
type TokenType string

const (
	TokenTypeBugout TokenType = "bugout"
	TokenTypeSlack  TokenType = "slack"
	TokenTypeGithub TokenType = "github"
)

// HolderType is the kind of principal a permission is granted to.
type HolderType string

const (
	HolderTypeUser  HolderType = "user"
	HolderTypeGroup HolderType = "group"
)

// AuthType is the Authorization header scheme.
type AuthType string

const (
	AuthTypeBearer AuthType = "Bearer"
	AuthTypeWeb3   AuthType = "Web3"
)

// JournalType selects the journal flavor at creation time.
type JournalType string

const (
	JournalTypeDefault JournalType = "DEFAULT"
	JournalTypeHumbug  JournalType = "HUMBUG"
)

// SearchOrder controls the sort direction of search results by creation
// time.
type SearchOrder string

const (
	SearchOrderAscending  SearchOrder = "asc"
	SearchOrderDescending SearchOrder = "desc"
)

// TagsAction controls how tags supplied with an entry content update are
// combined with the entry's existing tags.
type TagsAction string

const (
	TagsActionMerge   TagsAction = "merge"
	TagsActionReplace TagsAction = "replace"
)
