package user

// Limits applied to list and search requests.
const (
	DefaultListLimit   int64 = 20
	MaxListLimit       int64 = 100
	DefaultSearchLimit int64 = 10
	MaxSearchLimit     int64 = 50
)

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string `validate:"required,max=255"`
	Email string `validate:"required,max=255"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	ID    int64
	Name  string
	Email string
}

// ListUsersRequest asks for the page following Cursor.
// An empty Cursor starts from the lowest ID; a Limit outside [1, MaxListLimit]
// is normalized.
type ListUsersRequest struct {
	Cursor string
	Limit  int64
}

// ListUsersResponse represents one page of the ID-ordered listing.
type ListUsersResponse struct {
	Users      []User
	NextCursor *string
	HasMore    bool
	Count      int
}

// SearchUsersRequest represents a name-prefix search.
type SearchUsersRequest struct {
	Query string
	Limit int64
}

// SearchUsersResponse represents the matches of a name-prefix search.
type SearchUsersResponse struct {
	Results []User
	Count   int
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
}
