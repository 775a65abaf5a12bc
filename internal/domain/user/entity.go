package user

// User represents a user record. Records are immutable once the store assigns an ID.
type User struct {
	ID    int64  // ID is assigned by the store on insert and strictly increasing
	Name  string // Name is the display name of the user
	Email string // Email is the contact address of the user
}
