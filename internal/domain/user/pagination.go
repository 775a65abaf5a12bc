package user

// Page is one slice of the ID-ordered user listing.
type Page struct {
	Users      []User  // Users on this page, ascending by ID
	NextCursor *Cursor // NextCursor resumes after the last user; nil when HasMore is false
	HasMore    bool    // HasMore reports whether rows exist past this page
}

// NewPage builds a page from rows fetched with limit+1.
// The extra row only signals that another page exists and is trimmed off.
func NewPage(rows []User, limit int64) *Page {
	if rows == nil {
		rows = []User{}
	}

	if limit <= 0 || int64(len(rows)) <= limit {
		return &Page{Users: rows}
	}

	rows = rows[:limit]
	next := Cursor{LastID: rows[len(rows)-1].ID}

	return &Page{
		Users:      rows,
		NextCursor: &next,
		HasMore:    true,
	}
}
