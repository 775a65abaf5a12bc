package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeUsers(ids ...int64) []User {
	users := make([]User, len(ids))
	for i, id := range ids {
		users[i] = User{ID: id, Name: "user", Email: "user@example.com"}
	}
	return users
}

func TestNewPage_Overflow(t *testing.T) {
	page := NewPage(makeUsers(1, 2, 3, 4), 3)

	assert.True(t, page.HasMore)
	require.Len(t, page.Users, 3)
	assert.Equal(t, int64(3), page.Users[2].ID)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, int64(3), page.NextCursor.LastID)
}

func TestNewPage_ExactlyLimit(t *testing.T) {
	page := NewPage(makeUsers(1, 2, 3), 3)

	assert.False(t, page.HasMore)
	assert.Len(t, page.Users, 3)
	assert.Nil(t, page.NextCursor)
}

func TestNewPage_Empty(t *testing.T) {
	page := NewPage(nil, 20)

	assert.False(t, page.HasMore)
	assert.NotNil(t, page.Users)
	assert.Empty(t, page.Users)
	assert.Nil(t, page.NextCursor)
}
