package sqlstore

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pliu/parley/internal/models"
)

func createTestUser(t *testing.T, s *SQLStore, username, email string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: email, PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(u))
	return u
}

func TestCreateUserAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)

	u := createTestUser(t, s, "alice", "alice@example.com")
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	createTestUser(t, s, "alice", "alice@example.com")
	err := s.CreateUser(&models.User{Username: "alice", Email: "other@example.com", PasswordHash: "hash"})
	assert.Error(t, err, "unique index should reject the duplicate")
}

func TestGetUserByID(t *testing.T) {
	s := newTestStore(t)

	created := createTestUser(t, s, "alice", "alice@example.com")

	got, err := s.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = s.GetUserByID(67)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGetUserByUsernameAndEmail(t *testing.T) {
	s := newTestStore(t)

	created := createTestUser(t, s, "alice", "alice@example.com")

	byName, err := s.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := s.GetUserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = s.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGetAllUsersOrderedByID(t *testing.T) {
	s := newTestStore(t)

	createTestUser(t, s, "carol", "carol@example.com")
	createTestUser(t, s, "alice", "alice@example.com")
	createTestUser(t, s, "bob", "bob@example.com")

	users, err := s.GetAllUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.True(t, users[0].ID < users[1].ID && users[1].ID < users[2].ID)
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)

	u := createTestUser(t, s, "alice", "alice@example.com")
	u.Username = "alicia"
	u.Email = "alicia@example.com"
	require.NoError(t, s.UpdateUser(u))

	got, err := s.GetUserByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", got.Username)
	assert.Equal(t, "alicia@example.com", got.Email)
}

func TestGetUserChats(t *testing.T) {
	s := newTestStore(t)

	u := createTestUser(t, s, "alice", "alice@example.com")
	other := createTestUser(t, s, "bob", "bob@example.com")

	mine := &models.Chat{Name: "mine", OwnerID: u.ID}
	require.NoError(t, s.CreateChat(mine))
	theirs := &models.Chat{Name: "theirs", OwnerID: other.ID}
	require.NoError(t, s.CreateChat(theirs))

	require.NoError(t, s.AddMember(mine.ID, u.ID))
	require.NoError(t, s.AddMember(theirs.ID, other.ID))

	chats, err := s.GetUserChats(u.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "mine", chats[0].Name)
}
