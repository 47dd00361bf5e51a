package users

import (
	"io"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkemppa/exertrack/pkg/storage/sqlite"
)

func newTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	storage, err := sqlite.New(logger, filepath.Join(t.TempDir(), "exertrack.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = storage.Connection.Close() })
	return storage
}

func newTestRepository(t *testing.T) (UserRepository, *sqlite.Storage) {
	t.Helper()
	storage := newTestStorage(t)
	return NewRepository(storage.Connection), storage
}

func ptr[T any](value T) *T { return &value }

func kalleData() AddUserData {
	return AddUserData{
		Username:    "kalle",
		Password:    ptr("hunter2"),
		Avatar:      ptr(int64(123)),
		Description: ptr("bio"),
		Visibility:  ptr(int64(1)),
	}
}

func TestAdd_RoundTrip(t *testing.T) {
	ur, _ := newTestRepository(t)

	added, err := ur.Add(kalleData())
	require.NoError(t, err)
	assert.NotZero(t, added.Id)

	fetched, err := ur.GetByUsername("kalle")
	require.NoError(t, err)
	assert.Equal(t, added, fetched)
	assert.Equal(t, "hunter2", fetched.Password)
	assert.Equal(t, int64(123), fetched.Avatar)
	assert.Equal(t, "bio", fetched.Description)
	assert.Equal(t, int64(1), fetched.Visibility)
}

func TestAdd_DuplicateUsername(t *testing.T) {
	ur, _ := newTestRepository(t)

	_, err := ur.Add(kalleData())
	require.NoError(t, err)

	// a second creation signals a conflict without mutating the existing record
	var duplicate = kalleData()
	duplicate.Password = ptr("other")
	_, err = ur.Add(duplicate)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	existing, err := ur.GetByUsername("kalle")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", existing.Password)
}

func TestGetByUsername_Unknown(t *testing.T) {
	ur, _ := newTestRepository(t)

	_, err := ur.GetByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAll_InsertionOrder(t *testing.T) {
	ur, _ := newTestRepository(t)

	for _, username := range []string{"first", "second", "third"} {
		var data = kalleData()
		data.Username = username
		_, err := ur.Add(data)
		require.NoError(t, err)
	}

	users, err := ur.GetAll()
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "first", users[0].Username)
	assert.Equal(t, "second", users[1].Username)
	assert.Equal(t, "third", users[2].Username)

	// surrogate ids increase monotonically
	assert.Less(t, users[0].Id, users[1].Id)
	assert.Less(t, users[1].Id, users[2].Id)
}

func TestGetUsernameById(t *testing.T) {
	ur, _ := newTestRepository(t)

	added, err := ur.Add(kalleData())
	require.NoError(t, err)

	username, err := ur.GetUsernameById(added.Id)
	require.NoError(t, err)
	assert.Equal(t, "kalle", username)

	_, err = ur.GetUsernameById(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_ReplacesWholesale(t *testing.T) {
	ur, _ := newTestRepository(t)

	_, err := ur.Add(kalleData())
	require.NoError(t, err)

	updated, err := ur.Update("kalle", UpdateUserData{
		Password:   ptr("salasana"),
		Avatar:     ptr(int64(999)),
		Visibility: ptr(int64(0)),
		// description left out on purpose
	})
	require.NoError(t, err)

	assert.Equal(t, "salasana", updated.Password)
	assert.Equal(t, int64(999), updated.Avatar)
	assert.Equal(t, int64(0), updated.Visibility)

	// absent properties become null, not their previous values
	assert.Empty(t, updated.Description)
}

func TestUpdate_UnknownUser(t *testing.T) {
	ur, _ := newTestRepository(t)

	_, err := ur.Update("nobody", UpdateUserData{Password: ptr("pwd")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ur, _ := newTestRepository(t)

	_, err := ur.Add(kalleData())
	require.NoError(t, err)

	deleted, err := ur.Delete("kalle")
	require.NoError(t, err)
	assert.True(t, deleted)

	// double deletion reports false rather than an error
	deleted, err = ur.Delete("kalle")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = ur.GetByUsername("kalle")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_CascadesFriendsButDetachesExercises(t *testing.T) {
	ur, storage := newTestRepository(t)

	var first, second = kalleData(), kalleData()
	first.Username = "Dakka"
	second.Username = "Sekoitus"
	dakka, err := ur.Add(first)
	require.NoError(t, err)
	_, err = ur.Add(second)
	require.NoError(t, err)

	require.NoError(t, ur.AddFriend("Dakka", "Sekoitus"))
	require.NoError(t, ur.AddFriend("Sekoitus", "Dakka"))

	_, err = storage.Connection.Exec(
		`INSERT INTO exercise(user_id, username, type, value, valueunit, date, time, timeunit)
		 VALUES(?, 'Dakka', 'run', 100, 'km', '12.12.2012', 500, 'h')`, dakka.Id)
	require.NoError(t, err)

	deleted, err := ur.Delete("Dakka")
	require.NoError(t, err)
	require.True(t, deleted)

	// every edge touching the deleted user is gone
	var edges int
	require.NoError(t, storage.Connection.QueryRow("SELECT COUNT(*) FROM friends").Scan(&edges))
	assert.Equal(t, 0, edges)

	// the exercise row survives with its owner reference cleared
	var count int
	require.NoError(t, storage.Connection.QueryRow("SELECT COUNT(*) FROM exercise").Scan(&count))
	assert.Equal(t, 1, count)

	var userId, username any
	require.NoError(t, storage.Connection.QueryRow("SELECT user_id, username FROM exercise").Scan(&userId, &username))
	assert.Nil(t, userId)
	assert.Nil(t, username)
}
