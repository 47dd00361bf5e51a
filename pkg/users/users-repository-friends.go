package users

import (
	"github.com/mattn/go-sqlite3"
)

// GetFriends returns the users on outgoing friendship edges of the given
// user, or ErrNotFound when the username itself doesn't resolve. Friendship
// is directed: A listing B doesn't imply B lists A.
func (ur *userRepository) GetFriends(username string) ([]Friend, error) {

	id, err := ur.getUserId(username)
	if err != nil {
		return nil, err
	}

	// initialise an empty slice to avoid null serialisation
	var friends = make([]Friend, 0)

	rows, err := ur.Connection.Query(`
		SELECT friends.friend_id, users.username
		FROM friends JOIN users ON friends.friend_id = users.user_id
		WHERE friends.user_id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		var friend Friend
		if err = rows.Scan(&friend.Id, &friend.Username); err != nil {
			return friends, err
		}
		friends = append(friends, friend)
	}

	if err = rows.Err(); err != nil {
		return friends, err
	}
	if err = rows.Close(); err != nil {
		return friends, err
	}

	return friends, nil
}

// AddFriend inserts a directed friendship edge. Both endpoints must resolve
// to existing users, else ErrNotFound; an existing edge yields ErrDupFriend.
func (ur *userRepository) AddFriend(username string, friendName string) error {

	userId, err := ur.getUserId(username)
	if err != nil {
		return err
	}
	friendId, err := ur.getUserId(friendName)
	if err != nil {
		return err
	}

	_, err = ur.Connection.Exec(
		"INSERT INTO friends (user_id, friend_id) VALUES (?, ?)",
		userId,
		friendId,
	)

	// detects whether the edge already exists
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrDupFriend
		}
	}

	return err
}

// RemoveFriend deletes the directed edge between the two users. A missing
// edge, like a missing endpoint, results in ErrNotFound.
func (ur *userRepository) RemoveFriend(username string, friendName string) error {

	userId, err := ur.getUserId(username)
	if err != nil {
		return err
	}
	friendId, err := ur.getUserId(friendName)
	if err != nil {
		return err
	}

	result, err := ur.Connection.Exec(
		"DELETE FROM friends WHERE user_id = ? AND friend_id = ?",
		userId,
		friendId,
	)
	if err != nil {
		return err
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
