package users

import (
	"database/sql"
	"errors"
	"fmt"
)

type UserRepository interface {
	GetAll() ([]User, error)
	GetByUsername(username string) (User, error)
	GetUsernameById(id int64) (string, error)
	Add(data AddUserData) (User, error)
	Update(username string, data UpdateUserData) (User, error)
	Delete(username string) (bool, error)

	GetFriends(username string) ([]Friend, error)
	AddFriend(username string, friendName string) error
	RemoveFriend(username string, friendName string) error
}

type userRepository struct {
	Connection *sql.DB
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrDupFriend     = errors.New("users are already friends")
)

func NewRepository(connection *sql.DB) UserRepository {
	return &userRepository{connection}
}

func (ur *userRepository) GetAll() (users []User, err error) {
	rows, err := ur.Connection.Query(
		"SELECT user_id, username, password, avatar, description, visibility FROM users ORDER BY user_id")
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return users, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return users, err
	}

	if err = rows.Close(); err != nil {
		return users, err
	}

	return users, err
}

// GetByUsername either returns the user matching the username, or ErrNotFound.
func (ur *userRepository) GetByUsername(username string) (User, error) {
	row := ur.Connection.QueryRow(
		"SELECT user_id, username, password, avatar, description, visibility FROM users WHERE username = ?",
		username)
	user, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

// GetUsernameById resolves a surrogate user id back to its username.
func (ur *userRepository) GetUsernameById(id int64) (username string, err error) {
	err = ur.Connection.QueryRow("SELECT username FROM users WHERE user_id = ?", id).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return username, err
}

// getUserId resolves a username to the surrogate key, or ErrNotFound.
func (ur *userRepository) getUserId(username string) (id int64, err error) {
	err = ur.Connection.QueryRow("SELECT user_id FROM users WHERE username = ?", username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

// Add creates a new user. Username uniqueness is enforced by an existence
// lookup before the insert, so a duplicate yields ErrUsernameTaken rather
// than a constraint violation.
func (ur *userRepository) Add(data AddUserData) (User, error) {

	if _, err := ur.getUserId(data.Username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	result, err := ur.Connection.Exec(
		"INSERT INTO users(username, password, avatar, description, visibility) VALUES(?, ?, ?, ?, ?)",
		data.Username, data.Password, data.Avatar, data.Description, data.Visibility)
	if err != nil {
		return User{}, fmt.Errorf("couldn't add user %q: %w", data.Username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return User{}, err
	}

	var user = User{Id: id, Username: data.Username}
	if data.Password != nil {
		user.Password = *data.Password
	}
	if data.Avatar != nil {
		user.Avatar = *data.Avatar
	}
	if data.Description != nil {
		user.Description = *data.Description
	}
	if data.Visibility != nil {
		user.Visibility = *data.Visibility
	}
	return user, nil
}

// Update replaces the user's password, avatar, description and visibility
// wholesale; absent properties are written as NULL. Returns ErrNotFound when
// the username doesn't resolve.
func (ur *userRepository) Update(username string, data UpdateUserData) (User, error) {

	id, err := ur.getUserId(username)
	if err != nil {
		return User{}, err
	}

	_, err = ur.Connection.Exec(
		"UPDATE users SET password = ?, avatar = ?, description = ?, visibility = ? WHERE user_id = ?",
		data.Password, data.Avatar, data.Description, data.Visibility, id)
	if err != nil {
		return User{}, fmt.Errorf("couldn't update user %q: %w", username, err)
	}

	return ur.GetByUsername(username)
}

// Delete removes the user and, through cascading deletes, every friendship
// edge touching it; the user's exercises survive with their owner reference
// cleared. A missing username results in (false, nil) rather than an error.
func (ur *userRepository) Delete(username string) (bool, error) {
	result, err := ur.Connection.Exec("DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return false, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// scanUser maps a users row onto a User record; nullable columns collapse to
// their zero values.
func scanUser(scan func(...any) error) (User, error) {
	var (
		user                  User
		password, description sql.NullString
		avatar, visibility    sql.NullInt64
	)
	if err := scan(&user.Id, &user.Username, &password, &avatar, &description, &visibility); err != nil {
		return User{}, err
	}
	user.Password = password.String
	user.Avatar = avatar.Int64
	user.Description = description.String
	user.Visibility = visibility.Int64
	return user, nil
}
