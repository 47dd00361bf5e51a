package users

import (
	"github.com/go-ozzo/ozzo-validation"
)

var usernameRules = []validation.Rule{validation.Required, validation.Length(1, 64)}

// User is a full user record, as persisted. The surrogate Id and the
// Password never leave the repository layer in response documents.
type User struct {
	Id          int64
	Username    string
	Password    string
	Avatar      int64
	Description string
	Visibility  int64
}

// userDocument is the serialisable subset of a user embedded in envelopes.
type userDocument struct {
	Username    string `json:"username"`
	Avatar      int64  `json:"avatar"`
	Description string `json:"description"`
	Visibility  int64  `json:"visibility"`
}

func (user User) document() userDocument {
	return userDocument{
		Username:    user.Username,
		Avatar:      user.Avatar,
		Description: user.Description,
		Visibility:  user.Visibility,
	}
}

// AddUserData carries a user creation request. Pointer fields distinguish an
// absent property from a zero value; all of them must be present.
type AddUserData struct {
	Username    string  `json:"username"`
	Password    *string `json:"password"`
	Avatar      *int64  `json:"avatar"`
	Description *string `json:"description"`
	Visibility  *int64  `json:"visibility"`
}

func (data AddUserData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Username, usernameRules...),
		validation.Field(&data.Password, validation.NotNil),
		validation.Field(&data.Avatar, validation.NotNil),
		validation.Field(&data.Description, validation.NotNil),
		validation.Field(&data.Visibility, validation.NotNil),
	)
}

// UpdateUserData replaces a user's mutable fields wholesale; properties left
// out of the request become NULL in storage. Partial updates aren't supported.
type UpdateUserData struct {
	Password    *string `json:"password"`
	Avatar      *int64  `json:"avatar"`
	Description *string `json:"description"`
	Visibility  *int64  `json:"visibility"`
}

func (data UpdateUserData) Validate() error {
	return nil
}

// Friends

type Friend struct {
	Id       int64
	Username string
}

// FriendData names the other endpoint of a friendship edge.
type FriendData struct {
	Friendname string `json:"friendname"`
}

func (data FriendData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Friendname, usernameRules...),
	)
}
