package users

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tkemppa/exertrack/pkg/mason"
	"github.com/tkemppa/exertrack/pkg/rest"
)

func RegisterHandlers(engine rest.Engine, ur UserRepository) {
	engine.Get("/users/", getUsers(ur))
	engine.Post("/users/", addUser(ur), mason.RequireJSON)

	engine.Get("/users/:username/", getUser(ur))
	engine.Put("/users/:username/", updateUser(ur), mason.RequireJSON)
	engine.Delete("/users/:username/", deleteUser(ur), mason.RequireJSON)

	engine.Get("/users/:username/friends", getFriends(ur))
	engine.Post("/users/:username/friends", addFriend(ur), mason.RequireJSON)
	engine.Delete("/users/:username/friends", removeFriend(ur), mason.RequireJSON)
}

// userEnvelope wraps a single user document with its static control set.
func userEnvelope(user User) *mason.Envelope {
	return mason.New(user.document()).
		AddControl("self", mason.Self(mason.UserHref(user.Username))).
		AddControl("modify user", mason.ModifyUser(user.Username)).
		AddControl("delete user", mason.DeleteUser(user.Username)).
		AddControl("list users", mason.ListUsers()).
		AddControl("list exercises", mason.ListExercises())
}

// getUsers handles the GET "/users/" route; an empty collection reports 404.
func getUsers(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		users, err := ur.GetAll()
		if err != nil {
			rest.GetLogger(request).WithError(err).Error("error fetching users")
			mason.InternalServerError(writer)
			return
		}
		if len(users) == 0 {
			mason.NotFound(writer, "No users", "There are no users in the system")
			return
		}

		var envelope = mason.New(nil).
			AddControl("self", mason.Self(mason.UsersHref())).
			AddControl("add user", mason.AddUser()).
			AddControl("list exercises", mason.ListExercises())

		for _, user := range users {
			envelope.AddItem(mason.New(user.document()).
				AddControl("self", mason.Self(mason.UserHref(user.Username))).
				AddControl("get user information", mason.GetUserInformation(user.Username)).
				AddControl("modify user", mason.ModifyUser(user.Username)).
				AddControl("delete user", mason.DeleteUser(user.Username)))
		}

		mason.Ok(writer, envelope, mason.UserProfile)
	}
}

// addUser handles the POST "/users/" route.
func addUser(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		data, err := mason.DecodeValidate[AddUserData](request)
		if err != nil {
			mason.ValidationError(writer, err)
			return
		}

		user, err := ur.Add(data)
		switch {
		case err == nil:
			mason.Ok(writer, userEnvelope(user), mason.UserProfile)
		case errors.Is(err, ErrUsernameTaken):
			mason.Conflict(writer, "Existing user",
				fmt.Sprintf("A user with username %s already exists", data.Username))
		default:
			rest.GetLogger(request).WithError(err).Error("error adding user")
			mason.InternalServerError(writer)
		}
	}
}

// getUser handles the GET "/users/:username/" route.
func getUser(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var username = rest.GetParam(request, "username")

		user, err := ur.GetByUsername(username)
		switch {
		case err == nil:
			mason.Ok(writer, userEnvelope(user), mason.UserProfile)
		case errors.Is(err, ErrNotFound):
			mason.NotFound(writer, "Unknown user",
				fmt.Sprintf("There is no user with username %s", username))
		default:
			rest.GetLogger(request).WithError(err).Error("error fetching user")
			mason.InternalServerError(writer)
		}
	}
}

// updateUser handles the PUT "/users/:username/" route; the update replaces
// the mutable fields wholesale.
func updateUser(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var username = rest.GetParam(request, "username")

		data, err := mason.DecodeValidate[UpdateUserData](request)
		if err != nil {
			mason.ValidationError(writer, err)
			return
		}

		user, err := ur.Update(username, data)
		switch {
		case err == nil:
			mason.Ok(writer, userEnvelope(user), mason.UserProfile)
		case errors.Is(err, ErrNotFound):
			mason.NotFound(writer, "Unknown user",
				fmt.Sprintf("There is no user with username %s", username))
		default:
			rest.GetLogger(request).WithError(err).Error("error updating user")
			mason.InternalServerError(writer)
		}
	}
}

// deleteUser handles the DELETE "/users/:username/" route. Deleting an
// already removed user reports 404 rather than an error.
func deleteUser(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var username = rest.GetParam(request, "username")

		deleted, err := ur.Delete(username)
		switch {
		case err != nil:
			rest.GetLogger(request).WithError(err).Error("error deleting user")
			mason.InternalServerError(writer)
		case deleted:
			mason.NoContent(writer)
		default:
			mason.NotFound(writer, "Unknown user",
				fmt.Sprintf("There is no user with username %s", username))
		}
	}
}
