package users

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tkemppa/exertrack/pkg/mason"
	"github.com/tkemppa/exertrack/pkg/rest"
)

// getFriends handles the GET "/users/:username/friends" route.
func getFriends(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var username = rest.GetParam(request, "username")

		friends, err := ur.GetFriends(username)
		if errors.Is(err, ErrNotFound) {
			mason.NotFound(writer, "Unknown user",
				fmt.Sprintf("There is no user with username %s", username))
			return
		} else if err != nil {
			rest.GetLogger(request).WithError(err).Error("error fetching friends")
			mason.InternalServerError(writer)
			return
		}

		var envelope = mason.New(nil).
			AddControl("self", mason.Self(mason.FriendsHref(username))).
			AddControl("list users", mason.ListUsers()).
			EnsureItems()

		for _, friend := range friends {
			envelope.AddItem(mason.New(struct {
				Username string `json:"username"`
			}{friend.Username}).
				AddControl("self", mason.Self(mason.UserHref(friend.Username))).
				AddControl("get user information", mason.GetUserInformation(friend.Username)))
		}

		mason.Ok(writer, envelope, mason.UserProfile)
	}
}

// addFriend handles the POST "/users/:username/friends" route, inserting a
// directed edge from the route's user to the friend named in the body.
func addFriend(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var username = rest.GetParam(request, "username")

		data, err := mason.DecodeValidate[FriendData](request)
		if err != nil {
			mason.ValidationError(writer, err)
			return
		}

		switch err = ur.AddFriend(username, data.Friendname); {
		case err == nil:
			mason.NoContent(writer)
		case errors.Is(err, ErrNotFound):
			mason.NotFound(writer, "Unknown user",
				fmt.Sprintf("Either %s or %s doesn't name a user", username, data.Friendname))
		case errors.Is(err, ErrDupFriend):
			mason.BadRequest(writer, "Existing friendship",
				fmt.Sprintf("%s already lists %s as a friend", username, data.Friendname))
		default:
			rest.GetLogger(request).WithError(err).Error("error adding friend")
			mason.InternalServerError(writer)
		}
	}
}

// removeFriend handles the DELETE "/users/:username/friends" route; removing
// an absent edge reports 404.
func removeFriend(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var username = rest.GetParam(request, "username")

		data, err := mason.DecodeValidate[FriendData](request)
		if err != nil {
			mason.ValidationError(writer, err)
			return
		}

		switch err = ur.RemoveFriend(username, data.Friendname); {
		case err == nil:
			mason.NoContent(writer)
		case errors.Is(err, ErrNotFound):
			mason.NotFound(writer, "Unknown friendship",
				fmt.Sprintf("%s doesn't list %s as a friend", username, data.Friendname))
		default:
			rest.GetLogger(request).WithError(err).Error("error removing friend")
			mason.InternalServerError(writer)
		}
	}
}
