package mason

import (
	"fmt"
	"net/http"
)

// The control vocabulary is static per resource type: a user document always
// advertises the same affordances regardless of runtime state.

const (
	UserSchemaURL     = "/schema/user/"
	ExerciseSchemaURL = "/schema/exercise/"
)

func UsersHref() string {
	return "/users/"
}

func UserHref(username string) string {
	return "/users/" + username + "/"
}

func FriendsHref(username string) string {
	return "/users/" + username + "/friends"
}

func ExercisesHref() string {
	return "/exercises/"
}

func ExerciseHref(id int64) string {
	return fmt.Sprintf("/exercises/%d/", id)
}

// Self points back at the enclosing resource.
func Self(href string) Control {
	return Control{Href: href}
}

func GetUserInformation(username string) Control {
	return Control{
		Title:    "get user information",
		Href:     UserHref(username),
		Encoding: "json",
		Method:   http.MethodGet,
	}
}

func ModifyUser(username string) Control {
	return Control{
		Title:     "modify user",
		Href:      UserHref(username),
		Encoding:  "json",
		Method:    http.MethodPut,
		SchemaURL: UserSchemaURL,
	}
}

func DeleteUser(username string) Control {
	return Control{
		Title:    "delete user",
		Href:     UserHref(username),
		Encoding: "json",
		Method:   http.MethodDelete,
	}
}

func ListUsers() Control {
	return Control{
		Title:    "list users",
		Href:     UsersHref(),
		Encoding: "json",
		Method:   http.MethodGet,
	}
}

func AddUser() Control {
	return Control{
		Title:     "add user",
		Href:      UsersHref(),
		Encoding:  "json",
		Method:    http.MethodPost,
		SchemaURL: UserSchemaURL,
	}
}

func ListExercises() Control {
	return Control{
		Title:    "list exercises",
		Href:     ExercisesHref(),
		Encoding: "json",
		Method:   http.MethodGet,
	}
}

func AddExercise() Control {
	return Control{
		Title:     "add exercise",
		Href:      ExercisesHref(),
		Encoding:  "json",
		Method:    http.MethodPost,
		SchemaURL: ExerciseSchemaURL,
	}
}

func EditExercise(id int64) Control {
	return Control{
		Title:     "edit exercise",
		Href:      ExerciseHref(id),
		Encoding:  "json",
		Method:    http.MethodPut,
		SchemaURL: ExerciseSchemaURL,
	}
}

func DeleteExercise(id int64) Control {
	return Control{
		Title:  "delete exercise",
		Href:   ExerciseHref(id),
		Method: http.MethodDelete,
	}
}
