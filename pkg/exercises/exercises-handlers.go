package exercises

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tkemppa/exertrack/pkg/mason"
	"github.com/tkemppa/exertrack/pkg/rest"
)

func RegisterHandlers(engine rest.Engine, er ExerciseRepository) {
	engine.Get("/exercises/", getExercises(er))
	engine.Post("/exercises/", addExercise(er), mason.RequireJSON)

	engine.Get("/exercises/:id/", getExercise(er))
	engine.Put("/exercises/:id/", updateExercise(er), mason.RequireJSON)
	engine.Delete("/exercises/:id/", deleteExercise(er))
}

// exerciseEnvelope wraps a single exercise document with its static control set.
func exerciseEnvelope(exercise Exercise) *mason.Envelope {
	return mason.New(exercise.document()).
		AddControl("self", mason.Self(mason.ExerciseHref(exercise.Id))).
		AddControl("edit", mason.EditExercise(exercise.Id)).
		AddControl("delete", mason.DeleteExercise(exercise.Id)).
		AddControl("list exercises", mason.ListExercises())
}

// getExerciseId parses the :id route segment; non-numeric ids behave like
// missing ones.
func getExerciseId(request *http.Request) (int64, error) {
	return strconv.ParseInt(rest.GetParam(request, "id"), 10, 64)
}

// getExercises handles the GET "/exercises/" route; an empty collection
// reports 404.
func getExercises(er ExerciseRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		exercises, err := er.GetAll()
		if err != nil {
			rest.GetLogger(request).WithError(err).Error("error fetching exercises")
			mason.InternalServerError(writer)
			return
		}
		if len(exercises) == 0 {
			mason.NotFound(writer, "No exercises", "There are no exercises in the system")
			return
		}

		var envelope = mason.New(nil).
			AddControl("self", mason.Self(mason.ExercisesHref())).
			AddControl("add exercise", mason.AddExercise()).
			AddControl("list users", mason.ListUsers())

		for _, exercise := range exercises {
			envelope.AddItem(mason.New(exercise.document()).
				AddControl("self", mason.Self(mason.ExerciseHref(exercise.Id))))
		}

		mason.Ok(writer, envelope, mason.ExerciseProfile)
	}
}

// addExercise handles the POST "/exercises/" route.
func addExercise(er ExerciseRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		data, err := mason.DecodeValidate[AddExerciseData](request)
		if err != nil {
			mason.ValidationError(writer, err)
			return
		}

		exercise, err := er.Add(data)
		switch {
		case err == nil:
			writer.Header().Set("Location", mason.ExerciseHref(exercise.Id))
			mason.Created(writer, exerciseEnvelope(exercise), mason.ExerciseProfile)
		case errors.Is(err, ErrUnknownUser):
			mason.NotFound(writer, "Unknown user",
				fmt.Sprintf("There is no user with username %s", data.Username))
		default:
			rest.GetLogger(request).WithError(err).Error("error adding exercise")
			mason.InternalServerError(writer)
		}
	}
}

// getExercise handles the GET "/exercises/:id/" route.
func getExercise(er ExerciseRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := getExerciseId(request)
		if err != nil {
			mason.NotFound(writer, "Unknown exercise",
				fmt.Sprintf("There is no exercise with id %s", rest.GetParam(request, "id")))
			return
		}

		exercise, err := er.GetById(id)
		switch {
		case err == nil:
			mason.Ok(writer, exerciseEnvelope(exercise), mason.ExerciseProfile)
		case errors.Is(err, ErrNotFound):
			mason.NotFound(writer, "Unknown exercise",
				fmt.Sprintf("There is no exercise with id %d", id))
		default:
			rest.GetLogger(request).WithError(err).Error("error fetching exercise")
			mason.InternalServerError(writer)
		}
	}
}

// updateExercise handles the PUT "/exercises/:id/" route.
func updateExercise(er ExerciseRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := getExerciseId(request)
		if err != nil {
			mason.NotFound(writer, "Unknown exercise",
				fmt.Sprintf("There is no exercise with id %s", rest.GetParam(request, "id")))
			return
		}

		data, err := mason.DecodeValidate[UpdateExerciseData](request)
		if err != nil {
			mason.ValidationError(writer, err)
			return
		}

		switch err = er.Update(id, data); {
		case err == nil:
			mason.NoContent(writer)
		case errors.Is(err, ErrNotFound):
			mason.NotFound(writer, "Unknown exercise",
				fmt.Sprintf("There is no exercise with id %d", id))
		default:
			rest.GetLogger(request).WithError(err).Error("error updating exercise")
			mason.InternalServerError(writer)
		}
	}
}

// deleteExercise handles the DELETE "/exercises/:id/" route.
func deleteExercise(er ExerciseRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := getExerciseId(request)
		if err != nil {
			mason.NotFound(writer, "Unknown exercise",
				fmt.Sprintf("There is no exercise with id %s", rest.GetParam(request, "id")))
			return
		}

		deleted, err := er.Delete(id)
		switch {
		case err != nil:
			rest.GetLogger(request).WithError(err).Error("error deleting exercise")
			mason.InternalServerError(writer)
		case deleted:
			mason.NoContent(writer)
		default:
			mason.NotFound(writer, "Unknown exercise",
				fmt.Sprintf("There is no exercise with id %d", id))
		}
	}
}
