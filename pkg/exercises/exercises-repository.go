package exercises

import (
	"database/sql"
	"errors"
	"fmt"
)

type ExerciseRepository interface {
	GetAll() ([]Exercise, error)
	GetById(id int64) (Exercise, error)
	GetAllByUser(username string) ([]Exercise, error)
	Add(data AddExerciseData) (Exercise, error)
	Update(id int64, data UpdateExerciseData) error
	Delete(id int64) (bool, error)
}

type exerciseRepository struct {
	Connection *sql.DB
}

var (
	ErrNotFound    = errors.New("exercise not found")
	ErrUnknownUser = errors.New("exercise owner not found")
)

func NewRepository(connection *sql.DB) ExerciseRepository {
	return &exerciseRepository{connection}
}

const selectColumns = "exercise_id, user_id, username, type, value, valueunit, date, time, timeunit"

func (er *exerciseRepository) GetAll() (exercises []Exercise, err error) {
	rows, err := er.Connection.Query(
		"SELECT " + selectColumns + " FROM exercise ORDER BY exercise_id")
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		exercise, err := scanExercise(rows.Scan)
		if err != nil {
			return exercises, err
		}
		exercises = append(exercises, exercise)
	}

	if err = rows.Err(); err != nil {
		return exercises, err
	}
	if err = rows.Close(); err != nil {
		return exercises, err
	}

	return exercises, err
}

// GetById either returns the exercise matching the id, or ErrNotFound.
func (er *exerciseRepository) GetById(id int64) (Exercise, error) {
	row := er.Connection.QueryRow(
		"SELECT "+selectColumns+" FROM exercise WHERE exercise_id = ?", id)
	exercise, err := scanExercise(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, ErrNotFound
	}
	return exercise, err
}

// GetAllByUser returns the exercises logged under the given username; the
// lookup matches the denormalised owner column, so entries detached by their
// owner's deletion won't appear.
func (er *exerciseRepository) GetAllByUser(username string) (exercises []Exercise, err error) {
	rows, err := er.Connection.Query(
		"SELECT "+selectColumns+" FROM exercise WHERE username = ? ORDER BY exercise_id", username)
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		exercise, err := scanExercise(rows.Scan)
		if err != nil {
			return exercises, err
		}
		exercises = append(exercises, exercise)
	}

	if err = rows.Err(); err != nil {
		return exercises, err
	}
	if err = rows.Close(); err != nil {
		return exercises, err
	}

	return exercises, err
}

// Add creates a new exercise owned by the user the payload names; an
// unresolved username yields ErrUnknownUser. The new surrogate id is echoed
// back in the returned record.
func (er *exerciseRepository) Add(data AddExerciseData) (Exercise, error) {

	var userId int64
	err := er.Connection.QueryRow(
		"SELECT user_id FROM users WHERE username = ?", data.Username).Scan(&userId)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, ErrUnknownUser
	} else if err != nil {
		return Exercise{}, err
	}

	result, err := er.Connection.Exec(
		`INSERT INTO exercise(user_id, username, type, value, valueunit, date, time, timeunit)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		userId, data.Username, data.Type, data.Value, data.ValueUnit, data.Date, data.Time, data.TimeUnit)
	if err != nil {
		return Exercise{}, fmt.Errorf("couldn't add exercise for %q: %w", data.Username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Exercise{}, err
	}

	var exercise = Exercise{Id: id, UserId: userId, Username: data.Username}
	if data.Type != nil {
		exercise.Type = *data.Type
	}
	if data.Value != nil {
		exercise.Value = *data.Value
	}
	if data.ValueUnit != nil {
		exercise.ValueUnit = *data.ValueUnit
	}
	if data.Date != nil {
		exercise.Date = *data.Date
	}
	if data.Time != nil {
		exercise.Time = *data.Time
	}
	if data.TimeUnit != nil {
		exercise.TimeUnit = *data.TimeUnit
	}
	return exercise, nil
}

// Update replaces the measurement fields wholesale, leaving the owner
// reference untouched. Returns ErrNotFound when the id doesn't exist.
func (er *exerciseRepository) Update(id int64, data UpdateExerciseData) error {

	if _, err := er.GetById(id); err != nil {
		return err
	}

	_, err := er.Connection.Exec(
		"UPDATE exercise SET type = ?, value = ?, valueunit = ?, date = ?, time = ?, timeunit = ? WHERE exercise_id = ?",
		data.Type, data.Value, data.ValueUnit, data.Date, data.Time, data.TimeUnit, id)
	if err != nil {
		return fmt.Errorf("couldn't update exercise %d: %w", id, err)
	}
	return nil
}

// Delete removes the exercise; a missing id results in (false, nil).
func (er *exerciseRepository) Delete(id int64) (bool, error) {
	result, err := er.Connection.Exec("DELETE FROM exercise WHERE exercise_id = ?", id)
	if err != nil {
		return false, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// scanExercise maps an exercise row onto a record; the owner columns turn to
// zero values once the owning user has been deleted.
func scanExercise(scan func(...any) error) (Exercise, error) {
	var (
		exercise Exercise
		userId   sql.NullInt64
		username sql.NullString
	)
	if err := scan(
		&exercise.Id, &userId, &username, &exercise.Type, &exercise.Value,
		&exercise.ValueUnit, &exercise.Date, &exercise.Time, &exercise.TimeUnit,
	); err != nil {
		return Exercise{}, err
	}
	exercise.UserId = userId.Int64
	exercise.Username = username.String
	return exercise, nil
}
