package exercises

import (
	"github.com/go-ozzo/ozzo-validation"
)

// Exercise is a single exercise log entry. The owner is referenced twice, by
// surrogate id and by username; both are set once at creation and cleared
// together when the owning user is deleted.
type Exercise struct {
	Id        int64
	UserId    int64
	Username  string
	Type      string
	Value     int64
	ValueUnit string
	Date      string
	Time      int64
	TimeUnit  string
}

// exerciseDocument is the serialisable shape embedded in envelopes.
type exerciseDocument struct {
	Id        int64  `json:"exercise_id"`
	Username  string `json:"username"`
	Type      string `json:"type"`
	Value     int64  `json:"value"`
	ValueUnit string `json:"valueunit"`
	Date      string `json:"date"`
	Time      int64  `json:"time"`
	TimeUnit  string `json:"timeunit"`
}

func (exercise Exercise) document() exerciseDocument {
	return exerciseDocument{
		Id:        exercise.Id,
		Username:  exercise.Username,
		Type:      exercise.Type,
		Value:     exercise.Value,
		ValueUnit: exercise.ValueUnit,
		Date:      exercise.Date,
		Time:      exercise.Time,
		TimeUnit:  exercise.TimeUnit,
	}
}

// AddExerciseData carries an exercise creation request; the username must
// name an existing user. All properties must be present.
type AddExerciseData struct {
	Username  string  `json:"username"`
	Type      *string `json:"type"`
	Value     *int64  `json:"value"`
	ValueUnit *string `json:"valueunit"`
	Date      *string `json:"date"`
	Time      *int64  `json:"time"`
	TimeUnit  *string `json:"timeunit"`
}

func (data AddExerciseData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Username, validation.Required),
		validation.Field(&data.Type, validation.NotNil),
		validation.Field(&data.Value, validation.NotNil),
		validation.Field(&data.ValueUnit, validation.NotNil),
		validation.Field(&data.Date, validation.NotNil),
		validation.Field(&data.Time, validation.NotNil),
		validation.Field(&data.TimeUnit, validation.NotNil),
	)
}

// UpdateExerciseData replaces an exercise's measurement fields wholesale; the
// owner reference is immutable.
type UpdateExerciseData struct {
	Type      *string `json:"type"`
	Value     *int64  `json:"value"`
	ValueUnit *string `json:"valueunit"`
	Date      *string `json:"date"`
	Time      *int64  `json:"time"`
	TimeUnit  *string `json:"timeunit"`
}

func (data UpdateExerciseData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Type, validation.NotNil),
		validation.Field(&data.Value, validation.NotNil),
		validation.Field(&data.ValueUnit, validation.NotNil),
		validation.Field(&data.Date, validation.NotNil),
		validation.Field(&data.Time, validation.NotNil),
		validation.Field(&data.TimeUnit, validation.NotNil),
	)
}
