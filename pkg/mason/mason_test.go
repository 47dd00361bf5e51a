package mason

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalToMap(t *testing.T, envelope *Envelope) map[string]any {
	t.Helper()
	encoded, err := json.Marshal(envelope)
	require.NoError(t, err)

	var document map[string]any
	require.NoError(t, json.Unmarshal(encoded, &document))
	return document
}

func TestEnvelope_FlattensEntityFields(t *testing.T) {
	envelope := New(struct {
		Username string `json:"username"`
		Avatar   int64  `json:"avatar"`
	}{"kalle", 123}).
		AddControl("self", Self(UserHref("kalle")))

	document := marshalToMap(t, envelope)

	// entity fields sit flat beside the controls map
	assert.Equal(t, "kalle", document["username"])
	assert.Equal(t, float64(123), document["avatar"])

	controls, ok := document["@controls"].(map[string]any)
	require.True(t, ok)
	self, ok := controls["self"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/users/kalle/", self["href"])
}

func TestEnvelope_Controls(t *testing.T) {
	document := marshalToMap(t, New(nil).
		AddControl("add user", AddUser()).
		AddControl("list exercises", ListExercises()))

	controls := document["@controls"].(map[string]any)

	addUser := controls["add user"].(map[string]any)
	assert.Equal(t, "/users/", addUser["href"])
	assert.Equal(t, http.MethodPost, addUser["method"])
	assert.Equal(t, "json", addUser["encoding"])
	assert.Equal(t, UserSchemaURL, addUser["schemaUrl"])

	listExercises := controls["list exercises"].(map[string]any)
	assert.Equal(t, "/exercises/", listExercises["href"])
	assert.Equal(t, http.MethodGet, listExercises["method"])

	// controls without a schema shouldn't serialise an empty schemaUrl
	_, found := listExercises["schemaUrl"]
	assert.False(t, found)
}

func TestEnvelope_Items(t *testing.T) {
	envelope := New(nil).AddControl("self", Self(UsersHref()))
	envelope.AddItem(New(struct {
		Username string `json:"username"`
	}{"kalle"}).AddControl("self", Self(UserHref("kalle"))))

	document := marshalToMap(t, envelope)

	items, ok := document["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	item := items[0].(map[string]any)
	assert.Equal(t, "kalle", item["username"])
	assert.Contains(t, item, "@controls")
}

func TestEnvelope_EmptyItemsSerialiseAsList(t *testing.T) {
	encoded, err := json.Marshal(New(nil).EnsureItems())
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"items":[]`)
}

func TestEnvelope_ErrorMode(t *testing.T) {
	document := marshalToMap(t, NewError("Unknown user", "There is no user with username kalle"))

	innerError, ok := document["@error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Unknown user", innerError["title"])
	assert.Equal(t, "There is no user with username kalle", innerError["message"])

	// error mode excludes entity content and controls
	assert.NotContains(t, document, "@controls")
	assert.NotContains(t, document, "items")
}

func TestEnvelope_ErrorModeToleratesControls(t *testing.T) {
	var envelope *Envelope
	assert.NotPanics(t, func() {
		envelope = NewError("Unknown user", "no such user").
			AddControl("self", Self(UsersHref()))
	})

	// added controls still stay out of the error document
	assert.NotContains(t, marshalToMap(t, envelope), "@controls")
}

func TestResponses_MediaType(t *testing.T) {
	recorder := httptest.NewRecorder()
	Ok(recorder, New(nil), UserProfile)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, MediaType+";"+UserProfile, recorder.Header().Get("Content-Type"))
}

func TestResponses_NotFound(t *testing.T) {
	recorder := httptest.NewRecorder()
	NotFound(recorder, "Unknown user", "no such user")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, MediaType+";"+ErrorProfile, recorder.Header().Get("Content-Type"))

	var document map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &document))
	assert.Contains(t, document, "@error")
}

func TestRequireJSON(t *testing.T) {
	nextCalled := false
	handler := RequireJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	}))

	request := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader("{}"))
	request.Header.Set("Content-Type", "text/plain")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnsupportedMediaType, recorder.Code)
	assert.False(t, nextCalled)
}

func TestRequireJSON_AcceptsParameters(t *testing.T) {
	nextCalled := false
	handler := RequireJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	}))

	request := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader("{}"))
	request.Header.Set("Content-Type", "application/json; charset=utf-8")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.True(t, nextCalled)
}

type testPayload struct {
	Name string `json:"name"`
}

func (data testPayload) Validate() error {
	return validation.ValidateStruct(&data, validation.Field(&data.Name, validation.Required))
}

func TestDecodeValidate(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"kalle"}`))
	data, err := DecodeValidate[testPayload](request)
	require.NoError(t, err)
	assert.Equal(t, "kalle", data.Name)
}

func TestDecodeValidate_Invalid(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	_, err := DecodeValidate[testPayload](request)
	assert.Error(t, err)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	_, err = DecodeValidate[testPayload](request)
	assert.Error(t, err)
}
