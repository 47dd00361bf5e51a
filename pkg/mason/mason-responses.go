package mason

import (
	"encoding/json"
	"net/http"
	"strings"
)

func Ok(writer http.ResponseWriter, envelope *Envelope, profile string) {
	encodeEnvelope(writer, http.StatusOK, envelope, profile)
}

func Created(writer http.ResponseWriter, envelope *Envelope, profile string) {
	encodeEnvelope(writer, http.StatusCreated, envelope, profile)
}

func NoContent(writer http.ResponseWriter) {
	// no content type header needed
	writer.WriteHeader(http.StatusNoContent)
}

func NotFound(writer http.ResponseWriter, title string, message string) {
	encodeError(writer, http.StatusNotFound, title, message)
}

func BadRequest(writer http.ResponseWriter, title string, message string) {
	encodeError(writer, http.StatusBadRequest, title, message)
}

func Conflict(writer http.ResponseWriter, title string, message string) {
	encodeError(writer, http.StatusConflict, title, message)
}

func ValidationError(writer http.ResponseWriter, err error) {
	encodeError(writer, http.StatusBadRequest, "Malformed input format", err.Error())
}

func UnsupportedMediaType(writer http.ResponseWriter) {
	encodeError(writer, http.StatusUnsupportedMediaType, "Unsupported media type", "Use a JSON compatible format")
}

func InternalServerError(writer http.ResponseWriter) {
	encodeError(writer, http.StatusInternalServerError, "Internal error",
		"The system has failed. Please, contact the administrator")
}

func encodeError(writer http.ResponseWriter, status int, title string, message string) {
	encodeEnvelope(writer, status, NewError(title, message), ErrorProfile)
}

func encodeEnvelope(writer http.ResponseWriter, status int, envelope *Envelope, profile string) {
	writer.Header().Set("Content-Type", MediaType+";"+profile)
	writer.WriteHeader(status)
	if envelope == nil {
		return
	}
	// the status line is already sent; an encoding failure can only truncate the body
	_ = json.NewEncoder(writer).Encode(envelope)
}

// RequireJSON rejects requests whose bodies aren't declared as JSON with a
// 415 response, before the wrapped handler runs.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var declared = request.Header.Get("Content-Type")
		if mediaType := strings.TrimSpace(strings.Split(declared, ";")[0]); mediaType != JSONMediaType {
			UnsupportedMediaType(writer)
			return
		}
		next.ServeHTTP(writer, request)
	})
}
