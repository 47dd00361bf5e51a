// Package mason builds the hypermedia documents served by the API: entity
// data wrapped in an envelope of named controls, each control describing one
// valid next request. Clients are expected to navigate through `@controls`
// rather than hardcode URLs.
package mason

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	// MediaType is the hypermedia flavoured JSON media type carried by all
	// non-empty responses, optionally suffixed with a resource profile.
	MediaType = "application/vnd.mason+json"

	JSONMediaType = "application/json"

	UserProfile     = "/profiles/user-profile/"
	ExerciseProfile = "/profiles/exercise-profile/"
	ErrorProfile    = "/profiles/error-profile/"
)

// Control is a named affordance: one valid next API call from the current resource.
type Control struct {
	Title     string `json:"title,omitempty"`
	Href      string `json:"href"`
	Method    string `json:"method,omitempty"`
	Encoding  string `json:"encoding,omitempty"`
	SchemaURL string `json:"schemaUrl,omitempty"`
}

// Error describes a failed request; mutually exclusive with entity content.
type Error struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Envelope wraps entity data, or a list of entity items, with controls.
// Entity fields serialise flat, beside the "@controls" map, matching the
// Mason document layout.
type Envelope struct {
	data       any
	items      []*Envelope
	controls   map[string]Control
	hasItems   bool
	innerError *Error
}

// New creates an envelope around the given entity data, which must marshal
// to a JSON object.  A nil entity yields a pure controls document.
func New(data any) *Envelope {
	return &Envelope{data: data, controls: make(map[string]Control)}
}

// NewError creates an envelope in error mode: its document carries the
// "@error" object alone.
func NewError(title, message string) *Envelope {
	return &Envelope{
		innerError: &Error{Title: title, Message: message},
		controls:   make(map[string]Control),
	}
}

// AddControl registers a named control; returns the envelope for chaining.
func (e *Envelope) AddControl(name string, control Control) *Envelope {
	e.controls[name] = control
	return e
}

// AddItem appends a sub-document to the envelope's "items" list.
func (e *Envelope) AddItem(item *Envelope) *Envelope {
	e.hasItems = true
	e.items = append(e.items, item)
	return e
}

// EnsureItems forces the "items" key into the document, so collections with
// no entries still serialise an empty list.
func (e *Envelope) EnsureItems() *Envelope {
	e.hasItems = true
	return e
}

func (e *Envelope) MarshalJSON() ([]byte, error) {

	if e.innerError != nil {
		return json.Marshal(map[string]*Error{"@error": e.innerError})
	}

	var document = make(map[string]any)

	// flatten the entity's fields into the document root
	if e.data != nil {
		encoded, err := json.Marshal(e.data)
		if err != nil {
			return nil, err
		}
		if err = json.Unmarshal(encoded, &document); err != nil {
			return nil, fmt.Errorf("envelope data must marshal to a JSON object: %w", err)
		}
	}

	if e.hasItems {
		// an empty items list serialises as [] rather than null
		var items = e.items
		if items == nil {
			items = make([]*Envelope, 0)
		}
		document["items"] = items
	}

	document["@controls"] = e.controls
	return json.Marshal(document)
}

// DecodeValidate parses the JSON request body into the given payload type
// and runs its validation rules.
func DecodeValidate[T Validator](request *http.Request) (data T, err error) {
	if err = json.NewDecoder(request.Body).Decode(&data); err != nil {
		return data, err
	}
	return data, data.Validate()
}

type Validator interface {
	Validate() error
}
