// Package todo defines the todo record and the wire codec that validates
// request payloads before they reach storage.
//
// Decoding never panics: DecodeDraft and DecodePatch return either a value
// ready for storage or a FieldErrors describing every rejected field. The
// message wording matches what clients of the original service already
// parse, e.g.
//
//	{"title": ["Missing data for required field."]}
package todo

import (
	"sort"
	"strings"
)

// MaxTitleLength is the title bound, counted in characters after NFC
// normalization. It matches the VARCHAR(80) column.
const MaxTitleLength = 80

// Todo is the persisted record. The JSON field names are part of the API.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Draft is a validated create payload. It has no id; storage assigns one.
type Draft struct {
	Title     string
	Completed bool
}

// Patch is a validated update payload. Nil fields are left unchanged.
type Patch struct {
	Title     *string
	Completed *bool
}

// Apply binds the patch onto an existing record. The id is never changed.
func (p Patch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// SchemaField is the key used for errors that concern the payload as a
// whole rather than a single field.
const SchemaField = "_schema"

// Validation messages.
const (
	MsgRequired     = "Missing data for required field."
	MsgNull         = "Field may not be null."
	MsgNotString    = "Not a valid string."
	MsgNotBoolean   = "Not a valid boolean."
	MsgInvalidInput = "Invalid input type."
	MsgInvalidJSON  = "Invalid JSON."
	MsgLength       = "Length must be between 1 and 80."
)

// FieldErrors maps a field name to the messages explaining why it was
// rejected. It is the body of every 400 response.
type FieldErrors map[string][]string

// Add appends a message for field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Fields returns the rejected field names in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
