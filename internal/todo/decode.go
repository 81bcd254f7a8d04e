package todo

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DecodeDraft validates a create payload. title is required; completed
// defaults to false. Unknown fields are ignored.
func DecodeDraft(data []byte) (Draft, FieldErrors) {
	fields, errs := decodeObject(data)
	if errs != nil {
		return Draft{}, errs
	}

	errs = FieldErrors{}
	var d Draft

	if raw, ok := fields["title"]; !ok {
		errs.Add("title", MsgRequired)
	} else if title, msg := decodeTitle(raw); msg != "" {
		errs.Add("title", msg)
	} else {
		d.Title = title
	}

	if raw, ok := fields["completed"]; ok {
		if completed, msg := decodeBool(raw); msg != "" {
			errs.Add("completed", msg)
		} else {
			d.Completed = completed
		}
	}

	if len(errs) > 0 {
		return Draft{}, errs
	}
	return d, nil
}

// DecodePatch validates an update payload. Every field is optional; an
// empty object yields an empty Patch.
func DecodePatch(data []byte) (Patch, FieldErrors) {
	fields, errs := decodeObject(data)
	if errs != nil {
		return Patch{}, errs
	}

	errs = FieldErrors{}
	var p Patch

	if raw, ok := fields["title"]; ok {
		if title, msg := decodeTitle(raw); msg != "" {
			errs.Add("title", msg)
		} else {
			p.Title = &title
		}
	}

	if raw, ok := fields["completed"]; ok {
		if completed, msg := decodeBool(raw); msg != "" {
			errs.Add("completed", msg)
		} else {
			p.Completed = &completed
		}
	}

	if len(errs) > 0 {
		return Patch{}, errs
	}
	return p, nil
}

// decodeObject splits a JSON object into its raw members. Anything other
// than an object is rejected as a whole.
func decodeObject(data []byte) (map[string]json.RawMessage, FieldErrors) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, FieldErrors{SchemaField: {MsgInvalidInput}}
	}
	if !json.Valid(data) {
		return nil, FieldErrors{SchemaField: {MsgInvalidJSON}}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, FieldErrors{SchemaField: {MsgInvalidInput}}
	}
	return fields, nil
}

func decodeTitle(raw json.RawMessage) (string, string) {
	if isNull(raw) {
		return "", MsgNull
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", MsgNotString
	}
	if n := utf8.RuneCountInString(norm.NFC.String(s)); n < 1 || n > MaxTitleLength {
		return "", MsgLength
	}
	return s, ""
}

func decodeBool(raw json.RawMessage) (bool, string) {
	if isNull(raw) {
		return false, MsgNull
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, MsgNotBoolean
	}
	return b, ""
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
