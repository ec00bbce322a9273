package project

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Document is the scouting dossier attached to a project. It keeps the payload
// bytes exactly as received alongside their decoded form.
type Document struct {
	raw    json.RawMessage
	fields map[string]any
}

// ParseDocument decodes a dossier payload. The payload must be a JSON object;
// its content is otherwise opaque.
func ParseDocument(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, errors.New("empty document")
	}
	if trimmed[0] != '{' {
		return Document{}, errors.New("document must be a JSON object")
	}

	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}

	raw := make(json.RawMessage, len(trimmed))
	copy(raw, trimmed)
	return Document{raw: raw, fields: fields}, nil
}

// Raw returns the payload bytes as they were imported.
func (d Document) Raw() json.RawMessage {
	if len(d.raw) == 0 {
		return json.RawMessage("{}")
	}
	return d.raw
}

// Fields returns the decoded top-level members. The map is never nil.
func (d Document) Fields() map[string]any {
	if d.fields == nil {
		return map[string]any{}
	}
	return d.fields
}

// String returns the top-level member key when it holds a string.
func (d Document) String(key string) string {
	s, _ := d.fields[key].(string)
	return s
}

// IsZero reports whether the document holds no payload.
func (d Document) IsZero() bool {
	return len(d.raw) == 0
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return d.Raw(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// Value implements driver.Valuer; the verbatim payload is stored.
func (d Document) Value() (driver.Value, error) {
	return string(d.Raw()), nil
}

// Scan implements sql.Scanner.
func (d *Document) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.UnmarshalJSON([]byte(v))
	case []byte:
		return d.UnmarshalJSON(v)
	case nil:
		*d = Document{}
		return nil
	default:
		return fmt.Errorf("unsupported document source %T", src)
	}
}
