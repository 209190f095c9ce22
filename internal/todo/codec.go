package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrCorrupt marks a stored value that cannot be turned back into a list.
var ErrCorrupt = errors.New("corrupt item list")

const itemsSchemaURL = "https://todo.local/items.schema.json"

const itemsSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "completed"],
		"properties": {
			"id": {"type": "integer"},
			"title": {"type": "string"},
			"completed": {"type": "boolean"}
		}
	}
}`

var itemsValidator = jsonschema.MustCompileString(itemsSchemaURL, itemsSchema)

// EncodeItems serializes the whole list. A nil list encodes as "[]".
func EncodeItems(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// DecodeItems parses a stored list. Every failure wraps ErrCorrupt.
func DecodeItems(value string) ([]Item, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrCorrupt, err)
	}
	if err := itemsValidator.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, schemaMessage(err))
	}

	var items []Item
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrCorrupt, err)
	}
	seen := make(map[int64]struct{}, len(items))
	for i, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d at index %d", ErrCorrupt, it.ID, i)
		}
		seen[it.ID] = struct{}{}
	}
	return items, nil
}

// schemaMessage reports the first leaf cause, which names the offending field.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return strings.TrimSpace(loc + ": " + ve.Message)
}
