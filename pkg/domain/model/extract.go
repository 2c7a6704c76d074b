package model

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// ParseFormFields decodes an application/x-www-form-urlencoded body into
// Fields. A repeated key keeps its first value and blank values are dropped.
// Malformed pairs are skipped; whatever remains is left to validation.
func ParseFormFields(body string) Fields {
	// ParseQuery keeps every well-formed pair even when it reports an error
	values, _ := url.ParseQuery(body)

	fields := Fields{}
	for key, vs := range values {
		for _, v := range vs {
			if v != "" {
				fields[key] = v
				break
			}
		}
	}
	return fields
}

// FieldsFromMap converts a pre-parsed mapping into Fields. Lists collapse to
// their first element, scalars are formatted and null values are dropped.
func FieldsFromMap(m map[string]any) Fields {
	fields := Fields{}
	for key, raw := range m {
		if list, ok := raw.([]any); ok {
			if len(list) == 0 {
				continue
			}
			raw = list[0]
		}

		switch v := raw.(type) {
		case nil:
			continue
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case map[string]any, []any:
			continue
		default:
			fields[key] = fmt.Sprint(v)
		}
	}
	return fields
}
