package expr

import (
	"fmt"
	"sort"
)

// Found is one ${{ ... }} occurrence located inside a decoded document.
type Found struct {
	Field string `json:"field"`
	Raw   string `json:"raw"`
}

// Extract walks a decoded YAML document and returns every template
// expression it contains, tagged with the dotted path of the field that
// owns it. Map keys are visited in sorted order so output is deterministic.
func Extract(doc any) []Found {
	var found []Found
	walk(doc, "", &found)
	return found
}

func walk(v any, field string, found *[]Found) {
	switch val := v.(type) {
	case string:
		for _, m := range markerRegex.FindAllString(val, -1) {
			*found = append(*found, Found{Field: field, Raw: m})
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(val[k], joinField(field, k), found)
		}
	case []any:
		for i, item := range val {
			walk(item, fmt.Sprintf("%s[%d]", field, i), found)
		}
	}
}

func joinField(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
