package hasher

// tookField is server timing noise present at arbitrary nesting depths in
// Pi-hole API responses. It changes on every request and would defeat
// hashing if kept.
const tookField = "took"

// StripTookFields recursively removes any field named "took" from decoded
// JSON data (objects and arrays). Scalars pass through unchanged.
func StripTookFields(data any) any {
	switch value := data.(type) {
	case map[string]any:
		stripped := make(map[string]any, len(value))
		for key, nested := range value {
			if key == tookField {
				continue
			}
			stripped[key] = StripTookFields(nested)
		}
		return stripped
	case []any:
		stripped := make([]any, len(value))
		for i, nested := range value {
			stripped[i] = StripTookFields(nested)
		}
		return stripped
	default:
		return data
	}
}
