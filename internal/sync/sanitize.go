package sync

// Sanitize prepares a document payload for the remote store, which rejects
// fields it cannot represent: nil slices and nil nested maps are replaced
// with empty ones, element-wise through arrays and nested objects. Explicit
// null values survive untouched. This has no semantic effect beyond store
// compatibility.
func Sanitize(doc map[string]interface{}) map[string]interface{} {
	if doc == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = sanitizeValue(v)
	}
	return out
}

// sanitizeValue recursively sanitizes one document value
func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		if val == nil {
			return map[string]interface{}{}
		}
		return Sanitize(val)
	case []interface{}:
		if val == nil {
			return []interface{}{}
		}
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}
