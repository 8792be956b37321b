package server

// StringParam reads a string argument, or def when absent or mistyped.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// BoolParam reads a boolean argument, or def when absent or mistyped.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// IntParam reads a numeric argument. JSON numbers arrive as float64.
func IntParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}
