// Package validate implements the request-body validation pipeline: the
// generic body gates (empty body, allow-list, required keys) and the declared
// per-endpoint schemas that check field values.
package validate

// Body is a decoded JSON request body.
type Body map[string]any

// BodyIsEmpty reports whether the body has no keys.
func BodyIsEmpty(body Body) bool {
	return len(body) == 0
}

// KeysAllowed reports whether every key in the body appears in allowed.
func KeysAllowed(body Body, allowed []string) bool {
	for key := range body {
		if !contains(allowed, key) {
			return false
		}
	}
	return true
}

// RequiredKeysPresent reports whether every required key is present in the
// body. Presence only: a key set to null still counts.
func RequiredKeysPresent(body Body, required []string) bool {
	for _, key := range required {
		if _, ok := body[key]; !ok {
			return false
		}
	}
	return true
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
