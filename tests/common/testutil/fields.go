//go:build unit || e2e

package testutil

// Field sets key in a request map; a nil value deletes it.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
