package driven

// ConfigStore provides access to application configuration.
// Keys are dotted paths such as "github.token"; implementations map them
// onto their storage format.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys lists every key currently set, sorted.
	Keys() []string

	Save() error
	Load() error

	// Path returns the configuration file path.
	Path() string
}
