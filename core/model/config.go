package model

// Config holds configuration for the classifier artifact.
type Config struct {
	// Path is the artifact location on the local filesystem.
	Path string `mapstructure:"path" default:"random_forest_traffic_classifier.json"`
	// Source selects where the artifact is read from (file, storage).
	Source string `mapstructure:"source" default:"file"`
	// ObjectKey is the artifact key inside the storage bucket.
	ObjectKey string `mapstructure:"object_key" default:"models/random_forest_traffic_classifier.json"`
}

const (
	SourceFile    = "file"
	SourceStorage = "storage"
)

// IsValidSource checks if the configured source is supported.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceFile, SourceStorage:
		return true
	default:
		return false
	}
}

// Location returns the path or object key the artifact is read from.
func (c Config) Location() string {
	if c.Source == SourceStorage {
		return c.ObjectKey
	}
	return c.Path
}
