package config

// StorageConfig defines where persisted state lives on disk
type StorageConfig struct {
	HashFile    string `json:"hash_file,omitempty" yaml:"hash_file,omitempty"`
	SessionFile string `json:"session_file,omitempty" yaml:"session_file,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		HashFile:    DefaultHashFile,
		SessionFile: DefaultSessionFile,
	}
}
