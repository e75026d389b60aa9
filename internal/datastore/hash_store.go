package datastore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/piholewatch/internal/errorwrapper"
	"github.com/rs/zerolog"
)

// HashStore persists the single summary hash between runs. Exactly one hash
// record exists at a time; every successful check overwrites it.
type HashStore struct {
	filePath string
	logger   zerolog.Logger
}

// NewHashStore creates a new HashStore backed by the given file path.
func NewHashStore(filePath string, logger zerolog.Logger) *HashStore {
	return &HashStore{
		filePath: filePath,
		logger:   logger.With().Str("component", "HashStore").Logger(),
	}
}

// ReadPrevious returns the previously stored summary hash. An absent file
// means first run and yields an empty string without error.
func (hs *HashStore) ReadPrevious() (string, error) {
	data, err := os.ReadFile(hs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errorwrapper.WrapError(err, "failed to read hash file "+hs.filePath)
	}
	return strings.TrimSpace(string(data)), nil
}

// Write persists the summary hash, creating parent directories on demand.
// The hash is written as ASCII hex with a trailing newline.
func (hs *HashStore) Write(summaryHash string) error {
	if err := os.MkdirAll(filepath.Dir(hs.filePath), 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create hash file directory")
	}
	if err := os.WriteFile(hs.filePath, []byte(summaryHash+"\n"), 0644); err != nil {
		return errorwrapper.WrapError(err, "failed to write hash file "+hs.filePath)
	}
	hs.logger.Debug().Str("hash", summaryHash).Msg("Summary hash persisted")
	return nil
}
