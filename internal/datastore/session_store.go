package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aleister1102/piholewatch/internal/errorwrapper"
	"github.com/rs/zerolog"
)

// expiryMarginSeconds guards against the session expiring while a request
// using it is still in flight.
const expiryMarginSeconds = 5

// cachedSession is the on-disk shape of the credential record. Expires is a
// string-encoded epoch-seconds timestamp.
type cachedSession struct {
	SID     string `json:"sid"`
	Expires string `json:"expires"`
}

// SessionStore caches the short-lived Pi-hole session identifier on disk so
// consecutive checks can skip re-authentication. Corrupt or missing records
// are treated as a cache miss, never as a hard failure.
type SessionStore struct {
	filePath string
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSessionStore creates a new SessionStore backed by the given file path.
func NewSessionStore(filePath string, logger zerolog.Logger) *SessionStore {
	return &SessionStore{
		filePath: filePath,
		logger:   logger.With().Str("component", "SessionStore").Logger(),
		now:      time.Now,
	}
}

// Load returns a still-valid cached session identifier, or an empty string
// when the cache is absent, malformed, or expired. An expiry equal to the
// current time counts as expired.
func (ss *SessionStore) Load() string {
	data, err := os.ReadFile(ss.filePath)
	if err != nil {
		return ""
	}

	var record cachedSession
	if err := json.Unmarshal(data, &record); err != nil {
		ss.logger.Debug().Err(err).Msg("Session cache is not valid JSON; treating as miss")
		return ""
	}

	if record.SID == "" {
		return ""
	}

	expires, err := strconv.ParseFloat(record.Expires, 64)
	if err != nil {
		ss.logger.Debug().Str("expires", record.Expires).Msg("Session cache has invalid expiry; treating as miss")
		return ""
	}

	if expires <= float64(ss.now().Unix()) {
		ss.logger.Debug().Msg("Cached session expired")
		return ""
	}

	return record.SID
}

// Store persists a session identifier with an expiry buffer. The expiry is
// now + max(validity - 5, 0) seconds.
func (ss *SessionStore) Store(sid string, validitySeconds float64) error {
	adjusted := validitySeconds - expiryMarginSeconds
	if adjusted < 0 {
		adjusted = 0
	}
	expires := float64(ss.now().Unix()) + adjusted

	record := cachedSession{
		SID:     sid,
		Expires: fmt.Sprintf("%.0f", expires),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to encode session cache")
	}

	if err := os.MkdirAll(filepath.Dir(ss.filePath), 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create session cache directory")
	}
	if err := os.WriteFile(ss.filePath, append(data, '\n'), 0600); err != nil {
		return errorwrapper.WrapError(err, "failed to write session cache "+ss.filePath)
	}

	ss.logger.Debug().Msg("Session identifier cached")
	return nil
}
