package hasher

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/aleister1102/piholewatch/internal/errorwrapper"
)

// DigestPayload computes the hex digest of a JSON-serializable payload.
// Serialization is canonical: object keys sorted, compact separators. Two
// semantically identical payloads always produce the same digest regardless
// of the field order they arrived in. MD5 is deliberate: this is change
// detection on a trusted API, not a security boundary, and the stored hash
// format is MD5 hex.
func DigestPayload(payload any) (string, error) {
	normalized, err := json.Marshal(payload)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to serialize payload for hashing")
	}
	sum := md5.Sum(normalized)
	return hex.EncodeToString(sum[:]), nil
}

// CombineHashes computes the digest of the concatenated per-endpoint
// digests. Order is significant: endpoint boundaries are digest boundaries,
// so a corrupt fetch of one resource cannot be masked by another's content.
func CombineHashes(hashes []string) string {
	combined := strings.Join(hashes, "")
	sum := md5.Sum([]byte(combined))
	return hex.EncodeToString(sum[:])
}
