// Package hash implements the canonical JSON serialization, SHA-256 hashing,
// and deterministic name derivation spec_hash/manifest_hash and Job/Bundle
// naming depend on.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Sha256Prefix is prepended to every hash written to a spec, status, env var,
// or annotation. It is stripped whenever the same hash is written into a
// label value, because ':' is not a legal label character.
const Sha256Prefix = "sha256:"

// Canonicalize round-trips v through JSON so that object keys are sorted
// into ascending order and any intermediate whitespace is dropped. The
// standard library's encoding/json already sorts map[string]interface{} keys
// and produces compact output on Marshal, so no custom walker is needed.
func Canonicalize(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("round-trip value: %w", err)
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("marshal canonical value: %w", err)
	}
	return canonical, nil
}

// SHA256Hex returns the lowercase hex SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SerializableHash canonicalizes v and returns its "sha256:"-prefixed digest.
func SerializableHash(v interface{}) (string, error) {
	canonical, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	return Sha256Prefix + SHA256Hex(canonical), nil
}

// StripPrefix removes the "sha256:" prefix for use as a label value. Callers
// that read the label back must re-prepend it to reconstitute the full hash.
func StripPrefix(hash string) string {
	return strings.TrimPrefix(hash, Sha256Prefix)
}

// ShortHex returns the first n hex characters of hash, after stripping the
// "sha256:" prefix if present.
func ShortHex(hash string, n int) string {
	trimmed := StripPrefix(hash)
	if len(trimmed) <= n {
		return trimmed
	}
	return trimmed[:n]
}

// BoundedName sanitizes raw into a DNS-1123-compatible label: lowercased,
// non [a-z0-9-] runs collapsed to a single '-', leading/trailing '-' trimmed,
// truncated to maxLen without leaving a trailing '-'.
func BoundedName(raw string, maxLen int) string {
	var b strings.Builder
	lastDash := false
	for _, r := range raw {
		var c rune
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			c = r
		case r >= 'A' && r <= 'Z':
			c = r + ('a' - 'A')
		default:
			c = '-'
		}
		if c == '-' {
			if lastDash {
				continue
			}
			lastDash = true
		} else {
			lastDash = false
		}
		b.WriteRune(c)
	}

	compact := strings.Trim(b.String(), "-")
	if compact == "" {
		compact = "fi"
	}
	if len(compact) <= maxLen {
		return compact
	}

	truncated := strings.TrimRight(compact[:maxLen], "-")
	if truncated == "" {
		truncated = compact[:maxLen]
	}
	return truncated
}

const maxNameLength = 63

// BundleName derives the fixed name of the Bundle owned by an FI: fi-<fi-name>.
// The name is fixed (not versioned) so a new spec replaces content, not
// identity.
func BundleName(fiName string) string {
	return BoundedName(fmt.Sprintf("fi-%s", fiName), maxNameLength)
}

// JobName derives the Job name for a given FI and spec hash:
// fi-<fi-name>-<first-10-hex-chars-of-hash>. It carries no time-based nonce:
// it is deliberately stable per spec version so repeated reconciles with an
// unchanged spec_hash can find and adopt the same Job instead of creating a
// new one (idempotent dispatch).
func JobName(fiName, specHash string) string {
	return BoundedName(fmt.Sprintf("fi-%s-%s", fiName, ShortHex(specHash, 10)), maxNameLength)
}
