package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDocument = "plutusladder/ir/v1"
	DomainScript   = "plutusladder/script/v1"
)

// ArtifactNamespace is the UUID namespace for name-based artifact IDs.
var ArtifactNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roach88/plutusladder/artifact"))

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentHash computes the content hash of a decoded IR document.
// Key order and number spelling do not affect the result.
func DocumentHash(doc any) (string, error) {
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("DocumentHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDocument, canonical), nil
}

// ScriptHash computes the content hash of emitted script text.
func ScriptHash(script string) string {
	return hashWithDomain(DomainScript, []byte(script))
}

// ArtifactID derives a stable name-based UUID (version 5) from a script hash.
// The same script always maps to the same ID, across builds and machines.
func ArtifactID(scriptHash string) uuid.UUID {
	return uuid.NewSHA1(ArtifactNamespace, []byte(scriptHash))
}
