// Package fingerprint computes stable content digests for OpenCLI documents.
//
// A fingerprint is taken over the document's compact canonical JSON
// encoding, so two documents that load to the same in-memory value produce
// the same digests regardless of which wire format they arrived in.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/openclispec/opencli-go/core/opencli"
)

// Result contains both SHA-256 and BLAKE3 digests for a document.
type Result struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// Short returns a 12-character display prefix of the BLAKE3 digest.
func (r *Result) Short() string {
	if len(r.BLAKE3) < 12 {
		return r.BLAKE3
	}
	return r.BLAKE3[:12]
}

// Sum computes the digests of a document's canonical JSON encoding.
func Sum(doc *opencli.Document) (*Result, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return SumBytes(data), nil
}

// SumBytes computes the digests of an already-encoded document body.
func SumBytes(data []byte) *Result {
	sha := sha256.Sum256(data)
	b3 := blake3.Sum256(data)
	return &Result{
		SHA256: hex.EncodeToString(sha[:]),
		BLAKE3: hex.EncodeToString(b3[:]),
	}
}
