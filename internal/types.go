package internal

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ClassificationRecord is one stored classification result, keyed by the
// SHA-256 digest of the raw input so rescanning the same material is
// idempotent. Kind, Format, and Algorithm may be empty when the input parsed
// as a certificate whose key could not be extracted.
type ClassificationRecord struct {
	InputDigest    string         `db:"input_digest"`
	Path           string         `db:"path"`
	Kind           string         `db:"kind"`
	Format         string         `db:"format"`
	Algorithm      string         `db:"algorithm"`
	KeySizeBits    int            `db:"key_size_bits"`
	Fingerprint    string         `db:"fingerprint"`
	Trusted        bool           `db:"trusted"`
	PropertiesJSON types.JSONText `db:"properties"`
	ScannedAt      time.Time      `db:"scanned_at"`
}
