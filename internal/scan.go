package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sensiblebit/keyprobe"
)

// ScanSummary holds aggregate counts from a scan run. Store counts cover
// everything classified (including results carried over from earlier runs
// against the same store); Unrecognized counts this run's misses, which are
// not stored.
type ScanSummary struct {
	Files        int `json:"files"`
	Unrecognized int `json:"unrecognized"`
	StoreSummary
}

// ScanPath walks a file or directory, classifies every regular file, and
// records the results in the store. Unreadable and unrecognized files are
// logged and skipped; they never abort the scan.
func ScanPath(db *DB, inputPath string, passwords []string) (*ScanSummary, error) {
	summary := &ScanSummary{}

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		summary.Files++
		if err := scanFile(db, path, passwords); err != nil {
			if errors.Is(err, keyprobe.ErrUnrecognized) || errors.Is(err, keyprobe.ErrEmptyInput) {
				summary.Unrecognized++
				slog.Debug("file not recognized", "path", path)
			} else {
				slog.Warn("error processing file", "path", path, "error", err)
			}
		}
		return nil
	}

	if err := filepath.WalkDir(inputPath, walk); err != nil {
		return nil, fmt.Errorf("walking %s: %w", inputPath, err)
	}

	store, err := db.GetStoreSummary()
	if err != nil {
		return nil, fmt.Errorf("generating summary: %w", err)
	}
	summary.StoreSummary = *store
	return summary, nil
}

// scanFile classifies one file and stores the result.
func scanFile(db *DB, path string, passwords []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	props, err := keyprobe.ClassifyWithPasswords(data, passwords)
	if err != nil {
		return err
	}

	propsJSON, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("marshaling properties: %w", err)
	}

	digest := sha256.Sum256(data)
	rec := ClassificationRecord{
		InputDigest:    hex.EncodeToString(digest[:]),
		Path:           path,
		Kind:           string(props.Kind),
		Format:         props.Format,
		Algorithm:      props.Algorithm,
		KeySizeBits:    props.KeySizeBits,
		Fingerprint:    props.Fingerprint,
		PropertiesJSON: propsJSON,
		ScannedAt:      time.Now().UTC(),
	}
	if props.Certificate != nil {
		rec.Trusted = IsPubliclyTrusted(data)
	}

	if err := db.InsertClassification(rec); err != nil {
		return err
	}
	slog.Debug("classified", "path", path, "kind", rec.Kind, "format", rec.Format, "algorithm", rec.Algorithm)
	return nil
}
