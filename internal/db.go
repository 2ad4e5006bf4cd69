package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB stores classification results. This is the caller-side cache the core
// library deliberately does not have: classification is deterministic per
// input, so results are keyed by input digest.
type DB struct {
	*sqlx.DB
}

// NewDB opens (and initializes) a classification store at path, or an
// in-memory store when path is empty.
func NewDB(path string) (*DB, error) {
	dsn := "file::memory:?_pragma=temp_store(2)&_pragma=journal_mode(off)&_pragma=synchronous(off)"
	if path != "" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(wal)", path)
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each :memory: connection is a separate database, so pooling must be
	// disabled for the in-memory case.
	db.SetMaxOpenConns(1)

	dbObj := &DB{DB: db}
	if err := dbObj.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	slog.Debug("classification store initialized", "path", path)
	return dbObj, nil
}

func (db *DB) initSchema() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS classifications (
			input_digest  text PRIMARY KEY,
			path          text NOT NULL,
			kind          text NOT NULL,
			format        text NOT NULL,
			algorithm     text NOT NULL,
			key_size_bits integer NOT NULL,
			fingerprint   text NOT NULL,
			trusted       integer NOT NULL,
			properties    text NOT NULL,
			scanned_at    timestamp NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating classifications table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_classifications_fingerprint ON classifications (fingerprint);
	`)
	if err != nil {
		return fmt.Errorf("creating fingerprint index on classifications table: %w", err)
	}
	return nil
}

// InsertClassification upserts a classification record. Re-scanning the
// same input refreshes the path and timestamp but cannot change the
// classification itself (it is deterministic per input).
func (db *DB) InsertClassification(rec ClassificationRecord) error {
	_, err := db.NamedExec(`
		INSERT INTO classifications (input_digest, path, kind, format, algorithm, key_size_bits, fingerprint, trusted, properties, scanned_at)
		VALUES (:input_digest, :path, :kind, :format, :algorithm, :key_size_bits, :fingerprint, :trusted, :properties, :scanned_at)
		ON CONFLICT(input_digest) DO UPDATE SET path = excluded.path, scanned_at = excluded.scanned_at
	`, rec)
	if err != nil {
		return fmt.Errorf("inserting classification: %w", err)
	}
	return nil
}

// GetClassification returns the record for the given input digest, or nil
// if the input has not been scanned.
func (db *DB) GetClassification(digest string) (*ClassificationRecord, error) {
	var rec ClassificationRecord
	err := db.Get(&rec, "SELECT * FROM classifications WHERE input_digest = ?", digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting classification: %w", err)
	}
	return &rec, nil
}

// GetAllClassifications returns every stored record.
func (db *DB) GetAllClassifications() ([]ClassificationRecord, error) {
	var recs []ClassificationRecord
	if err := db.Select(&recs, "SELECT * FROM classifications ORDER BY scanned_at"); err != nil {
		return nil, fmt.Errorf("getting all classifications: %w", err)
	}
	return recs, nil
}

// StoreSummary holds aggregate counts over the stored classifications.
type StoreSummary struct {
	PrivateKeys  int `json:"private_keys"`
	PublicKeys   int `json:"public_keys"`
	Certificates int `json:"certificates"`
	Trusted      int `json:"trusted_certificates"`
}

// GetStoreSummary queries the store for aggregate counts. Certificates are
// the subset of public keys that came out of X.509 containers.
func (db *DB) GetStoreSummary() (*StoreSummary, error) {
	s := &StoreSummary{}

	if err := db.Get(&s.PrivateKeys, "SELECT COUNT(*) FROM classifications WHERE kind = 'private'"); err != nil {
		return nil, fmt.Errorf("counting private keys: %w", err)
	}
	if err := db.Get(&s.PublicKeys, "SELECT COUNT(*) FROM classifications WHERE kind = 'public'"); err != nil {
		return nil, fmt.Errorf("counting public keys: %w", err)
	}
	if err := db.Get(&s.Certificates, "SELECT COUNT(*) FROM classifications WHERE format = 'X509'"); err != nil {
		return nil, fmt.Errorf("counting certificates: %w", err)
	}
	if err := db.Get(&s.Trusted, "SELECT COUNT(*) FROM classifications WHERE trusted = 1"); err != nil {
		return nil, fmt.Errorf("counting trusted certificates: %w", err)
	}

	return s, nil
}
