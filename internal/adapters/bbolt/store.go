// Package bbolt implements the ports.BaselineStore interface using bbolt (embedded B+ tree).
// Each project gets its own top-level bucket. Within that bucket the "baseline"
// sub-bucket holds the fingerprint list and the gob-encoded entries. Writes are
// transactional: a crash mid-write cannot corrupt previously committed data.
package bbolt

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/argsel/internal/ports"
)

// Bucket keys
var (
	bucketBaseline  = []byte("baseline")
	keyFingerprints = []byte("fingerprints")
	keyMeta         = []byte("meta")
)

var _ ports.BaselineStore = (*Store)(nil)

// Store implements ports.BaselineStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBaseline replaces the baseline for a project.
func (s *Store) SaveBaseline(projectID string, b *ports.Baseline) error {
	if b == nil {
		return fmt.Errorf("nil baseline")
	}

	fps := encodeFingerprints(b.Entries)
	meta, err := encodeMeta(baselineMeta{
		RunID:     b.RunID,
		CreatedAt: b.CreatedAt.UnixNano(),
		Entries:   b.Entries,
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		proj, err := tx.CreateBucketIfNotExists([]byte(projectID))
		if err != nil {
			return err
		}
		bb, err := proj.CreateBucketIfNotExists(bucketBaseline)
		if err != nil {
			return err
		}
		if err := bb.Put(keyFingerprints, fps); err != nil {
			return err
		}
		return bb.Put(keyMeta, meta)
	})
}

// LoadBaseline retrieves the baseline for a project.
// Returns nil, nil if no baseline exists.
func (s *Store) LoadBaseline(projectID string) (*ports.Baseline, error) {
	var fpData, metaData []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		proj := tx.Bucket([]byte(projectID))
		if proj == nil {
			return nil
		}
		bb := proj.Bucket(bucketBaseline)
		if bb == nil {
			return nil
		}
		// Copy out: bbolt memory is only valid inside the transaction.
		if v := bb.Get(keyFingerprints); v != nil {
			fpData = make([]byte, len(v))
			copy(fpData, v)
		}
		if v := bb.Get(keyMeta); v != nil {
			metaData = make([]byte, len(v))
			copy(metaData, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fpData == nil {
		return nil, nil
	}

	fps, err := decodeFingerprints(fpData)
	if err != nil {
		return nil, err
	}

	b := &ports.Baseline{Entries: make(map[uint64]ports.BaselineEntry, len(fps))}
	var meta baselineMeta
	if metaData != nil {
		meta, err = decodeMeta(metaData)
		if err != nil {
			return nil, err
		}
		b.RunID = meta.RunID
		b.CreatedAt = time.Unix(0, meta.CreatedAt)
	}
	for _, fp := range fps {
		b.Entries[fp] = meta.Entries[fp]
	}
	return b, nil
}

// DeleteBaseline removes the baseline for a project.
// Idempotent: deleting a nonexistent baseline is not an error.
func (s *Store) DeleteBaseline(projectID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		proj := tx.Bucket([]byte(projectID))
		if proj == nil {
			return nil
		}
		if err := proj.DeleteBucket(bucketBaseline); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		return nil
	})
}
