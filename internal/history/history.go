package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/cody-foxy/scanwatch/internal/scan"
)

// ErrNotFound is returned when no record exists for a scan id.
var ErrNotFound = errors.New("scan not found in history")

const recordPrefix = "scans/"

// Record is the locally persisted summary of a watched scan.
type Record struct {
	ID            int        `json:"id"`
	Status        scan.Status `json:"status"`
	SourceType    string     `json:"source_type"`
	SourcePath    string     `json:"source_path,omitempty"`
	TotalFindings int        `json:"total_findings"`
	CriticalCount int        `json:"critical_count"`
	HighCount     int        `json:"high_count"`
	MediumCount   int        `json:"medium_count"`
	LowCount      int        `json:"low_count"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	RecordedAt    time.Time  `json:"recorded_at"`
}

// NewRecord builds a history record from a terminal scan snapshot.
func NewRecord(snap scan.Scan) Record {
	return Record{
		ID:            snap.ID,
		Status:        snap.Status,
		SourceType:    snap.SourceType,
		SourcePath:    snap.SourcePath,
		TotalFindings: snap.TotalFindings,
		CriticalCount: snap.CriticalCount,
		HighCount:     snap.HighCount,
		MediumCount:   snap.MediumCount,
		LowCount:      snap.LowCount,
		ErrorMessage:  snap.ErrorMessage,
		CompletedAt:   snap.CompletedAt,
		RecordedAt:    time.Now().UTC(),
	}
}

// Store persists scan records in a local badger database.
type Store struct {
	db *badger.DB
}

// NewStore opens (or creates) the history database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is required")
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Put stores or overwrites the record for its scan id.
func (s *Store) Put(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode history record: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(makeKey(rec.ID), data)
	})
}

// Get returns the record for a scan id, or ErrNotFound.
func (s *Store) Get(id int) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns all records, newest first by recording time.
func (s *Store) List() ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(recordPrefix)
		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				var rec Record
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt.After(records[j].RecordedAt)
	})
	return records, nil
}

// Delete removes the record for a scan id, if present.
func (s *Store) Delete(id int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(makeKey(id))
	})
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func makeKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", recordPrefix, id))
}
