package store

import (
	"sync"
	"time"

	"github.com/dd-japan/fargate-data-api/internal/shared"

	"github.com/google/uuid"
)

// Record is a stored JSON payload plus server-assigned identity and
// creation metadata. The payload is opaque to the store: any decoded
// JSON value (object, array, primitive) is accepted.
type Record struct {
	ID        string `json:"id"`
	Data      any    `json:"data"`
	CreatedAt string `json:"created_at"`
	CreatedBy string `json:"created_by"`
}

// Store is the process-lifetime ordered collection of Records. A single
// mutex serializes mutations against concurrent reads; every operation
// is O(n) or O(1) and holds the lock only for in-memory work.
type Store struct {
	mutex   sync.RWMutex
	records []Record
}

// New creates an empty store.
func New() *Store {
	return &Store{
		records: make([]Record, 0),
	}
}

// Append builds a Record around payload, assigns it a fresh UUID and
// creation timestamp, and appends it in insertion order.
func (s *Store) Append(payload any, origin string) Record {
	record := Record{
		ID:        uuid.NewString(),
		Data:      payload,
		CreatedAt: shared.Timestamp(time.Now()),
		CreatedBy: origin,
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.records = append(s.records, record)

	return record
}

// ListAll returns a snapshot of all records in insertion order. The
// returned slice is a copy so callers cannot corrupt internal state.
func (s *Store) ListAll() []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make([]Record, len(s.records))
	copy(result, s.records)
	return result
}

// FindByID returns the record with the given id, if any. Linear scan;
// ids are unique so the first match is the only match.
func (s *Store) FindByID(id string) (Record, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, record := range s.records {
		if record.ID == id {
			return record, true
		}
	}
	return Record{}, false
}

// ClearAll removes every record and returns how many were removed.
// Assigned ids are never reused afterwards.
func (s *Store) ClearAll() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	count := len(s.records)
	s.records = make([]Record, 0)
	return count
}

// Len returns the current number of records.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.records)
}
