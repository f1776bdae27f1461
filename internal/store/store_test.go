package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dd-japan/fargate-data-api/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsIdentity(t *testing.T) {
	s := New()

	payload := map[string]interface{}{"name": "widget"}
	record := s.Append(payload, "192.0.2.1")

	_, err := uuid.Parse(record.ID)
	assert.NoError(t, err, "id should be a valid UUID")
	assert.Equal(t, payload, record.Data)
	assert.Equal(t, "192.0.2.1", record.CreatedBy)

	_, err = time.Parse(shared.TimestampLayout, record.CreatedAt)
	assert.NoError(t, err, "created_at should be a valid timestamp")
}

func TestListAllPreservesInsertionOrder(t *testing.T) {
	s := New()

	for i := 0; i < 5; i++ {
		s.Append(map[string]interface{}{"index": i}, "test")
	}

	records := s.ListAll()
	require.Len(t, records, 5)
	for i, record := range records {
		assert.Equal(t, map[string]interface{}{"index": i}, record.Data)
	}
}

func TestListAllReturnsSnapshot(t *testing.T) {
	s := New()
	original := s.Append("payload", "test")

	records := s.ListAll()
	records[0].Data = "tampered"

	got, found := s.FindByID(original.ID)
	require.True(t, found)
	assert.Equal(t, "payload", got.Data, "mutating the snapshot must not touch the store")
}

func TestFindByID(t *testing.T) {
	s := New()
	record := s.Append(map[string]interface{}{"name": "widget"}, "test")

	got, found := s.FindByID(record.ID)
	assert.True(t, found)
	assert.Equal(t, record, got)

	_, found = s.FindByID("does-not-exist")
	assert.False(t, found)
}

func TestClearAll(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		s.Append(i, "test")
	}

	count := s.ClearAll()
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.ListAll())

	// Clearing an empty store is a no-op
	assert.Equal(t, 0, s.ClearAll())
}

func TestConcurrentAppends(t *testing.T) {
	s := New()

	const workers = 100
	var wg sync.WaitGroup
	ids := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := s.Append(map[string]interface{}{"worker": i}, fmt.Sprintf("worker-%d", i))
			ids <- record.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, workers, s.Len())
}

func TestConcurrentReadsDuringWrites(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Append(i, "writer")
		}(i)
		go func() {
			defer wg.Done()
			for _, record := range s.ListAll() {
				_, _ = s.FindByID(record.ID)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
