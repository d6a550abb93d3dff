package service

import (
	"context"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/model"
	"turfbook/pkg/timeslot"
)

// inMemorySlotStore backs the race test with a real mutual-exclusion lock
// table and booking list, so concurrent Reserve calls contend the same way
// they would against Mongo.
type inMemorySlotStore struct {
	mu       sync.Mutex
	locks    map[string]bool
	bookings []*model.Booking
}

func newInMemorySlotStore() *inMemorySlotStore {
	return &inMemorySlotStore{locks: make(map[string]bool)}
}

func (s *inMemorySlotStore) acquire(lock *model.SlotLock) (*model.SlotLock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[lock.ID] {
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	s.locks[lock.ID] = true
	return lock, nil
}

func (s *inMemorySlotStore) release(lockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, lockID)
	return nil
}

func (s *inMemorySlotStore) activeByTurfAndDate(turfID, date string) []*model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Booking
	for _, b := range s.bookings {
		if b.TurfID == turfID && b.Date == date && b.Status == model.BookingActive {
			out = append(out, b)
		}
	}
	return out
}

func (s *inMemorySlotStore) insert(b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *b
	s.bookings = append(s.bookings, &copied)
	return nil
}

// Run with -race. Many goroutines reserve overlapping intervals on the
// same turf-day; the advisory lock must admit at most one per overlap
// group, and the surviving set must be pairwise non-overlapping.
func TestReserve_ConcurrentOverlappingAdmissions(t *testing.T) {
	store := newInMemorySlotStore()

	repo := &mockBookingRepository{
		findActiveFunc: func(ctx context.Context, turfID string, date string) ([]*model.Booking, error) {
			return store.activeByTurfAndDate(turfID, date), nil
		},
		createFunc: func(ctx context.Context, b *model.Booking) error {
			return store.insert(b)
		},
	}
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return store.acquire(lock)
		},
		deleteFunc: func(ctx context.Context, lockID string) error {
			return store.release(lockID)
		},
	}
	svc, _ := newTestService(repo, locks, &mockTurfDirectory{}, &mockBlackoutSource{})

	date := futureDate()
	attempts := []struct{ start, end string }{
		{"09:00", "10:30"},
		{"10:00", "11:00"},
		{"09:30", "10:00"},
		{"10:30", "11:30"},
		{"11:00", "12:00"},
		{"09:00", "12:00"},
	}
	users := []string{
		"64a0000000000000000000d1",
		"64a0000000000000000000d2",
		"64a0000000000000000000d3",
		"64a0000000000000000000d4",
		"64a0000000000000000000d5",
		"64a0000000000000000000d6",
	}

	var wg sync.WaitGroup
	results := make([]error, len(attempts))
	for i, a := range attempts {
		wg.Add(1)
		go func(i int, start, end string) {
			defer wg.Done()
			results[i] = svc.Reserve(context.Background(), &model.Booking{
				TurfID:    testTurfID,
				UserID:    users[i],
				Date:      date,
				StartTime: start,
				EndTime:   end,
			})
		}(i, a.start, a.end)
	}
	wg.Wait()

	admitted := store.activeByTurfAndDate(testTurfID, date)
	if len(admitted) == 0 {
		t.Fatal("expected at least one admission to succeed")
	}
	for i := 0; i < len(admitted); i++ {
		for j := i + 1; j < len(admitted); j++ {
			a, _ := timeslot.NewInterval(admitted[i].StartTime, admitted[i].EndTime)
			b, _ := timeslot.NewInterval(admitted[j].StartTime, admitted[j].EndTime)
			if a.Overlaps(b) {
				t.Fatalf("double admission: %s-%s overlaps %s-%s",
					admitted[i].StartTime, admitted[i].EndTime,
					admitted[j].StartTime, admitted[j].EndTime)
			}
		}
	}

	for i, err := range results {
		if err != nil && !apperrors.IsAppError(err) {
			t.Errorf("attempt %d failed with a non-domain error: %v", i, err)
		}
	}
}
