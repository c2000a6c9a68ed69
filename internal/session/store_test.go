package session

import (
	"fmt"
	"sync"
	"testing"

	"newschomp/internal/seen"
)

func TestGetCreatesAndReuses(t *testing.T) {
	t.Parallel()

	store := NewStore()

	first := store.Get("")
	if first.ID == "" {
		t.Fatal("expected a generated session ID")
	}

	again := store.Get(first.ID)
	if again != first {
		t.Fatal("expected the same session for a known ID")
	}

	other := store.Get("")
	if other.ID == first.ID {
		t.Fatal("expected distinct IDs for distinct sessions")
	}
}

func TestSeenPartitionedByCategory(t *testing.T) {
	t.Parallel()

	sess := NewStore().Get("")

	sess.WithSeen("world", func(l *seen.List) {
		l.Add("https://example.com/a")
	})

	sess.WithSeen("local", func(l *seen.List) {
		if l.Has("https://example.com/a") {
			t.Fatal("categories must not share seen state")
		}
	})
	sess.WithSeen("world", func(l *seen.List) {
		if !l.Has("https://example.com/a") {
			t.Fatal("category seen-list should persist across lookups")
		}
	})
}

func TestWithSeenConcurrent(t *testing.T) {
	t.Parallel()

	sess := NewStore().Get("")

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				url := fmt.Sprintf("https://example.com/%d/%d", g, i)
				sess.WithSeen("world", func(l *seen.List) {
					l.Add(url)
					if !l.Has(url) {
						t.Errorf("added url %s not visible inside the lock", url)
					}
				})
			}
		}(g)
	}
	wg.Wait()

	sess.WithSeen("world", func(l *seen.List) {
		if l.Len() != seen.Capacity {
			t.Fatalf("Len() = %d, want %d after overfilling", l.Len(), seen.Capacity)
		}
	})
}

func TestStoreEvictsOldestSession(t *testing.T) {
	t.Parallel()

	store := NewStore()
	first := store.Get("")

	for i := 0; i < maxSessions; i++ {
		store.Get("")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.sessions) != maxSessions {
		t.Fatalf("store holds %d sessions, want %d", len(store.sessions), maxSessions)
	}
	if _, ok := store.sessions[first.ID]; ok {
		t.Fatal("oldest session should have been evicted")
	}
}
