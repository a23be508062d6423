package constraint

import (
	"fmt"
	"sync"
	"testing"
)

func TestInsertAndMatch(t *testing.T) {
	m := NewMemory()

	e, created := m.Insert("lava_grid", "lava_grid/step:cell=lava", 3, "evt-1")
	if !created {
		t.Fatal("first insert must create")
	}
	if e.ID == "" {
		t.Error("entry must get an ID")
	}
	if e.CreatedAtEpisode != 3 || e.OriginEventID != "evt-1" {
		t.Errorf("entry fields lost: %+v", e)
	}

	got, ok := m.Match("lava_grid/step:cell=lava")
	if !ok {
		t.Fatal("expected pattern to match")
	}
	if got.ID != e.ID {
		t.Error("match must return the inserted entry")
	}

	if _, ok := m.Match("lava_grid/step:cell=floor"); ok {
		t.Error("unconstrained pattern must not match")
	}
}

func TestInsertIdempotentFirstWriterWins(t *testing.T) {
	m := NewMemory()

	first, created := m.Insert("env", "env/act:k=v", 1, "evt-first")
	if !created {
		t.Fatal("expected creation")
	}
	second, created := m.Insert("env", "env/act:k=v", 7, "evt-second")
	if created {
		t.Error("duplicate insert must not create")
	}
	if second.ID != first.ID || second.OriginEventID != "evt-first" || second.CreatedAtEpisode != 1 {
		t.Errorf("duplicate insert must return the original entry, got %+v", second)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", m.Len())
	}
}

func TestEntriesInsertionOrder(t *testing.T) {
	m := NewMemory()
	for i := 0; i < 5; i++ {
		m.Insert("env", fmt.Sprintf("env/act:n=%d", i), i, fmt.Sprintf("evt-%d", i))
	}

	entries := m.Entries()
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i, e := range entries {
		want := fmt.Sprintf("env/act:n=%d", i)
		if e.Pattern != want {
			t.Errorf("entry %d: pattern %q, want %q", i, e.Pattern, want)
		}
	}
}

func TestConcurrentInsertSamePattern(t *testing.T) {
	m := NewMemory()

	const workers = 50
	var wg sync.WaitGroup
	createdCount := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, created := m.Insert("env", "env/act:cell=lava", n, fmt.Sprintf("evt-%d", n))
			createdCount <- created
		}(i)
	}
	wg.Wait()
	close(createdCount)

	creations := 0
	for c := range createdCount {
		if c {
			creations++
		}
	}
	if creations != 1 {
		t.Errorf("exactly one writer must create, got %d", creations)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", m.Len())
	}
}

func TestConcurrentReadsDuringInserts(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			m.Insert("env", fmt.Sprintf("env/act:n=%d", n), n, "evt")
		}(i)
		go func() {
			defer wg.Done()
			m.Match("env/act:n=0")
			m.Entries()
			m.Len()
		}()
	}
	wg.Wait()

	if m.Len() != 20 {
		t.Errorf("expected 20 entries, got %d", m.Len())
	}
}
