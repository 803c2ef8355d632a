package source

import (
	"fmt"
	"sync"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID должен возвращать пустую строку, получили: %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("div")
	if id1 == NoStringID {
		t.Fatal("Intern не должен возвращать NoStringID для непустой строки")
	}
	if id2 := interner.InternBytes([]byte("div")); id1 != id2 {
		t.Errorf("одинаковые строки должны иметь одинаковый ID: %d != %d", id1, id2)
	}
	if s := interner.MustLookup(id1); s != "div" {
		t.Errorf("MustLookup = %q", s)
	}
	if interner.Intern("span") == id1 {
		t.Error("разные строки должны иметь разные ID")
	}
	if interner.Len() != 3 {
		t.Errorf("Len = %d, want 3", interner.Len())
	}
	if interner.Has(99) {
		t.Error("Has(99) should be false")
	}
	if snap := interner.Snapshot(); len(snap) != 3 || snap[id1] != "div" {
		t.Errorf("Snapshot = %v", snap)
	}
}

func TestInternerMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unknown id")
		}
	}()
	NewInterner().MustLookup(42)
}

func TestInternerConcurrentIntern(t *testing.T) {
	interner := NewInterner()
	const workers = 8
	const names = 200

	ids := make([][]StringID, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids[w] = make([]StringID, names)
			for i := range names {
				ids[w][i] = interner.Intern(fmt.Sprintf("tag-%d", i))
			}
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		for i := range names {
			if ids[w][i] != ids[0][i] {
				t.Fatalf("worker %d got id %d for tag-%d, worker 0 got %d", w, ids[w][i], i, ids[0][i])
			}
		}
	}
	if interner.Len() != names+1 {
		t.Errorf("Len = %d, want %d", interner.Len(), names+1)
	}
}
