package history

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return store
}

func TestAppendAndLoadAll(t *testing.T) {
	store := newTestStore(t)

	entry, err := store.Append("hhi_calculator",
		map[string]interface{}{"firms": 4},
		map[string]interface{}{"hhi": 3000.0, "band": "high"},
	)
	if err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if entry.ID == "" {
		t.Error("Append() returned an entry without an ID")
	}
	if entry.Timestamp.IsZero() {
		t.Error("Append() returned an entry without a timestamp")
	}

	entries, err := store.LoadAll("hhi_calculator")
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("LoadAll() returned %d entries, expected 1", len(entries))
	}
	if entries[0].Result["band"] != "high" {
		t.Errorf("stored band = %v, expected high", entries[0].Result["band"])
	}
}

func TestLoadAllEmptyHistory(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.LoadAll("merger_calculator")
	if err != nil {
		t.Fatalf("LoadAll() error on empty history: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("LoadAll() returned %d entries for a fresh module, expected 0", len(entries))
	}
}

func TestModulesAreIsolated(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Append("hhi_calculator", nil, map[string]interface{}{"hhi": 1000.0}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	entries, err := store.LoadAll("merger_calculator")
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("modules share history: got %d entries", len(entries))
	}
}

func TestRecent(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		store.now = func() time.Time { return ts }
		if _, err := store.Append("hhi_calculator", nil, map[string]interface{}{"n": i}); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	recent, err := store.Recent("hhi_calculator", 3)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent() returned %d entries, expected 3", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Timestamp.After(recent[i-1].Timestamp) {
			t.Errorf("Recent() not ordered newest first at index %d", i)
		}
	}
	if recent[0].Result["n"] != float64(4) {
		t.Errorf("newest entry n = %v, expected 4", recent[0].Result["n"])
	}
}

func TestSummarize(t *testing.T) {
	store := newTestStore(t)

	for _, band := range []string{"high", "moderate", "high", "low", "high"} {
		if _, err := store.Append("hhi_calculator", nil, map[string]interface{}{"band": band}); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	summary, err := store.Summarize("hhi_calculator", "band")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if summary.TotalCalculations != 5 {
		t.Errorf("total = %d, expected 5", summary.TotalCalculations)
	}
	if summary.MostCommonResult != "high" {
		t.Errorf("most common = %q, expected high", summary.MostCommonResult)
	}
	if summary.LastCalculation == nil {
		t.Error("last calculation timestamp missing")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	store := newTestStore(t)

	summary, err := store.Summarize("dominance_checker", "level")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if summary.TotalCalculations != 0 || summary.LastCalculation != nil {
		t.Errorf("empty summary = %+v, expected zero value", summary)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Append("hhi_calculator", nil, map[string]interface{}{"hhi": 1.0}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := store.Clear("hhi_calculator"); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	entries, err := store.LoadAll("hhi_calculator")
	if err != nil {
		t.Fatalf("LoadAll() after clear error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("history not cleared: %d entries remain", len(entries))
	}

	// Clearing an already-empty history is fine.
	if err := store.Clear("hhi_calculator"); err != nil {
		t.Errorf("Clear() on empty history error: %v", err)
	}
}

func TestInvalidModuleNames(t *testing.T) {
	store := newTestStore(t)

	for _, module := range []string{"", "../escape", "a/b", `a\b`, "dots.everywhere"} {
		if _, err := store.Append(module, nil, nil); err == nil {
			t.Errorf("Append(%q) succeeded, expected error", module)
		}
	}
}

func TestConcurrentAppends(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := store.Append("hhi_calculator", nil, map[string]interface{}{"n": n}); err != nil {
				t.Errorf("concurrent Append() error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	entries, err := store.LoadAll("hhi_calculator")
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(entries) != 20 {
		t.Errorf("got %d entries after concurrent appends, expected 20", len(entries))
	}
}
