package main

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestKV(t *testing.T) *KVStore {
	t.Helper()
	kv, err := OpenKVStore(filepath.Join(t.TempDir(), "widgets.db"))
	if err != nil {
		t.Fatalf("open kv store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestHistoryNewestFirstOrder(t *testing.T) {
	store := NewHistoryStore(nil)
	store.Append("1+1", 2)
	store.Append("2+2", 4)
	store.Append("3+3", 6)

	entries := store.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"3+3", "2+2", "1+1"}
	for i, expression := range want {
		if entries[i].Expression != expression {
			t.Fatalf("entry %d: expected %q, got %q", i, expression, entries[i].Expression)
		}
	}
}

func TestHistoryEvictsOldestBeyondLimit(t *testing.T) {
	store := NewHistoryStore(nil)
	for i := 0; i < historyLimit; i++ {
		store.Append(fmt.Sprintf("%d+0", i), float64(i))
	}
	if store.Size() != historyLimit {
		t.Fatalf("expected %d entries, got %d", historyLimit, store.Size())
	}
	oldest := store.Entries()[historyLimit-1].Expression

	store.Append("fresh", 42)
	entries := store.Entries()
	if len(entries) != historyLimit {
		t.Fatalf("expected log to stay at %d entries, got %d", historyLimit, len(entries))
	}
	if entries[0].Expression != "fresh" {
		t.Fatalf("expected new entry at index 0, got %q", entries[0].Expression)
	}
	for _, entry := range entries {
		if entry.Expression == oldest {
			t.Fatalf("expected oldest entry %q to be evicted", oldest)
		}
	}
}

func TestHistorySurvivesRestart(t *testing.T) {
	kv := openTestKV(t)

	store := NewHistoryStore(kv)
	store.Load()
	store.Append("10/4", 2.5)
	store.Append("7*3", 21)

	restarted := NewHistoryStore(kv)
	restarted.Load()
	entries := restarted.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 restored entries, got %d", len(entries))
	}
	if entries[0].Expression != "7*3" || entries[0].Result != 21 {
		t.Fatalf("unexpected newest entry after restart: %+v", entries[0])
	}
	if entries[1].Expression != "10/4" || entries[1].Result != 2.5 {
		t.Fatalf("unexpected oldest entry after restart: %+v", entries[1])
	}
	if entries[0].Timestamp.IsZero() {
		t.Fatalf("expected restored timestamp to be set")
	}
}

func TestHistoryClearPersistsEmptyState(t *testing.T) {
	kv := openTestKV(t)

	store := NewHistoryStore(kv)
	store.Load()
	store.Append("5-2", 3)
	store.Clear()
	if store.Size() != 0 {
		t.Fatalf("expected empty log after clear")
	}

	restarted := NewHistoryStore(kv)
	restarted.Load()
	if restarted.Size() != 0 {
		t.Fatalf("expected clear to persist, got %d entries after restart", restarted.Size())
	}
}

func TestHistoryMalformedValueDegradesToEmpty(t *testing.T) {
	kv := openTestKV(t)
	if err := kv.Set(historyStorageKey, "{not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	store := NewHistoryStore(kv)
	store.Load()
	if store.Size() != 0 {
		t.Fatalf("expected empty log for corrupt storage, got %d entries", store.Size())
	}
	// The store must stay usable after a failed restore.
	store.Append("1+2", 3)
	if store.Size() != 1 {
		t.Fatalf("expected append to work after failed restore")
	}
}

func TestHistoryWithoutStorageStaysInMemory(t *testing.T) {
	store := NewHistoryStore(nil)
	store.Load()
	store.Append("9*9", 81)
	if store.Size() != 1 {
		t.Fatalf("expected in-memory log to accept entries without storage")
	}
}

func TestHistoryTimestampsFollowInsertionOrder(t *testing.T) {
	store := NewHistoryStore(nil)
	store.Append("first", 1)
	time.Sleep(2 * time.Millisecond)
	store.Append("second", 2)

	entries := store.Entries()
	if entries[0].Timestamp.Before(entries[1].Timestamp) {
		t.Fatalf("expected newest entry to have the latest timestamp")
	}
}
