package main

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

const historyStorageKey = "calc_history"

type calcEntryRecord struct {
	Expression  string  `json:"expression"`
	Result      float64 `json:"result"`
	TimestampMs int64   `json:"timestamp"`
}

// HistoryStore wraps the bounded calculation log with save-on-write
// persistence. A nil or broken store degrades to in-memory operation; the
// calculator keeps working either way.
type HistoryStore struct {
	mu  sync.Mutex
	log CalcHistory
	kv  *KVStore
}

func NewHistoryStore(kv *KVStore) *HistoryStore {
	return &HistoryStore{kv: kv}
}

// Load restores the log from storage. A missing or malformed value resets
// to an empty log; restore failures are logged, never fatal.
func (s *HistoryStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Clear()
	if s.kv == nil {
		return
	}
	raw, found, err := s.kv.Get(historyStorageKey)
	if err != nil {
		log.Printf("[history] load failed, starting empty: %v", err)
		return
	}
	if !found {
		return
	}
	var records []calcEntryRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("[history] stored value malformed, starting empty: %v", err)
		return
	}
	entries := make([]CalcEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, CalcEntry{
			Expression: record.Expression,
			Result:     record.Result,
			Timestamp:  time.UnixMilli(record.TimestampMs),
		})
	}
	s.log.Replace(entries)
}

// Append records one successful calculation, stamped now, and persists the
// full log before returning.
func (s *HistoryStore) Append(expression string, result float64) CalcEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := CalcEntry{Expression: expression, Result: result, Timestamp: time.Now()}
	s.log.Push(entry)
	s.persistLocked()
	return entry
}

func (s *HistoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Clear()
	s.persistLocked()
}

func (s *HistoryStore) Entries() []CalcEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.All()
}

func (s *HistoryStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Size()
}

func (s *HistoryStore) persistLocked() {
	if s.kv == nil {
		return
	}
	entries := s.log.All()
	records := make([]calcEntryRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, calcEntryRecord{
			Expression:  entry.Expression,
			Result:      entry.Result,
			TimestampMs: entry.Timestamp.UnixMilli(),
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		log.Printf("[history] encode failed: %v", err)
		return
	}
	if err := s.kv.Set(historyStorageKey, string(data)); err != nil {
		log.Printf("[history] persist failed: %v", err)
	}
}
