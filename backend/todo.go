package main

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"
)

const todoStorageKey = "todo_items"

type TodoItem struct {
	ID        int64
	Text      string
	Done      bool
	CreatedAt time.Time
}

type todoItemRecord struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	Done        bool   `json:"done"`
	CreatedAtMs int64  `json:"created_at"`
}

// TodoStore keeps the to-do list in insertion order and persists it through
// the kv store on every mutation, same degrade-to-memory semantics as the
// calculation history.
type TodoStore struct {
	mu     sync.Mutex
	items  []TodoItem
	nextID int64
	kv     *KVStore
}

func NewTodoStore(kv *KVStore) *TodoStore {
	return &TodoStore{nextID: 1, kv: kv}
}

func (s *TodoStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.nextID = 1
	if s.kv == nil {
		return
	}
	raw, found, err := s.kv.Get(todoStorageKey)
	if err != nil {
		log.Printf("[todo] load failed, starting empty: %v", err)
		return
	}
	if !found {
		return
	}
	var records []todoItemRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("[todo] stored value malformed, starting empty: %v", err)
		return
	}
	for _, record := range records {
		s.items = append(s.items, TodoItem{
			ID:        record.ID,
			Text:      record.Text,
			Done:      record.Done,
			CreatedAt: time.UnixMilli(record.CreatedAtMs),
		})
		if record.ID >= s.nextID {
			s.nextID = record.ID + 1
		}
	}
}

func (s *TodoStore) Add(text string) (TodoItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TodoItem{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item := TodoItem{ID: s.nextID, Text: text, CreatedAt: time.Now()}
	s.nextID++
	s.items = append(s.items, item)
	s.persistLocked()
	return item, true
}

func (s *TodoStore) Toggle(id int64) (TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Done = !s.items[i].Done
			s.persistLocked()
			return s.items[i], true
		}
	}
	return TodoItem{}, false
}

func (s *TodoStore) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

func (s *TodoStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistLocked()
}

func (s *TodoStore) Items() []TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TodoItem(nil), s.items...)
}

func (s *TodoStore) persistLocked() {
	if s.kv == nil {
		return
	}
	records := make([]todoItemRecord, 0, len(s.items))
	for _, item := range s.items {
		records = append(records, todoItemRecord{
			ID:          item.ID,
			Text:        item.Text,
			Done:        item.Done,
			CreatedAtMs: item.CreatedAt.UnixMilli(),
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		log.Printf("[todo] encode failed: %v", err)
		return
	}
	if err := s.kv.Set(todoStorageKey, string(data)); err != nil {
		log.Printf("[todo] persist failed: %v", err)
	}
}
