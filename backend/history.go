package main

import "time"

// historyLimit caps the calculation log. Appending to a full log evicts the
// oldest entry.
const historyLimit = 10

type CalcEntry struct {
	Expression string
	Result     float64
	Timestamp  time.Time
}

// CalcHistory holds recorded calculations newest first.
type CalcHistory struct {
	entries []CalcEntry
}

func (h *CalcHistory) Push(entry CalcEntry) {
	h.entries = append([]CalcEntry{entry}, h.entries...)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[:historyLimit]
	}
}

func (h *CalcHistory) Clear() {
	h.entries = nil
}

func (h *CalcHistory) Replace(entries []CalcEntry) {
	h.entries = append([]CalcEntry(nil), entries...)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[:historyLimit]
	}
}

func (h CalcHistory) Size() int {
	return len(h.entries)
}

func (h CalcHistory) All() []CalcEntry {
	return append([]CalcEntry(nil), h.entries...)
}
