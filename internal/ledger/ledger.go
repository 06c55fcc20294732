// Package ledger holds the session's shot results: an ordered, observable
// sequence of score entries plus the observable "currently dragging" index.
package ledger

import (
	"math"
	"sync"
)

// Entry is one shot's result. ID is the 1-based shot creation order.
type Entry struct {
	ID    int
	Score int
}

// Observer is notified with a copy of the entries after every change.
type Observer func(entries []Entry)

// Ledger is an append-only sequence of entries. Entries are updated in
// place but never removed individually; Clear empties the whole ledger.
type Ledger struct {
	mu        sync.RWMutex
	entries   []Entry
	observers []Observer
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append adds an entry at the end.
func (l *Ledger) Append(e Entry) {
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
	l.notify()
}

// Update sets the score of the entry with the given id. Returns false when
// no such entry exists.
func (l *Ledger) Update(id, score int) bool {
	l.mu.Lock()
	idx := -1
	for i := range l.entries {
		if l.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return false
	}
	changed := l.entries[idx].Score != score
	l.entries[idx].Score = score
	l.mu.Unlock()

	if changed {
		l.notify()
	}
	return true
}

// Clear removes every entry.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
	l.notify()
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Get returns the entry with the given id.
func (l *Ledger) Get(id int) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Subscribe registers an observer for every subsequent change.
func (l *Ledger) Subscribe(fn Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

func (l *Ledger) notify() {
	l.mu.RLock()
	observers := l.observers
	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.RUnlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// EntryHandle updates a single ledger entry and nothing else.
type EntryHandle func(score int)

// Handle returns a capability bound to the entry with the given id.
func (l *Ledger) Handle(id int) EntryHandle {
	return func(score int) {
		l.Update(id, score)
	}
}

// Stats summarises the scores in the ledger.
type Stats struct {
	Total   int
	Average float64 // Rounded to two decimals
	Max     int
	Min     int
	Count   int
}

// Stats computes the current summary. An empty ledger yields all zeros.
func (l *Ledger) Stats() Stats {
	return Summarize(l.Entries())
}

// Summarize computes Stats for a slice of entries.
func Summarize(entries []Entry) Stats {
	var s Stats
	if len(entries) == 0 {
		return s
	}
	s.Count = len(entries)
	s.Max = entries[0].Score
	s.Min = entries[0].Score
	for _, e := range entries {
		s.Total += e.Score
		s.Max = max(s.Max, e.Score)
		s.Min = min(s.Min, e.Score)
	}
	avg := float64(s.Total) / float64(s.Count)
	s.Average = math.Round(avg*100) / 100
	return s
}
