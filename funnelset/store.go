package funnelset

import (
	"time"
)

// Store holds the append-only table of funnel observations for one session.
// Each session owns its own Store so there is no locking; a Store must not be
// shared across goroutines.
type Store struct {
	records []Record
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Replace overwrites the table wholesale with the uploaded batch.
func (s *Store) Replace(records []Record) {
	s.records = make([]Record, len(records))
	copy(s.records, records)
}

// Append adds one record to the end of the table.
func (s *Store) Append(r Record) {
	s.records = append(s.records, r)
}

// All returns a copy of the ordered record sequence.
func (s *Store) All() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// FilterByDate returns the records whose month falls within [start, end]
// inclusive, ordered by month.
func (s *Store) FilterByDate(start, end time.Time) []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if r.Month.Before(start) || r.Month.After(end) {
			continue
		}
		out = append(out, r)
	}
	return SortByMonth(out)
}
